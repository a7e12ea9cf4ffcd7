// Package query orchestrates reads and writes against the backend through a
// keyed cache.
//
// Reads are served from the cache while fresh, returned stale with a
// background refresh once their freshness window has passed, and fetched on
// a miss. Concurrent identical reads collapse to a single in-flight request.
// Writes never touch the cache optimistically: on success they overwrite the
// affected detail entry with the server's representation, mark every
// collection and stats entry stale, and (for deletes) evict the detail entry
// outright. On failure the cache is left in its last-known-good state and
// the error is surfaced to the caller and the user.
package query
