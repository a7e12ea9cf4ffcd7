// Package api implements the remote data client for the user-management
// backend: one method per REST operation, bearer-token authentication, and a
// uniform error taxonomy.
//
// Every authenticated request carries the current token from the configured
// TokenSource plus a generated X-Request-ID. A 401 from any endpoint fires
// the unauthorized hook exactly once per response, regardless of which
// operation triggered it; callers use the hook for global session
// invalidation.
package api
