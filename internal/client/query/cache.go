package query

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Cache is a keyed read cache with explicit staleness. Entries are updated
// atomically per key; a per-key generation counter lets in-flight fetches
// detect that their result was superseded (by a mutation, invalidation, or
// reset) and discard it instead of clobbering newer state.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	gens    map[Key]uint64
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		gens:    make(map[Key]uint64),
		now:     time.Now,
	}
}

// Get returns the cached value for k if present, and whether it is still
// within its freshness window ttl.
func (c *Cache) Get(k Key, ttl time.Duration) (value any, ok, fresh bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return nil, false, false
	}
	fresh = !e.stale && c.now().Sub(e.fetchedAt) < ttl
	return e.value, true, fresh
}

// Begin returns the current generation for k. A fetch records it before
// going to the network and passes it back to Commit.
func (c *Cache) Begin(k Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Materialize the key so a later Reset supersedes this fetch even if
	// nothing was cached under k yet.
	gen := c.gens[k]
	c.gens[k] = gen
	return gen
}

// Commit stores v under k only if no invalidation happened since gen was
// observed. Returns whether the value was applied.
func (c *Cache) Commit(k Key, gen uint64, v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[k] != gen {
		return false
	}
	c.entries[k] = &entry{value: v, fetchedAt: c.now()}
	return true
}

// Overwrite unconditionally replaces the entry for k, superseding any fetch
// still in flight. Used after mutations, where the server's returned
// representation is fresher than anything the network can deliver.
func (c *Cache) Overwrite(k Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[k]++
	c.entries[k] = &entry{value: v, fetchedAt: c.now()}
}

// MarkStale flags the entry for k as stale. The value remains returnable;
// the next read triggers a refresh. In-flight fetches begun earlier are
// superseded.
func (c *Cache) MarkStale(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[k]++
	if e, ok := c.entries[k]; ok {
		e.stale = true
	}
}

// MarkScopeStale flags every entry in the given scope as stale. Generations
// are bumped for every known key of the scope, not just cached entries, so a
// first-time fetch still in flight is superseded too.
func (c *Cache) MarkScopeStale(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.gens {
		if k.Scope != scope {
			continue
		}
		c.gens[k]++
		if e, ok := c.entries[k]; ok {
			e.stale = true
		}
	}
}

// Evict removes the entry for k entirely. Unlike MarkStale, the old value is
// no longer returnable; used after deletes.
func (c *Cache) Evict(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[k]++
	delete(c.entries, k)
}

// Reset drops every entry and supersedes all in-flight fetches. Called on
// logout and session invalidation.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.gens {
		c.gens[k]++
	}
	c.entries = make(map[Key]*entry)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
