// Package cache provides a small in-memory TTL cache used to keep the
// quota-limited YouTube API calls from being issued redundantly.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is applied when Set is called with a non-positive TTL.
const DefaultTTL = 30 * time.Minute

type entry struct {
	data   interface{}
	expiry time.Time
}

// Cache is a thread-safe key/value store with per-entry expiry. Entries are
// evicted lazily on Get, or in bulk via SweepExpired. The zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewWithClock creates a cache with an injectable time source for tests.
func NewWithClock(now func() time.Time) *Cache {
	c := New()
	c.now = now
	return c
}

// Get returns the value stored under key, or false when the key is absent
// or its entry has expired. Expired entries are deleted on the way out.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiry) {
		c.mu.Lock()
		// Re-check under the write lock; another caller may have replaced
		// the entry with a fresh one in the meantime.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.data, true
}

// GetStale returns the value stored under key even when its entry has
// expired, without evicting it. Reports whether the entry was expired.
// This exists for the quota-exhaustion fallback path; normal reads must
// use Get.
func (c *Cache) GetStale(key string) (value interface{}, stale bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[key]
	if !found {
		return nil, false, false
	}
	return e.data, !c.now().Before(e.expiry), true
}

// Set stores value under key, overwriting any existing entry. A
// non-positive ttl falls back to DefaultTTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{data: value, expiry: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes the entry stored under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// SweepExpired eagerly evicts every expired entry and reports how many were
// removed. Lazy eviction in Get is sufficient for correctness; this exists
// for periodic maintenance so long-dead entries do not pin memory.
func (c *Cache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiry) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
