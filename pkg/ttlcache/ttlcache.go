// Package ttlcache is a small concurrency-safe cache with per-entry
// expiry, used to shield upstream data providers from repeated lookups.
package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache maps string keys to values that expire after a fixed TTL. The
// zero value is not usable; construct with New.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]entry[V]
}

// New returns a cache whose entries live for ttl and that holds at most
// max entries. Non-positive arguments fall back to defaults.
func New[V any](ttl time.Duration, max int) *Cache[V] {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if max <= 0 {
		max = 10000
	}
	return &Cache[V]{ttl: ttl, max: max, entries: make(map[string]entry[V], max)}
}

// Get returns the cached value for key and whether it is present and
// unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. When the cache grows past its cap, expired
// entries are swept until it fits again.
func (c *Cache[V]) Set(key string, value V) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expires: now.Add(c.ttl)}
	if len(c.entries) > c.max {
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
			if len(c.entries) <= c.max {
				break
			}
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
