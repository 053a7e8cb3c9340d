package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// entry pairs a cached value with its expiry timestamp.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a concurrency-safe in-memory cache whose entries expire a fixed
// duration after they are stored. Expired entries read as misses immediately;
// PurgeExpired reclaims their memory. There is no single-flight coordination:
// two goroutines missing on the same key may both recompute, and the second
// Set wins, which is fine because every cached computation here is idempotent.
type TTL[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	clock   clockwork.Clock
}

// NewTTL creates a cache whose entries live for ttl after each Set.
func NewTTL[K comparable, V any](ttl time.Duration, clock clockwork.Clock) *TTL[K, V] {
	return &TTL[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached value for key if it is still fresh.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.clock.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry and restarting its TTL.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// PurgeExpired removes all stale entries and returns how many were dropped.
func (c *TTL[K, V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	dropped := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of entries currently held, fresh or not.
func (c *TTL[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
