// Package cache provides a small in-process TTL cache for query memoization
// (random-creator picks, CMS content). Staleness within the TTL is accepted.
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time for deterministic expiry tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default wall clock.
var SystemClock Clock = systemClock{}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type TTL[V any] struct {
	mu      sync.RWMutex
	clock   Clock
	entries map[string]entry[V]
}

func NewTTL[V any](clock Clock) *TTL[V] {
	if clock == nil {
		clock = SystemClock
	}
	return &TTL[V]{
		clock:   clock,
		entries: make(map[string]entry[V]),
	}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.clock.Now().After(e.expiresAt) {
		var zero V
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return zero, false
	}
	return e.value, true
}

func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
