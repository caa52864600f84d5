// Package cache provides a small in-process TTL cache. It replaces the
// process-wide static lists the previous system kept for directory data:
// instances are constructed explicitly and injected, expiry is bounded, and
// invalidation drops entries instead of patching them.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    interface{}
	loadedAt time.Time
}

// TTL is a mutex-guarded map whose entries expire after a fixed duration.
type TTL struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

// NewTTL returns a cache whose entries live for ttl.
func NewTTL(ttl time.Duration) *TTL {
	return &TTL{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]entry),
	}
}

// Get returns the cached value for key and whether it is present and fresh.
func (c *TTL) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || c.now().Sub(e.loadedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

// GetStale returns the cached value even when expired. Callers use this to
// serve the last known directory data when a refresh fails.
func (c *TTL) GetStale(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, resetting its expiry.
func (c *TTL) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{value: value, loadedAt: c.now()}
}

// Invalidate drops the entry for key.
func (c *TTL) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}
