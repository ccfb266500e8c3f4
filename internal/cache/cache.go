package cache

import (
	"context"
	"sync"
	"time"
)

// Observer receives hit/miss notifications, typically for metrics.
type Observer interface {
	CacheHit()
	CacheMiss()
}

// Cache is a byte-oriented key-value cache with a fixed TTL. Ranking uses
// it for computed sensor averages and ranking responses; a miss is never
// an error, just a recompute.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

type memoryEntry struct {
	val []byte
	exp time.Time
}

// Memory is an in-process Cache for tests and redis-less deployments.
type Memory struct {
	mu  sync.RWMutex
	m   map[string]memoryEntry
	ttl time.Duration
	obs Observer
}

func NewMemory(ttl time.Duration, obs Observer) *Memory {
	return &Memory{m: make(map[string]memoryEntry), ttl: ttl, obs: obs}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		if c.obs != nil {
			c.obs.CacheMiss()
		}
		return nil, false
	}
	if c.obs != nil {
		c.obs.CacheHit()
	}
	return e.val, true
}

func (c *Memory) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	c.m[key] = memoryEntry{val: value, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Memory) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}
