package services

import (
	"context"
	"sync"
	"time"
)

// PartitionCache is the injected read cache for computed partitions. A stale
// read within the TTL is accepted behavior; implementations must never block
// partition computation on cache failures.
type PartitionCache interface {
	Get(ctx context.Context, key string) (*PartitionResult, bool)
	Set(ctx context.Context, key string, result *PartitionResult, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}

type memoryCacheEntry struct {
	result    *PartitionResult
	expiresAt time.Time
}

// MemoryCache is an in-process PartitionCache for single-node deployments and
// tests. The clock is injectable so expiry can be tested deterministically.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	now     func() time.Time
}

func NewMemoryCache(clock func() time.Time) *MemoryCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memoryCacheEntry),
		now:     clock,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*PartitionResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.result, true
}

func (c *MemoryCache) Set(_ context.Context, key string, result *PartitionResult, ttl time.Duration) {
	if result == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryCacheEntry{result: result, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *MemoryCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
