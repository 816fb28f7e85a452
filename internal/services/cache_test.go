package services

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Now().UTC()
	clock := now
	cache := NewMemoryCache(func() time.Time { return clock })
	ctx := context.Background()

	result := &PartitionResult{TotalCount: 3}
	cache.Set(ctx, "global", result, 5*time.Minute)

	got, ok := cache.Get(ctx, "global")
	if !ok {
		t.Fatal("expected hit before expiry")
	}
	if got.TotalCount != 3 {
		t.Fatalf("expected cached result, got %+v", got)
	}

	clock = now.Add(5*time.Minute + time.Second)
	if _, ok := cache.Get(ctx, "global"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestMemoryCacheInvalidate(t *testing.T) {
	cache := NewMemoryCache(nil)
	ctx := context.Background()

	cache.Set(ctx, "subject:a", &PartitionResult{}, time.Minute)
	cache.Set(ctx, "subject:b", &PartitionResult{}, time.Minute)

	cache.Invalidate(ctx, "subject:a")

	if _, ok := cache.Get(ctx, "subject:a"); ok {
		t.Fatal("expected invalidated key to miss")
	}
	if _, ok := cache.Get(ctx, "subject:b"); !ok {
		t.Fatal("expected untouched key to hit")
	}
}

func TestMemoryCacheIgnoresNilAndZeroTTL(t *testing.T) {
	cache := NewMemoryCache(nil)
	ctx := context.Background()

	cache.Set(ctx, "nil", nil, time.Minute)
	cache.Set(ctx, "zero", &PartitionResult{}, 0)

	if _, ok := cache.Get(ctx, "nil"); ok {
		t.Fatal("nil result must not be cached")
	}
	if _, ok := cache.Get(ctx, "zero"); ok {
		t.Fatal("non-positive ttl must not cache")
	}
}
