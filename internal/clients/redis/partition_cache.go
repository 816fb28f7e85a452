package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/services"
)

// PartitionCache is the redis-backed services.PartitionCache for multi-node
// deployments. Cache failures are logged and treated as misses; a partition is
// always recomputable from the record store.
type PartitionCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

var _ services.PartitionCache = (*PartitionCache)(nil)

func NewPartitionCache(log *logger.Logger) (*PartitionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "brightclass"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &PartitionCache{
		log:    log.With("service", "RedisPartitionCache"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (c *PartitionCache) Get(ctx context.Context, key string) (*services.PartitionResult, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.prefix+":"+key).Bytes()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	var result services.PartitionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Warn("cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &result, true
}

func (c *PartitionCache) Set(ctx context.Context, key string, result *services.PartitionResult, ttl time.Duration) {
	if c == nil || c.rdb == nil || result == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+":"+key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *PartitionCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.prefix+":"+key).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "key", key, "error", err)
	}
}

func (c *PartitionCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
