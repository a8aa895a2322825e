package verdictcache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
)

// VerdictCache implements the VerdictCache port with Redis. Backend failures
// are logged and reported as misses; the cache is best-effort by contract.
type VerdictCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// New creates a redis-backed verdict cache
func New(redisClient *redis.Client, logger primary.Logger) *VerdictCache {
	return &VerdictCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (c *VerdictCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read cache entry", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (c *VerdictCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Failed to write cache entry", "key", key, "error", err)
	}
}
