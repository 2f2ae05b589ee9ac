package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	infraprom "github.com/sifan077/LinkDeck/internal/infra/prometheus"
	"go.uber.org/zap"
)

// DestinationCache caches id -> destination URL lookups on the resolve path.
// Implementations must fail open: a cache outage degrades to store reads.
type DestinationCache interface {
	Get(ctx context.Context, id string) (string, bool)
	Set(ctx context.Context, id string, destination string)
	Invalidate(ctx context.Context, id string)
}

const destinationKeyPrefix = "dest:"

type redisDestinationCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDestinationCache returns a Redis-backed DestinationCache with the
// given entry TTL.
func NewRedisDestinationCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) DestinationCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisDestinationCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *redisDestinationCache) Get(ctx context.Context, id string) (string, bool) {
	dest, err := c.rdb.Get(ctx, destinationKeyPrefix+id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("destination cache read failed", zap.Error(err), zap.String("id", id))
		}
		return "", false
	}
	infraprom.DestinationCacheHits.Inc()
	return dest, true
}

func (c *redisDestinationCache) Set(ctx context.Context, id string, destination string) {
	if err := c.rdb.Set(ctx, destinationKeyPrefix+id, destination, c.ttl).Err(); err != nil {
		c.logger.Warn("destination cache write failed", zap.Error(err), zap.String("id", id))
	}
}

func (c *redisDestinationCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, destinationKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("destination cache invalidation failed", zap.Error(err), zap.String("id", id))
	}
}
