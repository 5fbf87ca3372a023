// Package cache provides caching implementations for computed rankings.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	analyticsapp "github.com/storefront/backend/internal/application/analytics"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/analytics"
	infraconfig "github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultTopSellingTTL = 10 * time.Minute

// Ensure RedisTopSellingCache implements the stats service port
var _ analyticsapp.TopSellingCache = (*RedisTopSellingCache)(nil)

// RedisTopSellingCache caches the monthly top-selling ranking in Redis.
// The ranking is expensive to recompute, it walks every completed order
// of the month, so reads go through here first.
type RedisTopSellingCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisTopSellingCacheOption is a functional option for configuring the cache
type RedisTopSellingCacheOption func(*RedisTopSellingCache)

// WithTTL sets how long a cached ranking stays valid
func WithTTL(ttl time.Duration) RedisTopSellingCacheOption {
	return func(c *RedisTopSellingCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisTopSellingCacheOption {
	return func(c *RedisTopSellingCache) {
		c.logger = logger
	}
}

// NewRedisTopSellingCache creates a cache with its own Redis connection
func NewRedisTopSellingCache(cfg infraconfig.RedisConfig, opts ...RedisTopSellingCacheOption) (*RedisTopSellingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisTopSellingCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultTopSellingTTL,
		logger:     zap.NewNop(),
	}
	if cfg.TopSellingTTL > 0 {
		cache.ttl = cfg.TopSellingTTL
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisTopSellingCacheWithClient creates a cache with an existing Redis client.
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisTopSellingCacheWithClient(client *redis.Client, opts ...RedisTopSellingCacheOption) *RedisTopSellingCache {
	cache := &RedisTopSellingCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultTopSellingTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get returns the cached ranking for a month, if present
func (c *RedisTopSellingCache) Get(ctx context.Context, year, month int) ([]analytics.ProductSalesStat, bool, error) {
	payload, err := c.client.Get(ctx, topSellingKey(year, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached ranking: %w", err)
	}

	var stats []analytics.ProductSalesStat
	if err := json.Unmarshal(payload, &stats); err != nil {
		// A corrupt entry behaves like a miss so the caller recomputes
		c.logger.Warn("Dropping corrupt top-selling cache entry",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err))
		return nil, false, nil
	}
	return stats, true, nil
}

// Set stores the ranking for a month with the configured TTL
func (c *RedisTopSellingCache) Set(ctx context.Context, year, month int, stats []analytics.ProductSalesStat) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}

	if err := c.client.Set(ctx, topSellingKey(year, month), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache ranking: %w", err)
	}
	return nil
}

// Invalidate drops the cached ranking for a month
func (c *RedisTopSellingCache) Invalidate(ctx context.Context, year, month int) error {
	if err := c.client.Del(ctx, topSellingKey(year, month)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached ranking: %w", err)
	}
	return nil
}

// Close releases the Redis connection if this cache owns it
func (c *RedisTopSellingCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

func topSellingKey(year, month int) string {
	return fmt.Sprintf("stats:top-selling:%04d-%02d", year, month)
}
