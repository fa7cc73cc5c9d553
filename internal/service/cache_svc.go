package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/orbitx-mcn/orbitx-go/internal/metrics"
)

// ChannelCacheTTL bounds how stale a cached channel lookup may be.
const ChannelCacheTTL = 15 * time.Minute

// CacheService is a Redis cache-aside layer for channel lookups. With a nil
// client every operation is a no-op.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService connects to redisURL. An empty URL or a failed connection
// yields a disabled cache rather than an error.
func NewCacheService(redisURL string, logger zerolog.Logger) *CacheService {
	if redisURL == "" {
		logger.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		rdb.Close()
		return &CacheService{}
	}

	logger.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// NewCacheServiceWithClient wraps an existing client.
func NewCacheServiceWithClient(rdb *redis.Client) *CacheService {
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetChannel retrieves a cached lookup. Returns nil if not cached or cache is disabled.
func (c *CacheService) GetChannel(ctx context.Context, handle string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, channelKey(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	metrics.CacheHits.Inc()
	return data, nil
}

// SetChannel stores a lookup result.
func (c *CacheService) SetChannel(ctx context.Context, handle string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, channelKey(handle), b, ChannelCacheTTL).Err()
}

// InvalidateChannel removes a cached lookup.
func (c *CacheService) InvalidateChannel(ctx context.Context, handle string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, channelKey(handle)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Handles are case-insensitive on YouTube.
func channelKey(handle string) string {
	return fmt.Sprintf("orbitx:channel:%s", strings.ToLower(handle))
}
