// Package cache provides a small string cache backed by Redis.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phone_printer/platform/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores string values with a TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to the Redis instance named by cfg.GetRedisURL().
func NewRedis(cfg config.CacheConfig, prefix string) (*RedisCache, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return NewRedisFromClient(redis.NewClient(opt), prefix), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get returns the value for key. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key for ttl. A zero ttl keeps the key forever.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
