package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures [NewRedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores entries as plain Redis strings with native expiry.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes it on Close.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify("redis get", err)
	}
	return data, true, nil
}

// Set implements Cache. A ttl of zero stores without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return classify("redis set", c.client.Set(ctx, key, data, ttl).Err())
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify("redis del", c.client.Del(ctx, key).Err())
}

// Close closes the underlying client.
func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
