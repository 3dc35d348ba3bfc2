package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis for the rate limiter and idempotence guard.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// Connect creates a Redis client and verifies connectivity.
func Connect(url, prefix string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb, prefix: prefix}, nil
}

// Raw returns the underlying redis.Client for advanced usage.
func (c *Client) Raw() *redis.Client { return c.rdb }

// Key namespaces parts under the client prefix.
func (c *Client) Key(parts ...string) string {
	key := c.prefix
	for _, p := range parts {
		if key != "" {
			key += ":"
		}
		key += p
	}
	return key
}

// Hit increments a fixed-window counter and returns the count and the time
// left in the window. Only the first hit of a window arms the expiry.
func (c *Client) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := c.rdb.PExpire(ctx, key, window).Err(); err != nil {
			return count, 0, err
		}
		return count, window, nil
	}
	ttl, err := c.rdb.PTTL(ctx, key).Result()
	if err != nil {
		return count, 0, err
	}
	if ttl < 0 {
		// Expiry lost (e.g. a crash between INCR and PEXPIRE); re-arm it.
		_ = c.rdb.PExpire(ctx, key, window).Err()
		ttl = window
	}
	return count, ttl, nil
}

// Claim sets key to "0" only when absent. It reports whether this caller won.
func (c *Client) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, "0", ttl).Result()
}

// Mark overwrites the value of key without touching its expiry.
func (c *Client) Mark(ctx context.Context, key string, value interface{}) error {
	return c.rdb.Set(ctx, key, value, redis.KeepTTL).Err()
}

// Set stores a value with optional TTL (0 = no expiry).
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a string value. Returns ("", nil) if key does not exist.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Del deletes one or more keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
