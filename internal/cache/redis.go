// Package cache wraps the redis client used for token revocation
// and AI response caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	denylistPrefix = "denylist:"
	aiCachePrefix  = "ai:analyze:"
)

// Client holds the redis connection and the configured AI cache TTL.
type Client struct {
	rdb        *redis.Client
	aiCacheTTL time.Duration
}

// Config holds redis connection settings.
type Config struct {
	Addr       string
	Password   string
	DB         int
	AICacheTTL time.Duration
}

// NewClient connects to redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, aiCacheTTL: cfg.AICacheTTL}, nil
}

// NewClientFromRedis wraps an existing redis client. Used by tests.
func NewClientFromRedis(rdb *redis.Client, aiCacheTTL time.Duration) *Client {
	return &Client{rdb: rdb, aiCacheTTL: aiCacheTTL}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// DenyToken marks a token identifier as revoked until its natural expiry.
func (c *Client) DenyToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return c.rdb.Set(ctx, denylistPrefix+tokenID, "1", ttl).Err()
}

// IsTokenDenied reports whether a token identifier has been revoked.
func (c *Client) IsTokenDenied(ctx context.Context, tokenID string) (bool, error) {
	err := c.rdb.Get(ctx, denylistPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AICacheKey derives a stable cache key from the serialized request payload.
func AICacheKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return aiCachePrefix + hex.EncodeToString(sum[:])
}

// GetAIResponse returns the cached response for a key, or ("", false) on miss.
func (c *Client) GetAIResponse(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetAIResponse caches a serialized response under the derived key.
func (c *Client) SetAIResponse(ctx context.Context, key, value string) error {
	ttl := c.aiCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
