package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by GetIdempotentResult on a cache miss.
var ErrNotFound = errors.New("idempotency key not found")

// Client represents a Redis client
type Client struct {
	*redis.Client
}

// New creates a new Redis client
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to Redis: %w", err)
	}

	return &Client{Client: rdb}, nil
}

// Health checks the Redis health
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// idempotencyKey builds the dedup key for a candidate's submission retry
// window: idemp:{user_id}:{request_id}.
func idempotencyKey(userID, requestID string) string {
	return fmt.Sprintf("idemp:%s:%s", userID, requestID)
}

// ReserveIdempotencyKey atomically claims (userID, requestID) for the
// duration of ttl. It returns true if this call won the race and the caller
// should proceed with the write path; false means a prior attempt already
// claimed the key (or succeeded) and GetIdempotentResult should be
// consulted instead.
func (c *Client) ReserveIdempotencyKey(ctx context.Context, userID, requestID string, ttl time.Duration) (bool, error) {
	ok, err := c.SetNX(ctx, idempotencyKey(userID, requestID), "pending", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	return ok, nil
}

// StoreIdempotentResult overwrites the reservation with the committed
// application id/status so retries within the window short-circuit to the
// same response instead of re-running the write path.
func (c *Client) StoreIdempotentResult(ctx context.Context, userID, requestID, result string, ttl time.Duration) error {
	if err := c.Set(ctx, idempotencyKey(userID, requestID), result, ttl).Err(); err != nil {
		return fmt.Errorf("store idempotency result: %w", err)
	}
	return nil
}

// GetIdempotentResult returns the cached result for a prior submission, or
// ErrNotFound if the key was never reserved or has expired.
func (c *Client) GetIdempotentResult(ctx context.Context, userID, requestID string) (string, error) {
	val, err := c.Get(ctx, idempotencyKey(userID, requestID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get idempotency result: %w", err)
	}
	if val == "pending" {
		return "", ErrNotFound
	}
	return val, nil
}
