package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const cursorKeyPrefix = "analytics:cursor:"

// Cursor remembers the last processed event per user in redis. It is a
// best-effort side collaboration: callers log and swallow its errors,
// they never fail the primary event for it.
type Cursor struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewCursor(redisClient *redis.Client, ttl time.Duration) *Cursor {
	return &Cursor{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (c *Cursor) Set(ctx context.Context, userID, eventID string) error {
	key := cursorKeyPrefix + userID
	if err := c.redisClient.Set(ctx, key, eventID, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cursor %s: %w", key, err)
	}
	return nil
}

func (c *Cursor) Get(ctx context.Context, userID string) (string, error) {
	key := cursorKeyPrefix + userID
	cmd := c.redisClient.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		return "", fmt.Errorf("get cursor %s: %w", key, err)
	}
	return cmd.Val(), nil
}
