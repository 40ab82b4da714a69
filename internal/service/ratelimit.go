package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is an injected capability so the limit state lives in an
// external store and survives multi-instance deployment.
type RateLimiter interface {
	// Check reports whether the identifier is allowed to perform the action
	// now, and blocks it for the window if so.
	Check(ctx context.Context, identifier, action string, window time.Duration) (bool, error)
}

type redisRateLimiter struct {
	rdb *redis.Client
}

func NewRedisRateLimiter(rdb *redis.Client) RateLimiter {
	return &redisRateLimiter{rdb: rdb}
}

func (l *redisRateLimiter) Check(ctx context.Context, identifier, action string, window time.Duration) (bool, error) {
	if l.rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%s", action, identifier)

	wasSet, err := l.rdb.SetNX(ctx, key, "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}
