package ratelimiter

import (
	"context"
	"fmt"
	"log"
	"time"

	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=ratelimiter.go -destination=mock/ratelimiter.go -package=mock

// Limiter throttles a user's action to once per window.
type Limiter interface {
	Allow(ctx context.Context, userID uuid.UUID, action string) error
}

// RateLimitError unwraps to apperror.ErrRateLimitExceeded.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

type redisLimiter struct {
	rdb    *redis.Client
	window time.Duration
}

// NewRedisLimiter returns a limiter that always allows when rdb is nil or the
// window is not positive.
func NewRedisLimiter(rdb *redis.Client, window time.Duration) Limiter {
	return &redisLimiter{rdb: rdb, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, userID uuid.UUID, action string) error {
	if l.rdb == nil || l.window <= 0 {
		return nil
	}

	key := Key(userID, action)

	wasSet, err := l.rdb.SetNX(ctx, key, "locked", l.window).Result()
	if err != nil {
		// Redis being down must not block classification.
		log.Printf("⚠️ rate limit check failed for %s: %v", key, err)
		return nil
	}
	if wasSet {
		return nil
	}

	ttl, err := l.rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}

	return &RateLimitError{
		Message:    fmt.Sprintf("please wait %d seconds before trying again", retrySeconds(ttl)),
		RetryAfter: ttl,
	}
}

func Key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

func retrySeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
