package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window IP rate limiter backed by Redis. Used on
// the unauthenticated register and login endpoints.
type Limiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewLimiter(client *redis.Client, window time.Duration, max int) *Limiter {
	return &Limiter{client: client, window: window, max: max}
}

func key(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:%s:%s", purpose, ip)
}

// Allow records a request for (ip, purpose) and reports whether it is
// within the limit. The counter expires with the window, so idle keys
// clean themselves up.
func (l *Limiter) Allow(ctx context.Context, ip, purpose string) (bool, error) {
	k := key(ip, purpose)

	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record request: %w", err)
	}

	return count.Val() <= int64(l.max), nil
}
