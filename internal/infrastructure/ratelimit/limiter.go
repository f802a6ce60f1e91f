package ratelimit

import (
	"context"
	"time"
)

// CounterStore counts requests per key within a fixed window. Incr returns
// the count for the key after this increment; a fresh window starts at 1.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter enforces a request limit per key over a fixed window, backed by a
// pluggable counter store so deployments can choose in-memory or Redis
// counters.
type Limiter struct {
	store  CounterStore
	limit  int64
	window time.Duration
}

// NewLimiter creates a limiter allowing limit requests per window per key
func NewLimiter(store CounterStore, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records a request for key and reports whether it is within the
// limit. The limit-th request is allowed; the one after it is not.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

// Limit returns the configured request limit
func (l *Limiter) Limit() int {
	return int(l.limit)
}

// Window returns the configured window
func (l *Limiter) Window() time.Duration {
	return l.window
}
