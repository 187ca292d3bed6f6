// Package cache provides the request counters behind HTTP rate limiting.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidRateLimit is returned when a store is built with a non-positive limit or window
var ErrInvalidRateLimit = errors.New("rate limit and window must be positive")

// RateLimitResult is the outcome of counting one request against its window
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before the window resets
func (r RateLimitResult) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// RateLimitStore counts requests per key in fixed windows
type RateLimitStore interface {
	// Take counts one request for key and reports whether it fits the window
	Take(ctx context.Context, key string) (RateLimitResult, error)
	Close() error
}

// windowStart truncates now to the start of its fixed window
func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}

func newResult(count int64, limit int, resetAt time.Time) RateLimitResult {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
