package ports

import (
	"context"
	"time"
)

// RateLimiter is a fixed-window counter keyed by identity. Allow reports
// whether the caller is within the limit for the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
