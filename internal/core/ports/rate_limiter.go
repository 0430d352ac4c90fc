package ports

import "context"

// RateLimiter tracks login attempts per client key inside a rolling window.
type RateLimiter interface {
	// Allow records an attempt for clientKey and reports whether it is
	// permitted. A rejected attempt is not counted.
	Allow(ctx context.Context, clientKey string) bool
}
