package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Key format: ratelimit:login:<client_key>
const rateLimitKeyPrefix = "ratelimit:login:"

// Limiter is a fixed-window login attempt limiter backed by Redis, so
// counters are shared across replicas. The window TTL is set when the first
// attempt creates the key.
type Limiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	log    zerolog.Logger
}

// NewLimiter creates a Limiter allowing max attempts per window.
func NewLimiter(client *redis.Client, max int, window time.Duration, log zerolog.Logger) *Limiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Limiter{client: client, max: int64(max), window: window, log: log}
}

// Allow records an attempt for clientKey and reports whether it is permitted.
// Rejected attempts are not counted against the window. A Redis failure must
// not take logins down, so the limiter fails open and logs the cause.
func (l *Limiter) Allow(ctx context.Context, clientKey string) bool {
	key := rateLimitKeyPrefix + clientKey

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("rate limit check failed, allowing attempt")
		return true
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Msg("rate limit window expiry not set")
		}
	}
	if n > l.max {
		// undo the increment so the rejection itself is not counted
		_ = l.client.Decr(ctx, key).Err()
		return false
	}
	return true
}
