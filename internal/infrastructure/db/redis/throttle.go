package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LoginThrottle bounds failed login attempts per email using a Redis counter
// with a sliding TTL window. Key format: login_fail:<normalized_email>.
//
// Redis errors fail open: an unavailable backend must never lock users out.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
	log         zerolog.Logger
}

// NewLoginThrottle creates a throttle allowing maxFailures failed attempts
// per window before further attempts are refused.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration, log zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, maxFailures: int64(maxFailures), window: window, log: log}
}

// Allow reports whether another attempt for the given email may proceed.
func (t *LoginThrottle) Allow(ctx context.Context, email string) bool {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err != nil {
		if err != redis.Nil {
			t.log.Warn().Err(err).Msg("throttle check failed, allowing attempt")
		}
		return true
	}
	return n < t.maxFailures
}

// RecordFailure notes a failed attempt and refreshes the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	key := t.key(email)
	if err := t.client.Incr(ctx, key).Err(); err != nil {
		t.log.Warn().Err(err).Msg("throttle increment failed")
		return
	}
	if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
		t.log.Warn().Err(err).Msg("throttle expire failed")
	}
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		t.log.Warn().Err(err).Msg("throttle reset failed")
	}
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login_fail:%s", strings.ToLower(strings.TrimSpace(email)))
}

// NoopThrottle is the default when rate limiting is disabled: every attempt
// is allowed.
type NoopThrottle struct{}

func (NoopThrottle) Allow(context.Context, string) bool    { return true }
func (NoopThrottle) RecordFailure(context.Context, string) {}
func (NoopThrottle) Reset(context.Context, string)         {}
