package ports

import "context"

// LoginThrottle bounds failed login attempts per account. Implementations
// fail open: an unavailable backend must not lock users out.
type LoginThrottle interface {
	// Allow reports whether another attempt for the given email may proceed.
	Allow(ctx context.Context, email string) bool
	// RecordFailure notes a failed attempt for the given email.
	RecordFailure(ctx context.Context, email string)
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string)
}
