// Package limiter throttles repeated failed logins per (username, client IP).
package limiter

import (
	"context"
	"time"
)

// Limiter tracks login failures and enforces temporary lockouts. The IP is
// handed in pre-hashed so raw addresses never reach storage.
type Limiter interface {
	// Allow reports whether a login attempt may proceed; when blocked it also
	// returns how long to wait.
	Allow(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error)
	// Success clears the failure counter after a correct password.
	Success(ctx context.Context, username string, ipHash []byte) error
	// Failure counts a bad attempt and reports whether it tripped a lockout.
	Failure(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error)
}
