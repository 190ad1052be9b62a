package airapi

import (
	"context"
	"time"
)

// BackoffPolicy returns the delay before the retry following a failed attempt.
// Attempts are zero-based: attempt 0 is the first failure.
type BackoffPolicy func(attempt int) time.Duration

// ExponentialBackoff doubles the base delay on every attempt: base, 2*base, 4*base...
func ExponentialBackoff(base time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration {
		return base << attempt
	}
}

// SleepFunc suspends the caller for d, honoring context cancellation. Tests
// substitute a recording implementation so no real timers run.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
