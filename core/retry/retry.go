package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is wrapped by the error Do returns once every attempt failed.
var ErrExhausted = errors.New("retries exhausted")

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real-time SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy bounds the attempts of an operation.
type Policy struct {
	// Attempts is the maximum number of calls. Values below 1 mean 1.
	Attempts int
	// Base is the backoff unit; the wait after attempt n is Base*n.
	Base time.Duration
	// Sleep waits between attempts. Nil uses Sleep.
	Sleep SleepFunc
	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Backoff returns the wait after the given failed attempt.
func (p Policy) Backoff(attempt int) time.Duration {
	return p.Base * time.Duration(attempt)
}

// Do calls fn until it succeeds or the attempts run out. It returns the number
// of attempts made. The last failure is wrapped together with ErrExhausted.
// A canceled context stops the loop during the backoff wait.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if attempt == attempts {
			break
		}

		wait := p.Backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, lastErr)
		}
		if err := sleep(ctx, wait); err != nil {
			return attempt, fmt.Errorf("retry interrupted after attempt %d: %w", attempt, errors.Join(err, lastErr))
		}
	}

	return attempts, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}
