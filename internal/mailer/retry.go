package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds delivery attempts. Attempts counts every try including
// the first; Backoff is the initial wait, doubled after each failure.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// RetryError is returned once every attempt has failed.
type RetryError struct {
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("gave up after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error { return e.Err }

// Do runs op until it succeeds, the attempt budget is spent or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var b backoff.BackOff = &backoff.ZeroBackOff{}
	if p.Backoff > 0 {
		b = backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(p.Backoff),
			backoff.WithMultiplier(2),
			backoff.WithMaxElapsedTime(0),
		)
	}
	b = backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)

	tried := 0
	err := backoff.RetryNotify(func() error {
		tried++
		return op(ctx)
	}, b, func(err error, wait time.Duration) {
		slog.Warn("mail delivery failed, retrying", "attempt", tried, "wait", wait, "error", err)
	})
	if err != nil {
		return &RetryError{Attempts: tried, Err: err}
	}
	return nil
}

// MaxDuration is the longest Do can run when every attempt takes
// perAttempt: all attempts plus the widest randomized waits between them.
func (p RetryPolicy) MaxDuration(perAttempt time.Duration) time.Duration {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	total := time.Duration(attempts) * perAttempt
	interval := p.Backoff
	for i := 1; i < attempts && p.Backoff > 0; i++ {
		if interval > backoff.DefaultMaxInterval {
			interval = backoff.DefaultMaxInterval
		}
		total += time.Duration(float64(interval) * (1 + backoff.DefaultRandomizationFactor))
		interval *= 2
	}
	return total
}
