package goal

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ErrInvalidRetryPolicy is returned by RetryPolicy.Validate when the policy
// is malformed.
var ErrInvalidRetryPolicy = errors.New("goal: invalid retry policy")

// RetryPolicy configures exponential backoff for a flaky State reader;
// edge-device sensors routinely fail transiently. Backoff math follows
// the standard exponential-with-jitter shape.
type RetryPolicy struct {
	// MaxAttempts is the maximum number of read attempts, including the
	// first. Must be >= 1; 1 means no retries.
	MaxAttempts int

	// BaseDelay is the base delay for exponential backoff between
	// attempts.
	BaseDelay time.Duration

	// MaxDelay caps the exponential growth of BaseDelay*2^attempt.
	MaxDelay time.Duration

	// Retryable decides whether an error should trigger another attempt.
	// If nil, every non-StateNotFound error is retried. StateNotFound is
	// never retried regardless of this predicate — it is a meaningful
	// result, not a transient failure.
	Retryable func(error) bool
}

// Validate reports whether rp is well-formed.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidRetryPolicy
	}
	if rp.MaxDelay > 0 && rp.BaseDelay > 0 && rp.MaxDelay < rp.BaseDelay {
		return ErrInvalidRetryPolicy
	}
	return nil
}

// computeBackoff returns the delay before the given zero-based retry
// attempt, per delay = min(base*2^attempt, maxDelay) + jitter(0, base).
func computeBackoff(attempt int, base, maxDelay time.Duration, rng *rand.Rand) time.Duration {
	delay := base * (1 << attempt)
	if delay > maxDelay {
		delay = maxDelay
	}
	if base <= 0 {
		return delay
	}
	var jitter time.Duration
	if rng != nil {
		jitter = time.Duration(rng.Int63n(int64(base)))
	} else {
		jitter = time.Duration(rand.Int63n(int64(base))) // #nosec G404 -- jitter for retry timing, not security
	}
	return delay + jitter
}

// RetryState wraps state with rp's exponential backoff: a failing,
// retryable read is attempted up to rp.MaxAttempts times in total before
// its error is returned. A StateNotFound result is returned immediately, unretried, so
// that the state-absence protocol is preserved exactly.
func RetryState[C, T any](state State[C, T], rp *RetryPolicy) State[C, T] {
	return func(ctx context.Context, c C) (T, error) {
		var zero T
		var lastErr error
		for attempt := 0; attempt < rp.MaxAttempts; attempt++ {
			if attempt > 0 {
				delay := computeBackoff(attempt-1, rp.BaseDelay, rp.MaxDelay, nil)
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return zero, ctx.Err()
				case <-timer.C:
				}
			}

			value, err := state(ctx, c)
			if err == nil {
				return value, nil
			}
			if IsStateNotFound(err) {
				return zero, err
			}
			lastErr = err
			if rp.Retryable != nil && !rp.Retryable(err) {
				return zero, err
			}
		}
		return zero, lastErr
	}
}
