package reasoning

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrRetriesExhausted means every attempt allowed by the RetryPolicy failed.
var ErrRetriesExhausted = errors.New("reasoning: retries exhausted")

// RetryPolicy bounds how often a failed call is repeated and how long to
// wait in between. Delays grow exponentially from InitialInterval up to
// MaxInterval.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     5,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
	}
}

// backOff builds the schedule for one retried operation. A non-positive
// MaxAttempts is treated as a single attempt.
func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	if p.Multiplier > 0 {
		eb.Multiplier = p.Multiplier
	}
	eb.MaxElapsedTime = 0
	eb.Reset()

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)
}

// retry runs op until it succeeds, the policy gives up, or ctx ends.
// onRetry is called after each failed attempt that will be retried.
func (p RetryPolicy) retry(ctx context.Context, op func(attempt int) error, onRetry func(attempt int, err error, wait time.Duration)) (int, error) {
	attempt := 0
	err := backoff.RetryNotify(
		func() error {
			attempt++
			return op(attempt)
		},
		p.backOff(ctx),
		func(err error, wait time.Duration) {
			if onRetry != nil {
				onRetry(attempt, err, wait)
			}
		},
	)
	return attempt, err
}
