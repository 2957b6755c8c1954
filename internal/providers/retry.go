package providers

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy is an explicit, bounded exponential backoff applied to every
// external provider call. After exhaustion the last error is returned and
// the caller degrades to an empty/unknown result.
type RetryPolicy struct {
	MaxAttempts  uint64
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// IsRetryable decides which errors trigger another attempt.
	// Defaults to Retryable.
	IsRetryable func(error) bool
}

// DefaultRetryPolicy mirrors the historical provider contract: three
// attempts, exponential delay between 2s and 60s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     60 * time.Second,
	}
}

// Do runs op with retries per the policy. Non-retryable errors fail
// immediately; context cancellation stops the retry loop.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	retryable := p.IsRetryable
	if retryable == nil {
		retryable = Retryable
	}

	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialDelay
	bo.MaxInterval = p.MaxDelay

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if retryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, attempts-1), ctx))
}
