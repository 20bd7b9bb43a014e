package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type RetryConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		Backoff:    50 * time.Millisecond,
	}
}

func NormalizeRetryConfig(cfg RetryConfig) RetryConfig {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultRetryConfig().Backoff
	}
	return cfg
}

const maxBackoffFactor = 16

// Retry runs fn until it succeeds, returns an error retryable rejects, or
// MaxRetries extra attempts are spent. Waits grow exponentially from Backoff
// with jitter, capped at maxBackoffFactor times Backoff.
func Retry(ctx context.Context, cfg RetryConfig, retryable func(error) bool, fn func(ctx context.Context) error) error {
	cfg = NormalizeRetryConfig(cfg)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.Backoff
	policy.MaxInterval = cfg.Backoff * maxBackoffFactor

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := fn(ctx)
		if err != nil && (retryable == nil || !retryable(err)) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(cfg.MaxRetries+1)),
		backoff.WithMaxElapsedTime(0),
	)

	// The last allowed attempt returns a permanent error still wrapped.
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Unwrap()
	}
	return err
}
