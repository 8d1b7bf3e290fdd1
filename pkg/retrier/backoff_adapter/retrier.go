package backoff_adapter

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"taxi-dispatch/pkg/retrier"
)

// Retrier реализует retrier.Retrier поверх экспоненциального backoff.
type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	var policy backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	if r.config.MaxRetries > 0 {
		policy = backoff.WithMaxRetries(policy, r.config.MaxRetries)
	}

	operation := func() error {
		err := fn(ctx)
		if err == nil || ctx.Err() != nil {
			return err
		}
		if r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var notify backoff.Notify
	if r.config.OnRetry != nil {
		notify = backoff.Notify(r.config.OnRetry)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify)
}
