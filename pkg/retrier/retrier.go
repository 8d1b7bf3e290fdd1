package retrier

import (
	"context"
	"time"
)

// Retrier повторяет fn, пока она не завершится успешно, не кончится
// бюджет попыток или не отменится ctx.
type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// NotifyFunc вызывается перед каждой повторной попыткой.
type NotifyFunc func(err error, next time.Duration)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// 0 - без ограничения, кроме MaxElapsedTime
	MaxRetries uint64

	// nil - ретраятся все ошибки
	ShouldRetry ShouldRetryFunc

	OnRetry NotifyFunc
}
