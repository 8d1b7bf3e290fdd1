package notify

import (
	"context"
	"errors"

	"taxi-dispatch/internal/entities"
)

// ErrNoSession у получателя нет открытого канала доставки.
var ErrNoSession = errors.New("recipient has no active session")

// Fanout доставляет событие во все каналы. Канал без сессии получателя
// ошибкой не считается, если событие ушло хотя бы в один другой канал.
type Fanout struct {
	notifiers []Notifier
}

func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

func (f *Fanout) NotifyDriver(ctx context.Context, driverID int64, event entities.Event) error {
	return f.each(func(n Notifier) error {
		return n.NotifyDriver(ctx, driverID, event)
	})
}

func (f *Fanout) NotifyPassenger(ctx context.Context, passengerID int64, event entities.Event) error {
	return f.each(func(n Notifier) error {
		return n.NotifyPassenger(ctx, passengerID, event)
	})
}

func (f *Fanout) each(send func(n Notifier) error) error {
	var (
		errs      []error
		delivered bool
	)
	for _, n := range f.notifiers {
		err := send(n)
		switch {
		case err == nil:
			delivered = true
		case errors.Is(err, ErrNoSession):
			// получатель просто не подключен к этому каналу
		default:
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if !delivered && len(f.notifiers) > 0 {
		return ErrNoSession
	}
	return nil
}
