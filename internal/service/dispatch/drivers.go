package dispatch

import (
	"context"
	"fmt"

	"github.com/AlekSi/pointer"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

// RegisterDriverOnline ставит водителя в хвост очереди. Повторный вызов
// позицию не меняет. После этого водителю могут сразу предложить
// ожидающий заказ.
func (d *Dispatcher) RegisterDriverOnline(ctx context.Context, driverID int64) (*entities.Driver, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	var driver *entities.Driver
	err := d.locked(ctx, func(out *outbox) error {
		queue, _ := d.queue.WithEnqueued(driverID)

		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			_, err := d.drivers.Update(ctx, entities.DriverModify{
				ID:       &driverID,
				IsOnline: pointer.ToBool(true),
			})
			if err != nil {
				return fmt.Errorf("mark driver online: %w", err)
			}

			err = d.drivers.UpdateQueuePositions(ctx, queue.IDs())
			if err != nil {
				return fmt.Errorf("persist queue positions: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		d.setQueue(queue)

		d.log.Info("driver online",
			logger.NewField("driver", driverID),
			logger.NewField("position", queue.Position(driverID)),
		)

		d.followUp("redispatch after driver online", 0, d.redispatchLocked(ctx, out))

		driver, err = d.drivers.GetByID(ctx, driverID)
		if err != nil {
			return fmt.Errorf("get driver: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// RegisterDriverOffline убирает водителя из очереди. Непринятое
// предложение снимается и заказ уходит следующему; принятый заказ остается
// за водителем.
func (d *Dispatcher) RegisterDriverOffline(ctx context.Context, driverID int64) (*entities.Driver, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	var driver *entities.Driver
	err := d.locked(ctx, func(out *outbox) error {
		queue, _ := d.queue.WithDequeued(driverID)

		var reverted *entities.Order
		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := d.drivers.Update(ctx, entities.DriverModify{
				ID:       &driverID,
				IsOnline: pointer.ToBool(false),
			})
			if err != nil {
				return fmt.Errorf("mark driver offline: %w", err)
			}

			err = d.drivers.UpdateQueuePositions(ctx, queue.IDs())
			if err != nil {
				return fmt.Errorf("persist queue positions: %w", err)
			}

			if current.CurrentOrderID == nil {
				return nil
			}
			order, err := d.orders.GetByID(ctx, *current.CurrentOrderID)
			if err != nil {
				return fmt.Errorf("get current order: %w", err)
			}
			if order.Status != entities.OrderAssigned || !order.HeldBy(driverID) {
				return nil
			}

			reverted, err = d.revertAssignment(ctx, order, driverID)
			return err
		})
		if err != nil {
			return err
		}
		d.setQueue(queue)

		d.log.Info("driver offline", logger.NewField("driver", driverID))

		if reverted != nil {
			d.stopTimer(reverted.ID)
			d.skip(reverted.ID, driverID)
			observeTransition(entities.OrderPending)

			_, err = d.tryAssignLocked(ctx, reverted.ID, out)
			d.followUp("reassign after driver offline", reverted.ID, err)
		}

		driver, err = d.drivers.GetByID(ctx, driverID)
		if err != nil {
			return fmt.Errorf("get driver: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// Rebuild восстанавливает очередь из хранилища после старта процесса и
// заново взводит таймеры непринятых предложений.
func (d *Dispatcher) Rebuild(ctx context.Context) error {
	return d.locked(ctx, func(_ *outbox) error {
		var (
			queue    *Queue
			assigned []entities.Order
		)
		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			online, err := d.drivers.GetOnline(ctx)
			if err != nil {
				return fmt.Errorf("get online drivers: %w", err)
			}

			queue = NewQueue(queueOrder(online)...)
			err = d.drivers.UpdateQueuePositions(ctx, queue.IDs())
			if err != nil {
				return fmt.Errorf("persist queue positions: %w", err)
			}

			status := entities.OrderAssigned
			assigned, err = d.orders.List(ctx, entities.OrderFilter{Status: &status})
			if err != nil {
				return fmt.Errorf("list assigned orders: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		d.setQueue(queue)

		now := d.now()
		for _, order := range assigned {
			if order.DriverID == nil || order.AssignedAt == nil {
				continue
			}
			remaining := order.AssignedAt.Add(d.cfg.AssignmentTimeout).Sub(now)
			d.startTimer(order.ID, *order.DriverID, remaining)
		}

		d.log.Info("dispatcher rebuilt",
			logger.NewField("queue_length", queue.Len()),
			logger.NewField("pending_offers", len(assigned)),
		)
		return nil
	})
}

// SetDriverActive административный флаг. Неактивный водитель остается в
// очереди, но заказы ему не предлагаются.
func (d *Dispatcher) SetDriverActive(ctx context.Context, driverID int64, active bool) (*entities.Driver, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	var driver *entities.Driver
	err := d.locked(ctx, func(out *outbox) error {
		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			var err error
			driver, err = d.drivers.Update(ctx, entities.DriverModify{
				ID:       &driverID,
				IsActive: &active,
			})
			if err != nil {
				return fmt.Errorf("update driver activity: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if !active {
			return nil
		}
		d.followUp("redispatch after driver activation", 0, d.redispatchLocked(ctx, out))

		driver, err = d.drivers.GetByID(ctx, driverID)
		if err != nil {
			return fmt.Errorf("get driver: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}
