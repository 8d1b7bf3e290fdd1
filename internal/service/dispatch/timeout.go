package dispatch

import (
	"context"
	"fmt"
	"time"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

// startTimer взводит таймер предложения. Повторный вызов для того же заказа
// заменяет предыдущий таймер.
func (d *Dispatcher) startTimer(orderID, driverID int64, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	d.scheduler.Schedule(orderID, delay, func() {
		d.onAssignmentTimeout(orderID, driverID)
	})
}

func (d *Dispatcher) stopTimer(orderID int64) {
	d.scheduler.Cancel(orderID)
}

func (d *Dispatcher) onAssignmentTimeout(orderID, driverID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.TimeoutHandlerDeadline)
	defer cancel()

	err := d.locked(ctx, func(out *outbox) error {
		return d.expireAssignmentLocked(ctx, orderID, driverID, out)
	})
	if err != nil {
		d.log.Error("assignment timeout handling failed",
			logger.NewField("order", orderID),
			logger.NewField("driver", driverID),
			logger.NewField("error", err),
		)
	}
}

// expireAssignmentLocked снимает просроченное предложение. Если за время
// ожидания заказ приняли, отменили или переназначили, ничего не делает.
func (d *Dispatcher) expireAssignmentLocked(ctx context.Context, orderID, driverID int64, out *outbox) error {
	var reverted *entities.Order
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := d.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
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
	if reverted == nil {
		d.log.Info("stale assignment timer ignored",
			logger.NewField("order", orderID),
			logger.NewField("driver", driverID),
		)
		return nil
	}

	d.skip(orderID, driverID)
	AssignmentTimeoutsTotal.Inc()
	observeTransition(entities.OrderPending)

	d.log.Info("assignment timed out",
		logger.NewField("order", orderID),
		logger.NewField("driver", driverID),
	)

	event := entities.NewOrderEvent(entities.EventAssignmentTimedOut, reverted, d.now())
	event.DriverID = &driverID
	out.driver(driverID, event)

	_, err = d.tryAssignLocked(ctx, orderID, out)
	d.followUp("reassign after timeout", orderID, err)
	return nil
}

// revertAssignment возвращает заказ в pending и освобождает водителя.
// Позиция водителя в очереди не меняется.
func (d *Dispatcher) revertAssignment(ctx context.Context, order *entities.Order, driverID int64) (*entities.Order, error) {
	next := *order
	next.Status = entities.OrderPending
	next.DriverID = nil
	next.AssignedAt = nil

	reverted, err := d.orders.UpdateIfStatus(ctx, &next, entities.OrderAssigned)
	if err != nil {
		return nil, fmt.Errorf("revert assignment: %w", err)
	}

	err = d.drivers.ReleaseOrder(ctx, driverID, order.ID)
	if err != nil {
		return nil, fmt.Errorf("release driver %d: %w", driverID, err)
	}
	return reverted, nil
}
