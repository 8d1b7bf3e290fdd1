package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

// SubmitOrder создает заказ пассажира и сразу пытается его назначить.
// Отсутствие свободных водителей не ошибка: заказ остается pending.
func (d *Dispatcher) SubmitOrder(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	orderModify, err := normalizeOrderModify(orderModify)
	if err != nil {
		return nil, err
	}

	var order *entities.Order
	err = d.locked(ctx, func(out *outbox) error {
		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			var err error
			order, err = d.orders.Create(ctx, orderModify)
			if err != nil {
				return fmt.Errorf("create order: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		observeTransition(entities.OrderPending)

		d.log.Info("order submitted",
			logger.NewField("order", order.ID),
			logger.NewField("passenger", order.PassengerID),
		)

		assignment, err := d.tryAssignLocked(ctx, order.ID, out)
		if err != nil {
			d.followUp("assign submitted order", order.ID, err)
			return nil
		}
		if assignment.Outcome != entities.AssignmentAssigned {
			return nil
		}

		order, err = d.orders.GetByID(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// driverStep переход заказа, инициированный назначенным водителем.
type driverStep struct {
	from []entities.OrderStatusType
	to   entities.OrderStatusType
	// release снимает заказ с водителя в той же транзакции.
	release bool
}

// stepLocked проверяет guard-условия в порядке: заказ завершен, водитель
// не тот, статус не тот. Затем сохраняет переход через compare-and-set.
func (d *Dispatcher) stepLocked(ctx context.Context, orderID, driverID int64, step driverStep) (*entities.Order, error) {
	var updated *entities.Order
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := d.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		switch {
		case order.Status.IsTerminal():
			return ErrOrderTerminal
		case !order.HeldBy(driverID):
			return ErrWrongActor
		case !slices.Contains(step.from, order.Status) || !order.Status.CanTransitionTo(step.to):
			return fmt.Errorf("%w: %s to %s", ErrWrongState, order.Status, step.to)
		}

		next := *order
		next.Status = step.to
		if step.to == entities.OrderCompleted {
			completedAt := d.now()
			next.CompletedAt = &completedAt
		}

		updated, err = d.orders.UpdateIfStatus(ctx, &next, order.Status)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if step.release {
			err = d.drivers.ReleaseOrder(ctx, driverID, orderID)
			if err != nil {
				return fmt.Errorf("release driver %d: %w", driverID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observeTransition(updated.Status)
	d.log.Info("order status changed",
		logger.NewField("order", orderID),
		logger.NewField("driver", driverID),
		logger.NewField("status", updated.Status.String()),
	)
	return updated, nil
}

// AcceptOrder водитель принимает предложение до истечения таймера.
func (d *Dispatcher) AcceptOrder(ctx context.Context, orderID, driverID int64) (*entities.Order, error) {
	err := validateDriverAction(orderID, driverID)
	if err != nil {
		return nil, err
	}

	var order *entities.Order
	err = d.locked(ctx, func(out *outbox) error {
		order, err = d.acceptLocked(ctx, orderID, driverID, out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (d *Dispatcher) acceptLocked(ctx context.Context, orderID, driverID int64, out *outbox) (*entities.Order, error) {
	order, err := d.stepLocked(ctx, orderID, driverID, driverStep{
		from: []entities.OrderStatusType{entities.OrderAssigned},
		to:   entities.OrderAccepted,
	})
	if err != nil {
		return nil, err
	}

	d.stopTimer(orderID)
	d.forget(orderID)

	out.passenger(order.PassengerID, entities.NewOrderEvent(entities.EventAssignmentAccepted, order, d.now()))
	return order, nil
}

// RejectOrder водитель отказывается от предложения. Заказ возвращается в
// pending и предлагается следующему в очереди, минуя отказавшихся.
func (d *Dispatcher) RejectOrder(ctx context.Context, orderID, driverID int64) (*entities.Order, error) {
	err := validateDriverAction(orderID, driverID)
	if err != nil {
		return nil, err
	}

	var order *entities.Order
	err = d.locked(ctx, func(out *outbox) error {
		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := d.orders.GetByID(ctx, orderID)
			if err != nil {
				return fmt.Errorf("get order: %w", err)
			}

			switch {
			case current.Status.IsTerminal():
				return ErrOrderTerminal
			case !current.HeldBy(driverID):
				return ErrWrongActor
			case current.Status != entities.OrderAssigned:
				return fmt.Errorf("%w: cannot reject %s order", ErrWrongState, current.Status)
			}

			order, err = d.revertAssignment(ctx, current, driverID)
			return err
		})
		if err != nil {
			return err
		}

		d.stopTimer(orderID)
		d.skip(orderID, driverID)
		observeTransition(entities.OrderPending)

		d.log.Info("assignment rejected",
			logger.NewField("order", orderID),
			logger.NewField("driver", driverID),
		)

		assignment, err := d.tryAssignLocked(ctx, orderID, out)
		if err != nil {
			d.followUp("reassign after reject", orderID, err)
			return nil
		}
		if assignment.Outcome != entities.AssignmentAssigned {
			return nil
		}

		order, err = d.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AdvanceOrder переводит заказ назначенного водителя вперед:
// accepted, in_progress или completed.
func (d *Dispatcher) AdvanceOrder(
	ctx context.Context,
	orderID, driverID int64,
	toStatus entities.OrderStatusType,
) (*entities.Order, error) {
	err := validateDriverAction(orderID, driverID)
	if err != nil {
		return nil, err
	}
	if !isAdvanceTarget(toStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, toStatus)
	}

	var order *entities.Order
	err = d.locked(ctx, func(out *outbox) error {
		switch toStatus {
		case entities.OrderAccepted:
			order, err = d.acceptLocked(ctx, orderID, driverID, out)
			return err

		case entities.OrderInProgress:
			order, err = d.stepLocked(ctx, orderID, driverID, driverStep{
				from: []entities.OrderStatusType{entities.OrderAccepted},
				to:   entities.OrderInProgress,
			})
			if err != nil {
				return err
			}
			out.passenger(order.PassengerID, entities.NewOrderEvent(entities.EventTripStarted, order, d.now()))
			return nil

		default:
			order, err = d.stepLocked(ctx, orderID, driverID, driverStep{
				from:    []entities.OrderStatusType{entities.OrderAccepted, entities.OrderInProgress},
				to:      entities.OrderCompleted,
				release: true,
			})
			if err != nil {
				return err
			}
			out.passenger(order.PassengerID, entities.NewOrderEvent(entities.EventTripCompleted, order, d.now()))

			d.followUp("redispatch after completion", orderID, d.redispatchLocked(ctx, out))
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder пассажир отменяет свой заказ из любого незавершенного
// статуса. Назначенный водитель освобождается и получает уведомление.
func (d *Dispatcher) CancelOrder(ctx context.Context, orderID, passengerID int64) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(passengerID) {
		return nil, ErrInvalidPassengerID
	}

	var order *entities.Order
	err := d.locked(ctx, func(out *outbox) error {
		var heldBy *int64
		err := d.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := d.orders.GetByID(ctx, orderID)
			if err != nil {
				return fmt.Errorf("get order: %w", err)
			}

			switch {
			case current.PassengerID != passengerID:
				return ErrWrongActor
			case current.Status.IsTerminal():
				return ErrOrderTerminal
			}

			heldBy = current.DriverID
			order, err = d.cancel(ctx, current)
			return err
		})
		if err != nil {
			return err
		}

		d.stopTimer(orderID)
		d.forget(orderID)
		observeTransition(entities.OrderCancelled)

		d.log.Info("order cancelled",
			logger.NewField("order", orderID),
			logger.NewField("passenger", passengerID),
		)

		if heldBy == nil {
			return nil
		}

		event := entities.NewOrderEvent(entities.EventOrderCancelled, order, d.now())
		event.DriverID = heldBy
		out.driver(*heldBy, event)

		d.followUp("redispatch after cancel", orderID, d.redispatchLocked(ctx, out))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// cancel переводит заказ в cancelled и снимает его с водителя.
func (d *Dispatcher) cancel(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	next := *order
	next.Status = entities.OrderCancelled
	next.DriverID = nil

	cancelled, err := d.orders.UpdateIfStatus(ctx, &next, order.Status)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	if order.DriverID != nil {
		err = d.drivers.ReleaseOrder(ctx, *order.DriverID, order.ID)
		if err != nil {
			return nil, fmt.Errorf("release driver %d: %w", *order.DriverID, err)
		}
	}
	return cancelled, nil
}

// ExpirePendingOrders отменяет заказы, которые ждут водителя дольше
// olderThan, и сообщает об этом пассажирам. Возвращает число отмененных.
func (d *Dispatcher) ExpirePendingOrders(ctx context.Context, olderThan time.Duration) (int64, error) {
	var expired int64
	err := d.locked(ctx, func(out *outbox) error {
		pending := entities.OrderPending
		createdBefore := d.now().Add(-olderThan)

		orders, err := d.orders.List(ctx, entities.OrderFilter{
			Status:        &pending,
			CreatedBefore: &createdBefore,
		})
		if err != nil {
			return fmt.Errorf("list stale pending orders: %w", err)
		}

		for _, order := range orders {
			var cancelled *entities.Order
			err := d.txManager.Do(ctx, func(ctx context.Context) error {
				var err error
				cancelled, err = d.cancel(ctx, &order)
				return err
			})
			if errors.Is(err, ErrStatusConflict) {
				continue
			}
			if err != nil {
				return fmt.Errorf("expire order %d: %w", order.ID, err)
			}

			expired++
			d.forget(order.ID)
			observeTransition(entities.OrderCancelled)
			out.passenger(cancelled.PassengerID, entities.NewOrderEvent(entities.EventOrderCancelled, cancelled, d.now()))
		}
		return nil
	})
	if expired > 0 {
		d.log.Info("pending orders expired", logger.NewField("count", expired))
	}
	return expired, err
}

func (d *Dispatcher) GetOrder(ctx context.Context, orderID int64) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// GetDriverOrder активный заказ водителя, ErrOrderNotFound если его нет.
func (d *Dispatcher) GetDriverOrder(ctx context.Context, driverID int64) (*entities.Order, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	var order *entities.Order
	err := d.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		driver, err := d.drivers.GetByID(ctx, driverID)
		if err != nil {
			return fmt.Errorf("get driver: %w", err)
		}
		if driver.CurrentOrderID == nil {
			return ErrOrderNotFound
		}

		order, err = d.orders.GetByID(ctx, *driver.CurrentOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func validateDriverAction(orderID, driverID int64) error {
	if !isValidID(orderID) {
		return ErrInvalidOrderID
	}
	if !isValidID(driverID) {
		return ErrInvalidDriverID
	}
	return nil
}
