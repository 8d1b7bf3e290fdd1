package dispatch

import (
	"context"
	"errors"
	"fmt"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

// TryAssign предлагает pending заказ первому подходящему водителю из очереди.
// Для отсутствующего или уже не pending заказа возвращает AssignmentNoop,
// при отсутствии свободных водителей AssignmentUnassigned. Ни то ни другое
// не ошибка.
func (d *Dispatcher) TryAssign(ctx context.Context, orderID int64) (*entities.Assignment, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var assignment entities.Assignment
	err := d.locked(ctx, func(out *outbox) error {
		var err error
		assignment, err = d.tryAssignLocked(ctx, orderID, out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (d *Dispatcher) tryAssignLocked(ctx context.Context, orderID int64, out *outbox) (entities.Assignment, error) {
	outcome := entities.AssignmentNoop
	candidates := d.queue.IDs()

	var (
		assigned *entities.Order
		driver   *entities.Driver
	)
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := d.orders.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				return nil
			}
			return fmt.Errorf("get order: %w", err)
		}
		if order.Status != entities.OrderPending {
			return nil
		}

		outcome = entities.AssignmentUnassigned
		driver, err = d.pickDriver(ctx, orderID, candidates)
		if err != nil {
			return err
		}
		if driver == nil {
			return nil
		}

		assignedAt := d.now()
		next := *order
		next.Status = entities.OrderAssigned
		next.DriverID = &driver.ID
		next.AssignedAt = &assignedAt

		assigned, err = d.orders.UpdateIfStatus(ctx, &next, entities.OrderPending)
		if err != nil {
			return fmt.Errorf("assign order: %w", err)
		}

		err = d.drivers.ClaimOrder(ctx, driver.ID, orderID)
		if err != nil {
			return fmt.Errorf("claim order for driver %d: %w", driver.ID, err)
		}

		outcome = entities.AssignmentAssigned
		return nil
	})
	if err != nil {
		return entities.Assignment{OrderID: orderID, Outcome: entities.AssignmentNoop}, err
	}

	AssignmentsTotal.WithLabelValues(outcome.String()).Inc()
	result := entities.Assignment{OrderID: orderID, Outcome: outcome}
	if outcome != entities.AssignmentAssigned {
		return result, nil
	}

	result.DriverID = &driver.ID
	d.startTimer(orderID, driver.ID, d.cfg.AssignmentTimeout)
	observeTransition(entities.OrderAssigned)

	d.log.Info("order assigned",
		logger.NewField("order", orderID),
		logger.NewField("driver", driver.ID),
	)

	now := d.now()
	out.driver(driver.ID, entities.NewOrderEvent(entities.EventNewAssignmentOffer, assigned, now))
	out.passenger(assigned.PassengerID, entities.NewOrderEvent(entities.EventOrderAssigned, assigned, now))
	return result, nil
}

// pickDriver первый в порядке очереди водитель на линии, активный, без
// заказа и не отказывавшийся от этого заказа. nil если такого нет.
func (d *Dispatcher) pickDriver(ctx context.Context, orderID int64, queue []int64) (*entities.Driver, error) {
	if len(queue) == 0 {
		return nil, nil //nolint:nilnil // пустая очередь не ошибка
	}

	drivers, err := d.drivers.GetByIDs(ctx, queue)
	if err != nil {
		return nil, fmt.Errorf("get queued drivers: %w", err)
	}

	byID := make(map[int64]*entities.Driver, len(drivers))
	for i := range drivers {
		byID[drivers[i].ID] = &drivers[i]
	}

	for _, id := range queue {
		driver, ok := byID[id]
		if !ok || d.isSkipped(orderID, id) {
			continue
		}
		if driver.Eligible() {
			return driver, nil
		}
	}
	return nil, nil //nolint:nilnil // свободных водителей нет
}

// redispatchLocked перебирает pending заказы от старых к новым после того,
// как появился свободный водитель.
func (d *Dispatcher) redispatchLocked(ctx context.Context, out *outbox) error {
	if d.queue.Len() == 0 {
		return nil
	}

	pending := entities.OrderPending
	orders, err := d.orders.List(ctx, entities.OrderFilter{
		Status: &pending,
		Limit:  d.cfg.RedispatchBatch,
	})
	if err != nil {
		return fmt.Errorf("list pending orders: %w", err)
	}

	for _, order := range orders {
		assignment, err := d.tryAssignLocked(ctx, order.ID, out)
		if err != nil {
			return fmt.Errorf("redispatch order %d: %w", order.ID, err)
		}
		// никто из очереди не отказывался от этого заказа и все равно
		// свободных нет, значит дальше перебирать бессмысленно
		if assignment.Outcome == entities.AssignmentUnassigned && len(d.skipped[order.ID]) == 0 {
			break
		}
	}
	return nil
}

// followUp логирует ошибку действия, которое выполняется после уже
// закоммиченной операции и не должно ее откатывать.
func (d *Dispatcher) followUp(action string, orderID int64, err error) {
	if err == nil {
		return
	}
	d.log.Error("dispatch follow-up failed",
		logger.NewField("action", action),
		logger.NewField("order", orderID),
		logger.NewField("error", err),
	)
}
