package entities

import (
	"errors"
	"fmt"
	"time"
)

type Place struct {
	Address string
	Lat     *float64
	Lng     *float64
}

type Order struct {
	ID          int64
	PassengerID int64
	DriverID    *int64
	Pickup      Place
	Destination Place
	Status      OrderStatusType
	CreatedAt   time.Time
	AssignedAt  *time.Time
	CompletedAt *time.Time
}

// HeldBy сообщает, закреплен ли заказ за водителем.
func (o *Order) HeldBy(driverID int64) bool {
	return o.DriverID != nil && *o.DriverID == driverID
}

type OrderStatusType string

const (
	OrderPending    OrderStatusType = "pending"
	OrderAssigned   OrderStatusType = "assigned"
	OrderAccepted   OrderStatusType = "accepted"
	OrderInProgress OrderStatusType = "in_progress"
	OrderCompleted  OrderStatusType = "completed"
	OrderCancelled  OrderStatusType = "cancelled"
)

var orderTransitions = map[OrderStatusType][]OrderStatusType{
	OrderPending:    {OrderAssigned, OrderCancelled},
	OrderAssigned:   {OrderPending, OrderAccepted, OrderCancelled},
	OrderAccepted:   {OrderInProgress, OrderCompleted, OrderCancelled},
	OrderInProgress: {OrderCompleted, OrderCancelled},
}

var ErrUnknownOrderStatus = errors.New("unknown order status")

func ParseOrderStatus(s string) (OrderStatusType, error) {
	status := OrderStatusType(s)
	switch status {
	case OrderPending, OrderAssigned, OrderAccepted, OrderInProgress, OrderCompleted, OrderCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderStatus, s)
	}
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

func (s OrderStatusType) CanTransitionTo(next OrderStatusType) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderModify struct {
	PassengerID *int64
	Pickup      *Place
	Destination *Place
}

// OrderFilter выборка заказов, самые старые первыми. Limit 0 без ограничения.
type OrderFilter struct {
	Status        *OrderStatusType
	CreatedBefore *time.Time
	Limit         uint64
}
