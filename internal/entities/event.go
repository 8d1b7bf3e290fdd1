package entities

import "time"

type EventKind string

const (
	EventNewAssignmentOffer EventKind = "new_assignment_offer"
	EventOrderAssigned      EventKind = "order_assigned"
	EventAssignmentTimedOut EventKind = "assignment_timed_out"
	EventAssignmentAccepted EventKind = "assignment_accepted"
	EventTripStarted        EventKind = "trip_started"
	EventTripCompleted      EventKind = "trip_completed"
	EventOrderCancelled     EventKind = "order_cancelled"
)

func (k EventKind) String() string {
	return string(k)
}

// Event уведомление для сессии водителя или пассажира.
type Event struct {
	Kind        EventKind
	OrderID     int64
	PassengerID int64
	DriverID    *int64
	Status      OrderStatusType
	Pickup      *Place
	Destination *Place
	OccurredAt  time.Time
}

// NewOrderEvent собирает событие по текущему состоянию заказа.
func NewOrderEvent(kind EventKind, order *Order, at time.Time) Event {
	pickup, destination := order.Pickup, order.Destination
	return Event{
		Kind:        kind,
		OrderID:     order.ID,
		PassengerID: order.PassengerID,
		DriverID:    order.DriverID,
		Status:      order.Status,
		Pickup:      &pickup,
		Destination: &destination,
		OccurredAt:  at,
	}
}
