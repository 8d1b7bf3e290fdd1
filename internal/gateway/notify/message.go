package notify

import (
	"time"

	"taxi-dispatch/internal/entities"
)

type Recipient string

const (
	RecipientDriver    Recipient = "driver"
	RecipientPassenger Recipient = "passenger"
)

type PlaceMessage struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// EventMessage событие диспетчера в том виде, в каком его получают
// websocket-сессии и чат-бот.
type EventMessage struct {
	Kind        string        `json:"kind"`
	Recipient   Recipient     `json:"recipient"`
	RecipientID int64         `json:"recipient_id"`
	OrderID     int64         `json:"order_id"`
	PassengerID int64         `json:"passenger_id"`
	DriverID    *int64        `json:"driver_id,omitempty"`
	Status      string        `json:"status"`
	Pickup      *PlaceMessage `json:"pickup,omitempty"`
	Destination *PlaceMessage `json:"destination,omitempty"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

func NewEventMessage(recipient Recipient, recipientID int64, event entities.Event) EventMessage {
	return EventMessage{
		Kind:        event.Kind.String(),
		Recipient:   recipient,
		RecipientID: recipientID,
		OrderID:     event.OrderID,
		PassengerID: event.PassengerID,
		DriverID:    event.DriverID,
		Status:      event.Status.String(),
		Pickup:      toPlaceMessage(event.Pickup),
		Destination: toPlaceMessage(event.Destination),
		OccurredAt:  event.OccurredAt,
	}
}

func toPlaceMessage(place *entities.Place) *PlaceMessage {
	if place == nil {
		return nil
	}
	return &PlaceMessage{
		Address: place.Address,
		Lat:     place.Lat,
		Lng:     place.Lng,
	}
}
