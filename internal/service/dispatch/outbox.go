package dispatch

import "taxi-dispatch/internal/entities"

type recipient uint8

const (
	toDriver recipient = iota
	toPassenger
)

func (r recipient) String() string {
	if r == toDriver {
		return "driver"
	}
	return "passenger"
}

type notification struct {
	to          recipient
	recipientID int64
	event       entities.Event
}

// outbox уведомления, собранные в критической секции. Добавляются только
// после коммита транзакции.
type outbox []notification

func (o *outbox) driver(driverID int64, event entities.Event) {
	*o = append(*o, notification{to: toDriver, recipientID: driverID, event: event})
}

func (o *outbox) passenger(passengerID int64, event entities.Event) {
	*o = append(*o, notification{to: toPassenger, recipientID: passengerID, event: event})
}
