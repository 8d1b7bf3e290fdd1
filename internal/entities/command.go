package entities

import (
	"errors"
	"fmt"
)

// CommandKind действие, пришедшее из чат-бота.
type CommandKind string

const (
	CommandDriverOnline  CommandKind = "online"
	CommandDriverOffline CommandKind = "offline"
	CommandSubmitOrder   CommandKind = "submit"
	CommandAcceptOrder   CommandKind = "accept"
	CommandRejectOrder   CommandKind = "reject"
	CommandAdvanceOrder  CommandKind = "advance"
	CommandCancelOrder   CommandKind = "cancel"
)

var ErrUnknownCommandKind = errors.New("unknown command kind")

func ParseCommandKind(s string) (CommandKind, error) {
	kind := CommandKind(s)
	switch kind {
	case CommandDriverOnline, CommandDriverOffline, CommandSubmitOrder,
		CommandAcceptOrder, CommandRejectOrder, CommandAdvanceOrder, CommandCancelOrder:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommandKind, s)
	}
}

func (k CommandKind) String() string {
	return string(k)
}

// Command набор полей зависит от Kind, лишние игнорируются.
type Command struct {
	Kind        CommandKind
	DriverID    int64
	PassengerID int64
	OrderID     int64
	Status      OrderStatusType
	Pickup      *Place
	Destination *Place
}
