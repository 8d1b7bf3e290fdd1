package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidDriverID    = errors.New("invalid driver id")
	ErrInvalidPassengerID = errors.New("invalid passenger id")
	ErrMissingAddress     = errors.New("pickup and destination addresses are required")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidStatus      = errors.New("invalid target status")

	ErrOrderNotFound  = errors.New("order not found")
	ErrDriverNotFound = errors.New("driver not found")

	// ErrConflict общий класс отказов по guard-условиям.
	ErrConflict       = errors.New("conflict")
	ErrWrongActor     = fmt.Errorf("%w: caller does not own the order", ErrConflict)
	ErrWrongState     = fmt.Errorf("%w: order is in a wrong state", ErrConflict)
	ErrOrderTerminal  = fmt.Errorf("%w: order is already completed or cancelled", ErrConflict)
	ErrStatusConflict = fmt.Errorf("%w: order status changed concurrently", ErrConflict)
	ErrDriverBusy     = fmt.Errorf("%w: driver already holds an order", ErrConflict)
)

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidOrderID) ||
		errors.Is(err, ErrInvalidDriverID) ||
		errors.Is(err, ErrInvalidPassengerID) ||
		errors.Is(err, ErrMissingAddress) ||
		errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrInvalidStatus)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrDriverNotFound)
}
