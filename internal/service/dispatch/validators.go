package dispatch

import (
	"slices"
	"strings"

	"taxi-dispatch/internal/entities"
)

func isValidID(id int64) bool {
	return id > 0
}

func normalizeOrderModify(orderModify entities.OrderModify) (entities.OrderModify, error) {
	if orderModify.PassengerID == nil || !isValidID(*orderModify.PassengerID) {
		return orderModify, ErrInvalidPassengerID
	}
	if orderModify.Pickup == nil || orderModify.Destination == nil {
		return orderModify, ErrMissingAddress
	}

	pickup, err := normalizePlace(*orderModify.Pickup)
	if err != nil {
		return orderModify, err
	}
	destination, err := normalizePlace(*orderModify.Destination)
	if err != nil {
		return orderModify, err
	}

	orderModify.Pickup = &pickup
	orderModify.Destination = &destination
	return orderModify, nil
}

func normalizePlace(place entities.Place) (entities.Place, error) {
	place.Address = strings.TrimSpace(place.Address)
	if place.Address == "" {
		return place, ErrMissingAddress
	}

	// координаты опциональны, но только парой
	if (place.Lat == nil) != (place.Lng == nil) {
		return place, ErrInvalidCoordinates
	}
	if place.Lat != nil && (*place.Lat < -90 || *place.Lat > 90) {
		return place, ErrInvalidCoordinates
	}
	if place.Lng != nil && (*place.Lng < -180 || *place.Lng > 180) {
		return place, ErrInvalidCoordinates
	}
	return place, nil
}

func isAdvanceTarget(status entities.OrderStatusType) bool {
	return slices.Contains([]entities.OrderStatusType{
		entities.OrderAccepted,
		entities.OrderInProgress,
		entities.OrderCompleted,
	}, status)
}
