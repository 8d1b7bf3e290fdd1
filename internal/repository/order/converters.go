package order

import (
	"fmt"

	"taxi-dispatch/internal/entities"
)

// ToDomain отклоняет статусы, которых нет в перечислении.
func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil //nolint:nilnil // nil модель дает nil заказ
	}

	status, err := entities.ParseOrderStatus(o.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}

	return &entities.Order{
		ID:          o.ID,
		PassengerID: o.PassengerID,
		DriverID:    o.DriverID,
		Pickup: entities.Place{
			Address: o.PickupAddress,
			Lat:     o.PickupLat,
			Lng:     o.PickupLng,
		},
		Destination: entities.Place{
			Address: o.DestinationAddress,
			Lat:     o.DestinationLat,
			Lng:     o.DestinationLng,
		},
		Status:      status,
		CreatedAt:   o.CreatedAt,
		AssignedAt:  o.AssignedAt,
		CompletedAt: o.CompletedAt,
	}, nil
}

func ToDomainList(ordersDB []OrderDB) ([]entities.Order, error) {
	result := make([]entities.Order, len(ordersDB))
	for i := range ordersDB {
		order, err := ToDomain(&ordersDB[i])
		if err != nil {
			return nil, err
		}
		result[i] = *order
	}
	return result, nil
}
