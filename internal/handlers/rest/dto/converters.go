package dto

import "taxi-dispatch/internal/entities"

func FromDriver(driver *entities.Driver) Driver {
	return Driver{
		ID:             driver.ID,
		Name:           driver.Name,
		Phone:          driver.Phone,
		IsOnline:       driver.IsOnline,
		IsActive:       driver.IsActive,
		CurrentOrderID: driver.CurrentOrderID,
		QueuePosition:  driver.QueuePosition,
	}
}

func FromDrivers(drivers []entities.Driver) []Driver {
	res := make([]Driver, 0, len(drivers))
	for i := range drivers {
		res = append(res, FromDriver(&drivers[i]))
	}
	return res
}

func FromOrder(order *entities.Order) Order {
	return Order{
		ID:          order.ID,
		PassengerID: order.PassengerID,
		DriverID:    order.DriverID,
		Pickup:      fromPlace(order.Pickup),
		Destination: fromPlace(order.Destination),
		Status:      order.Status.String(),
		CreatedAt:   order.CreatedAt,
		AssignedAt:  order.AssignedAt,
		CompletedAt: order.CompletedAt,
	}
}

func FromQueue(entries []entities.QueueEntry) QueueResponse {
	drivers := make([]QueueEntry, 0, len(entries))
	for _, e := range entries {
		drivers = append(drivers, QueueEntry{DriverID: e.DriverID, Position: e.Position})
	}
	return QueueResponse{Drivers: drivers}
}

// ToPlace nil остается nil, пустой адрес отсеет диспетчер.
func ToPlace(place *Place) *entities.Place {
	if place == nil {
		return nil
	}
	return &entities.Place{
		Address: place.Address,
		Lat:     place.Lat,
		Lng:     place.Lng,
	}
}

func fromPlace(place entities.Place) Place {
	return Place{
		Address: place.Address,
		Lat:     place.Lat,
		Lng:     place.Lng,
	}
}
