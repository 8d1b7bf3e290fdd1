package order

import "time"

type OrderDB struct {
	ID                 int64
	PassengerID        int64
	DriverID           *int64
	PickupAddress      string
	PickupLat          *float64
	PickupLng          *float64
	DestinationAddress string
	DestinationLat     *float64
	DestinationLng     *float64
	Status             string
	CreatedAt          time.Time
	AssignedAt         *time.Time
	CompletedAt        *time.Time
}
