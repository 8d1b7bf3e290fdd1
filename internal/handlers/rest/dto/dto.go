package dto

import "time"

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Driver struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	IsOnline       bool   `json:"is_online"`
	IsActive       bool   `json:"is_active"`
	CurrentOrderID *int64 `json:"current_order_id,omitempty"`
	QueuePosition  *int   `json:"queue_position,omitempty"`
}

type DriverCreate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type DriverCreateResponse struct {
	ID int64 `json:"id"`
}

type DriverUpdate struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type DriverActivityRequest struct {
	IsActive *bool `json:"is_active"`
}

type Place struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type OrderCreate struct {
	PassengerID int64  `json:"passenger_id"`
	Pickup      *Place `json:"pickup"`
	Destination *Place `json:"destination"`
}

type Order struct {
	ID          int64      `json:"id"`
	PassengerID int64      `json:"passenger_id"`
	DriverID    *int64     `json:"driver_id,omitempty"`
	Pickup      Place      `json:"pickup"`
	Destination Place      `json:"destination"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type DriverActionRequest struct {
	DriverID int64 `json:"driver_id"`
}

type OrderAdvanceRequest struct {
	DriverID int64  `json:"driver_id"`
	Status   string `json:"status"`
}

type OrderCancelRequest struct {
	PassengerID int64 `json:"passenger_id"`
}

type QueueEntry struct {
	DriverID int64 `json:"driver_id"`
	Position int   `json:"position"`
}

type QueueResponse struct {
	Drivers []QueueEntry `json:"drivers"`
}
