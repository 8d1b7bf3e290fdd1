package entities

import "time"

type Driver struct {
	ID             int64
	Name           string
	Phone          string
	IsOnline       bool
	IsActive       bool
	CurrentOrderID *int64
	QueuePosition  *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Eligible сообщает, можно ли предложить водителю новый заказ.
func (d *Driver) Eligible() bool {
	return d.IsOnline && d.IsActive && d.CurrentOrderID == nil
}

type DriverModify struct {
	ID       *int64
	Name     *string
	Phone    *string
	IsOnline *bool
	IsActive *bool
}

type QueueEntry struct {
	DriverID int64
	Position int
}
