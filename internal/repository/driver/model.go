package driver

import "time"

type DriverDB struct {
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

type DriverModifyDB struct {
	ID       *int64
	Name     *string
	Phone    *string
	IsOnline *bool
	IsActive *bool
}
