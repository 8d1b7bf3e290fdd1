//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type DriverRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Driver, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entities.Driver, error)
	GetAll(ctx context.Context) ([]entities.Driver, error)
	GetOnline(ctx context.Context) ([]entities.Driver, error)

	Update(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error)
	// ClaimOrder закрепляет заказ за водителем, если у него нет другого заказа.
	ClaimOrder(ctx context.Context, driverID, orderID int64) error
	// ReleaseOrder снимает заказ с водителя, если водитель держит именно его.
	ReleaseOrder(ctx context.Context, driverID, orderID int64) error
	UpdateQueuePositions(ctx context.Context, queue []int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	// UpdateIfStatus сохраняет изменяемые поля заказа, только если статус
	// в хранилище все еще равен expected.
	UpdateIfStatus(ctx context.Context, order *entities.Order, expected entities.OrderStatusType) (*entities.Order, error)
}

type Notifier interface {
	NotifyDriver(ctx context.Context, driverID int64, event entities.Event) error
	NotifyPassenger(ctx context.Context, passengerID int64, event entities.Event) error
}

type Scheduler interface {
	Schedule(key int64, delay time.Duration, fn func())
	Cancel(key int64) bool
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
