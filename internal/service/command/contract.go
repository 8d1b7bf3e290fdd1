//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=command_test
package command

import (
	"context"

	"taxi-dispatch/internal/entities"
)

type Dispatcher interface {
	RegisterDriverOnline(ctx context.Context, driverID int64) (*entities.Driver, error)
	RegisterDriverOffline(ctx context.Context, driverID int64) (*entities.Driver, error)
	SubmitOrder(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	AcceptOrder(ctx context.Context, orderID, driverID int64) (*entities.Order, error)
	RejectOrder(ctx context.Context, orderID, driverID int64) (*entities.Order, error)
	AdvanceOrder(ctx context.Context, orderID, driverID int64, toStatus entities.OrderStatusType) (*entities.Order, error)
	CancelOrder(ctx context.Context, orderID, passengerID int64) (*entities.Order, error)
}

type ExecuteFn func(ctx context.Context, cmd entities.Command) error

type HandlerFactory interface {
	GetHandler(kind entities.CommandKind) (ExecuteFn, error)
}
