//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_order_get_test
package driver_order_get

import (
	"context"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetDriverOrder(ctx context.Context, driverID int64) (*entities.Order, error)
}
