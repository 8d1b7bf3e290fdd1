//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_offline_post_test
package driver_offline_post

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
	RegisterDriverOffline(ctx context.Context, driverID int64) (*entities.Driver, error)
}
