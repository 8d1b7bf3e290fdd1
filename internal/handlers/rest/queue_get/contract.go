//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=queue_get_test
package queue_get

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
	QueueSnapshot(ctx context.Context) []entities.QueueEntry
}
