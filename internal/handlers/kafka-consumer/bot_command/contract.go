//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bot_command_test
package bot_command

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
	Execute(ctx context.Context, cmd entities.Command) error
}
