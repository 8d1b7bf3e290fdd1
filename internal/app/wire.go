//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"taxi-dispatch/internal/handlers/tasks/pending_orders_expiry"
	"taxi-dispatch/internal/pkg/config"
	"taxi-dispatch/internal/pkg/factory/bot_command"
	driverRepo "taxi-dispatch/internal/repository/driver"
	orderRepo "taxi-dispatch/internal/repository/order"
	commandService "taxi-dispatch/internal/service/command"
	dispatchService "taxi-dispatch/internal/service/dispatch"
	driverService "taxi-dispatch/internal/service/driver"
	"taxi-dispatch/pkg/logger"
	"taxi-dispatch/pkg/scheduler"
	"taxi-dispatch/pkg/tx"
)

// InitializeApplication для сервиса диспетчеризации (cmd/dispatcher)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideDriverRepository,
		provideOrderRepository,

		provideTimerScheduler,
		provideHub,
		provideEventPublisher,
		provideNotifier,

		provideDispatcher,
		provideRegistry,
		provideCommandFactory,
		provideCommandService,

		providePendingOrdersExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatcher)),
		wire.Bind(new(ServiceDriver), new(*driverService.Registry)),

		wire.Bind(new(dispatchService.DriverRepository), new(*driverRepo.Repository)),
		wire.Bind(new(dispatchService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(dispatchService.Scheduler), new(*scheduler.Scheduler[int64])),
		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),
		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),

		wire.Bind(new(commandService.Dispatcher), new(*dispatchService.Dispatcher)),
		wire.Bind(new(commandService.HandlerFactory), new(*bot_command.CommandHandlerFactory)),

		wire.Bind(new(pending_orders_expiry.Service), new(*dispatchService.Dispatcher)),
	)
	return &Application{}, nil
}
