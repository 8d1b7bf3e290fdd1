package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"taxi-dispatch/internal/gateway/kafka/events"
	"taxi-dispatch/internal/gateway/notify"
	"taxi-dispatch/internal/gateway/websocket"
	"taxi-dispatch/internal/handlers/rest/driver_activity_put"
	"taxi-dispatch/internal/handlers/rest/driver_get"
	"taxi-dispatch/internal/handlers/rest/driver_offline_post"
	"taxi-dispatch/internal/handlers/rest/driver_online_post"
	"taxi-dispatch/internal/handlers/rest/driver_order_get"
	"taxi-dispatch/internal/handlers/rest/driver_post"
	"taxi-dispatch/internal/handlers/rest/driver_put"
	"taxi-dispatch/internal/handlers/rest/drivers_get"
	"taxi-dispatch/internal/handlers/rest/order_accept_post"
	"taxi-dispatch/internal/handlers/rest/order_advance_post"
	"taxi-dispatch/internal/handlers/rest/order_cancel_post"
	"taxi-dispatch/internal/handlers/rest/order_get"
	"taxi-dispatch/internal/handlers/rest/order_post"
	"taxi-dispatch/internal/handlers/rest/order_reject_post"
	"taxi-dispatch/internal/handlers/rest/queue_get"
	"taxi-dispatch/internal/handlers/tasks/pending_orders_expiry"
	"taxi-dispatch/internal/pkg/config"
	"taxi-dispatch/internal/pkg/factory/bot_command"
	driverRepo "taxi-dispatch/internal/repository/driver"
	orderRepo "taxi-dispatch/internal/repository/order"
	commandService "taxi-dispatch/internal/service/command"
	dispatchService "taxi-dispatch/internal/service/dispatch"
	driverService "taxi-dispatch/internal/service/driver"
	"taxi-dispatch/pkg/background"
	"taxi-dispatch/pkg/logger"
	"taxi-dispatch/pkg/querier"
	"taxi-dispatch/pkg/scheduler"
	"taxi-dispatch/pkg/tx"
)

type Application struct {
	ServiceDispatch   ServiceDispatch
	ServiceDriver     ServiceDriver
	ServiceCommand    *commandService.Service
	Hub               *websocket.Hub
	Timers            *scheduler.Scheduler[int64]
	BackgroundWorkers *background.Worker
}

type ServiceDispatch interface {
	driver_online_post.Service
	driver_offline_post.Service
	driver_activity_put.Service
	driver_order_get.Service
	order_post.Service
	order_get.Service
	order_accept_post.Service
	order_reject_post.Service
	order_advance_post.Service
	order_cancel_post.Service
	queue_get.Service
}

type ServiceDriver interface {
	driver_get.Service
	drivers_get.Service
	driver_post.Service
	driver_put.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideTimerScheduler() *scheduler.Scheduler[int64] {
	return scheduler.New[int64]()
}

func provideHub(log logger.Logger, cfg *config.Config) *websocket.Hub {
	return websocket.NewHub(log, cfg.Websocket.SendBuffer)
}

func provideEventPublisher(producer sarama.SyncProducer, cfg *config.Config) *events.Publisher {
	return events.New(producer, cfg.Kafka.EventsTopic)
}

// provideNotifier события уходят и в websocket-сессии, и в топик чат-бота.
func provideNotifier(hub *websocket.Hub, publisher *events.Publisher) *notify.Fanout {
	return notify.NewFanout(hub, publisher)
}

// provideDispatcher восстанавливает очередь и таймеры из хранилища,
// до этого диспетчер не принимает вызовы.
func provideDispatcher(
	ctx context.Context,
	log logger.Logger,
	drivers dispatchService.DriverRepository,
	orders dispatchService.OrderRepository,
	notifier *notify.Fanout,
	timers dispatchService.Scheduler,
	txManager dispatchService.TxManager,
	cfg *config.Config,
) (*dispatchService.Dispatcher, error) {
	dispatcher := dispatchService.New(log, drivers, orders, notifier, timers, txManager, dispatchService.Config{
		AssignmentTimeout:      cfg.Dispatch.AssignmentTimeout,
		TimeoutHandlerDeadline: cfg.Dispatch.TimeoutHandlerDeadline,
		RedispatchBatch:        cfg.Dispatch.RedispatchBatch,
	})

	if err := dispatcher.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("rebuild dispatcher state: %w", err)
	}
	return dispatcher, nil
}

func provideRegistry(repository driverService.Repository) *driverService.Registry {
	return driverService.New(repository)
}

func provideCommandFactory(dispatcher commandService.Dispatcher) *bot_command.CommandHandlerFactory {
	return bot_command.NewCommandHandlerFactory(dispatcher)
}

func provideCommandService(factory commandService.HandlerFactory) *commandService.Service {
	return commandService.New(factory)
}

func providePendingOrdersExpiryTask(
	log logger.Logger,
	service pending_orders_expiry.Service,
	cfg *config.Config,
) *pending_orders_expiry.PendingOrdersExpiry {
	return pending_orders_expiry.NewPendingOrdersExpiry(
		log,
		service,
		cfg.Tasks.PendingOrdersExpiryInterval,
		cfg.Tasks.PendingOrderTTL,
	)
}

func provideTaskList(
	pendingOrdersExpiryTask *pending_orders_expiry.PendingOrdersExpiry,
) []background.Task {
	return []background.Task{
		pendingOrdersExpiryTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
