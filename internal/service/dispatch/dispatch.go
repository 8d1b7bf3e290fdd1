package dispatch

import (
	"context"
	"sync"
	"time"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/pkg/logger"
)

const (
	DefaultAssignmentTimeout      = 60 * time.Second
	DefaultTimeoutHandlerDeadline = 10 * time.Second
	DefaultRedispatchBatch        = 50
)

type Config struct {
	// AssignmentTimeout сколько водитель думает над предложением.
	AssignmentTimeout time.Duration
	// TimeoutHandlerDeadline ограничивает обработку сработавшего таймера.
	TimeoutHandlerDeadline time.Duration
	// RedispatchBatch сколько pending заказов перебирается при появлении водителя.
	RedispatchBatch uint64
	// Clock источник времени, по умолчанию time.Now в UTC.
	Clock func() time.Time
}

// Dispatcher движок диспетчеризации: очередь водителей, назначение заказов,
// таймауты предложений и жизненный цикл заказа.
//
// Все изменения состояния идут под одним мьютексом и в одной транзакции
// хранилища; уведомления копятся в outbox и отправляются после снятия
// блокировки.
type Dispatcher struct {
	log       handlerLogger
	drivers   DriverRepository
	orders    OrderRepository
	notifier  Notifier
	scheduler Scheduler
	txManager TxManager
	cfg       Config

	mu    sync.Mutex
	queue *Queue
	// skipped водители, которые отказались от заказа или не ответили вовремя.
	skipped map[int64]map[int64]struct{}
}

func New(
	log handlerLogger,
	drivers DriverRepository,
	orders OrderRepository,
	notifier Notifier,
	scheduler Scheduler,
	txManager TxManager,
	cfg Config,
) *Dispatcher {
	if cfg.AssignmentTimeout <= 0 {
		cfg.AssignmentTimeout = DefaultAssignmentTimeout
	}
	if cfg.TimeoutHandlerDeadline <= 0 {
		cfg.TimeoutHandlerDeadline = DefaultTimeoutHandlerDeadline
	}
	if cfg.RedispatchBatch == 0 {
		cfg.RedispatchBatch = DefaultRedispatchBatch
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}

	return &Dispatcher{
		log:       log.With(logger.NewField("component", "dispatcher")),
		drivers:   drivers,
		orders:    orders,
		notifier:  notifier,
		scheduler: scheduler,
		txManager: txManager,
		cfg:       cfg,
		queue:     NewQueue(),
		skipped:   make(map[int64]map[int64]struct{}),
	}
}

func (d *Dispatcher) now() time.Time {
	return d.cfg.Clock()
}

// locked выполняет fn в критической секции и доставляет накопленные
// уведомления уже после снятия блокировки.
func (d *Dispatcher) locked(ctx context.Context, fn func(out *outbox) error) error {
	var out outbox

	d.mu.Lock()
	err := fn(&out)
	d.mu.Unlock()

	d.deliver(ctx, out)
	return err
}

func (d *Dispatcher) deliver(ctx context.Context, out outbox) {
	if len(out) == 0 {
		return
	}
	// уведомление не должно теряться из-за отмены запроса, который его вызвал
	ctx = context.WithoutCancel(ctx)

	for _, n := range out {
		var err error
		switch n.to {
		case toDriver:
			err = d.notifier.NotifyDriver(ctx, n.recipientID, n.event)
		case toPassenger:
			err = d.notifier.NotifyPassenger(ctx, n.recipientID, n.event)
		}
		if err != nil {
			NotificationsFailedTotal.WithLabelValues(n.event.Kind.String()).Inc()
			d.log.Warn("notification failed",
				logger.NewField("kind", n.event.Kind.String()),
				logger.NewField("recipient", n.to.String()),
				logger.NewField("recipient_id", n.recipientID),
				logger.NewField("order", n.event.OrderID),
				logger.NewField("error", err),
			)
		}
	}
}

func (d *Dispatcher) skip(orderID, driverID int64) {
	drivers, ok := d.skipped[orderID]
	if !ok {
		drivers = make(map[int64]struct{})
		d.skipped[orderID] = drivers
	}
	drivers[driverID] = struct{}{}
}

func (d *Dispatcher) isSkipped(orderID, driverID int64) bool {
	_, ok := d.skipped[orderID][driverID]
	return ok
}

// forget вызывается, когда заказ вышел из фазы предложений.
func (d *Dispatcher) forget(orderID int64) {
	delete(d.skipped, orderID)
}

func (d *Dispatcher) setQueue(queue *Queue) {
	d.queue = queue
	QueueLength.Set(float64(queue.Len()))
}

// QueueSnapshot текущий порядок очереди.
func (d *Dispatcher) QueueSnapshot(_ context.Context) []entities.QueueEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.queue.Entries()
}

func observeTransition(status entities.OrderStatusType) {
	OrderTransitionsTotal.WithLabelValues(status.String()).Inc()
}
