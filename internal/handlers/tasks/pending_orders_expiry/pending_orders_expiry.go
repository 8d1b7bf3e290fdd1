package pending_orders_expiry

import (
	"context"
	"time"

	"taxi-dispatch/pkg/logger"
)

// PendingOrdersExpiry отменяет заказы, которые так и не нашли водителя
// за ttl. Пассажиры получают order_cancelled от диспетчера.
type PendingOrdersExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	ttl      time.Duration
}

func NewPendingOrdersExpiry(log logger.Logger, service Service, interval, ttl time.Duration) *PendingOrdersExpiry {
	return &PendingOrdersExpiry{
		log:      log,
		service:  service,
		interval: interval,
		ttl:      ttl,
	}
}

func (p *PendingOrdersExpiry) TTL() time.Duration {
	return p.interval
}

func (p *PendingOrdersExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	expired, err := p.service.ExpirePendingOrders(ctxWithTimeout, p.ttl)

	if expired > 0 {
		p.log.With(
			logger.NewField("expired_orders", expired),
			logger.NewField("ttl", p.ttl.String()),
		).Info("pending orders expiry")
	}

	return err
}

func (p *PendingOrdersExpiry) Info() string {
	return "pending orders expiry"
}
