//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pending_orders_expiry_test
package pending_orders_expiry

import (
	"context"
	"time"
)

type Service interface {
	ExpirePendingOrders(ctx context.Context, olderThan time.Duration) (int64, error)
}
