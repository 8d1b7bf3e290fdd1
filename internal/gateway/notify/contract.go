//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notify_test
package notify

import (
	"context"

	"taxi-dispatch/internal/entities"
)

type Notifier interface {
	NotifyDriver(ctx context.Context, driverID int64, event entities.Event) error
	NotifyPassenger(ctx context.Context, passengerID int64, event entities.Event) error
}
