package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"taxi-dispatch/internal/entities"
	"taxi-dispatch/internal/repository"
	"taxi-dispatch/internal/service/dispatch"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id", "passenger_id", "driver_id",
	"pickup_address", "pickup_lat", "pickup_lng",
	"destination_address", "destination_lat", "destination_lng",
	"status", "created_at", "assigned_at", "completed_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	query, args, err := qb.
		Insert("orders").
		Columns(
			"passenger_id",
			"pickup_address", "pickup_lat", "pickup_lng",
			"destination_address", "destination_lat", "destination_lng",
			"status",
		).
		Values(
			orderModify.PassengerID,
			orderModify.Pickup.Address, orderModify.Pickup.Lat, orderModify.Pickup.Lng,
			orderModify.Destination.Address, orderModify.Destination.Lat, orderModify.Destination.Lng,
			entities.OrderPending.String(),
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %s", dispatch.ErrInvalidCoordinates, repository.ConstraintName(err))
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderModel)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderModel)
}

// List заказы по фильтру, самые старые первыми.
func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at", "id")

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.CreatedBefore != nil {
		builder = builder.Where(sq.Lt{"created_at": *filter.CreatedBefore})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		orderModel, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, *orderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return ToDomainList(orderModels)
}

// UpdateIfStatus сохраняет статус, водителя и отметки времени, только если
// заказ все еще в статусе expected.
func (r *Repository) UpdateIfStatus(
	ctx context.Context,
	order *entities.Order,
	expected entities.OrderStatusType,
) (*entities.Order, error) {
	query, args, err := qb.
		Update("orders").
		Set("status", order.Status.String()).
		Set("driver_id", order.DriverID).
		Set("assigned_at", order.AssignedAt).
		Set("completed_at", order.CompletedAt).
		Where(sq.Eq{"id": order.ID, "status": expected.String()}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// заказа нет или его статус уже сменили
			_, getErr := r.GetByID(ctx, order.ID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, dispatch.ErrStatusConflict
		case repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation):
			return nil, dispatch.ErrDriverBusy
		case repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation):
			return nil, fmt.Errorf("%w: %s", dispatch.ErrWrongState, repository.ConstraintName(err))
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(orderModel)
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.PassengerID,
		&orderModel.DriverID,
		&orderModel.PickupAddress,
		&orderModel.PickupLat,
		&orderModel.PickupLng,
		&orderModel.DestinationAddress,
		&orderModel.DestinationLat,
		&orderModel.DestinationLng,
		&orderModel.Status,
		&orderModel.CreatedAt,
		&orderModel.AssignedAt,
		&orderModel.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderModel, nil
}
