package driver

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
	service "taxi-dispatch/internal/service/driver"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var driverColumns = []string{
	"id", "name", "phone", "is_online", "is_active",
	"current_order_id", "queue_position", "created_at", "updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, driverModifyEntity entities.DriverModify) (int64, error) {
	driverModifyModel := FromDomainModify(&driverModifyEntity)
	query := `INSERT INTO drivers (name, phone)
		VALUES ($1, $2)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		driverModifyModel.Name,
		driverModifyModel.Phone,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, service.ErrConflict
		}
		return 0, fmt.Errorf("unexpected driver repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, driverModifyEntity entities.DriverModify) (*entities.Driver, error) {
	driverModifyModel := FromDomainModify(&driverModifyEntity)

	builder := qb.
		Update("drivers")

	// опционные поля
	if driverModifyModel.Name != nil {
		builder = builder.Set("name", driverModifyModel.Name)
	}
	if driverModifyModel.Phone != nil {
		builder = builder.Set("phone", driverModifyModel.Phone)
	}
	if driverModifyModel.IsOnline != nil {
		builder = builder.Set("is_online", driverModifyModel.IsOnline)
	}
	if driverModifyModel.IsActive != nil {
		builder = builder.Set("is_active", driverModifyModel.IsActive)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": driverModifyModel.ID}).
		Suffix("RETURNING " + strings.Join(driverColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository update error: %w", err)
	}

	driverModel, err := scanDriver(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrDriverNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, service.ErrConflict
		}

		return nil, fmt.Errorf("unexpected driver repository update error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Driver, error) {
	query, args, err := qb.
		Select(driverColumns...).
		From("drivers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository getbyid error: %w", err)
	}

	driverModel, err := scanDriver(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrDriverNotFound
		}

		return nil, fmt.Errorf("unexpected driver repository getbyid error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]entities.Driver, error) {
	if len(ids) == 0 {
		return []entities.Driver{}, nil
	}

	return r.list(ctx, "getbyids", qb.
		Select(driverColumns...).
		From("drivers").
		Where("id = ANY(?)", ids).
		OrderBy("id"),
	)
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Driver, error) {
	return r.list(ctx, "getall", qb.
		Select(driverColumns...).
		From("drivers").
		OrderBy("id"),
	)
}

// GetOnline водители на линии в порядке сохраненной очереди.
func (r *Repository) GetOnline(ctx context.Context) ([]entities.Driver, error) {
	return r.list(ctx, "getonline", qb.
		Select(driverColumns...).
		From("drivers").
		Where(sq.Eq{"is_online": true}).
		OrderBy("queue_position NULLS LAST", "id"),
	)
}

// ClaimOrder закрепляет заказ за водителем, только если тот свободен.
func (r *Repository) ClaimOrder(ctx context.Context, driverID, orderID int64) error {
	query := `UPDATE drivers
		SET current_order_id = $2, updated_at = NOW()
		WHERE id = $1 AND current_order_id IS NULL`

	result, err := r.querier.Exec(ctx, query, driverID, orderID)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return fmt.Errorf("%w: order %d is held by another driver", dispatch.ErrConflict, orderID)
		}
		return fmt.Errorf("unexpected driver repository claim order error: %w", err)
	}

	if result.RowsAffected() == 1 {
		return nil
	}

	_, err = r.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	return dispatch.ErrDriverBusy
}

// ReleaseOrder ничего не делает, если водитель держит другой заказ или
// уже свободен.
func (r *Repository) ReleaseOrder(ctx context.Context, driverID, orderID int64) error {
	query := `UPDATE drivers
		SET current_order_id = NULL, updated_at = NOW()
		WHERE id = $1 AND current_order_id = $2`

	_, err := r.querier.Exec(ctx, query, driverID, orderID)
	if err != nil {
		return fmt.Errorf("unexpected driver repository release order error: %w", err)
	}
	return nil
}

// UpdateQueuePositions записывает позиции с единицы в порядке queue,
// у остальных водителей позиция сбрасывается.
func (r *Repository) UpdateQueuePositions(ctx context.Context, queue []int64) error {
	query := `
		UPDATE drivers d
		SET queue_position = q.position,
			updated_at = NOW()
		FROM (
			SELECT d2.id, p.position::int AS position
			FROM drivers d2
			LEFT JOIN unnest($1::bigint[]) WITH ORDINALITY AS p(id, position) ON p.id = d2.id
		) q
		WHERE d.id = q.id
		AND d.queue_position IS DISTINCT FROM q.position
	`

	if queue == nil {
		queue = []int64{}
	}
	_, err := r.querier.Exec(ctx, query, queue)
	if err != nil {
		return fmt.Errorf("unexpected driver repository update queue positions error: %w", err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]entities.Driver, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository %s error: %w", op, err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository %s error: %w", op, err)
	}
	defer rows.Close()

	driverModels := make([]DriverDB, 0, 8)
	for rows.Next() {
		driverModel, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected driver repository %s error: %w", op, err)
		}
		driverModels = append(driverModels, *driverModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository %s error: %w", op, err)
	}

	return ToDomainList(driverModels), nil
}

func scanDriver(row pgx.Row) (*DriverDB, error) {
	var driverModel DriverDB
	err := row.Scan(
		&driverModel.ID,
		&driverModel.Name,
		&driverModel.Phone,
		&driverModel.IsOnline,
		&driverModel.IsActive,
		&driverModel.CurrentOrderID,
		&driverModel.QueuePosition,
		&driverModel.CreatedAt,
		&driverModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &driverModel, nil
}
