package repository

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facreativefirm/billing-portal/internal/model"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewOrderRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id", "user_id", "number", "status", "items",
	"subtotal", "discount", "tax", "total", "payment_method", "created_at", "updated_at",
}

// Create inserts an order with its item snapshot as jsonb; the order
// number is assigned by the database sequence and written back into ord.
func (r *repository) Create(ctx context.Context, ord *model.Order) (uuid.UUID, error) {
	items, err := json.Marshal(ord.Items)
	if err != nil {
		return uuid.Nil, err
	}

	q := r.sb.
		Insert("orders").
		Columns("user_id", "status", "items", "subtotal", "discount", "tax", "total", "payment_method").
		Values(ord.UserID, ord.Status, items, ord.Subtotal, ord.Discount, ord.Tax, ord.Total, ord.PaymentMethod).
		Suffix("RETURNING id, number")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&ord.ID, &ord.Number); err != nil {
		return uuid.Nil, err
	}

	return ord.ID, nil
}

func (r *repository) OrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	q := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	ord, err := scanOrder(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	return ord, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	q := r.sb.
		Update("orders").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *repository) Recent(ctx context.Context, userID uuid.UUID, limit uint64) ([]model.Order, error) {
	q := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) CountByStatus(ctx context.Context, userID uuid.UUID, statuses ...model.OrderStatus) (int64, error) {
	q := r.sb.
		Select("count(*)").
		From("orders").
		Where(sq.Eq{"user_id": userID, "status": statuses})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		ord   model.Order
		items []byte
	)
	err := row.Scan(
		&ord.ID,
		&ord.UserID,
		&ord.Number,
		&ord.Status,
		&items,
		&ord.Subtotal,
		&ord.Discount,
		&ord.Tax,
		&ord.Total,
		&ord.PaymentMethod,
		&ord.CreatedAt,
		&ord.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &ord.Items); err != nil {
		return nil, err
	}

	return &ord, nil
}
