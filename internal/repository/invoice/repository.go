package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/facreativefirm/billing-portal/internal/model"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewInvoiceRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts an invoice; the number is assigned by the database
// sequence and written back into inv.
func (r *repository) Create(ctx context.Context, inv *model.Invoice) (uuid.UUID, error) {
	q := r.sb.
		Insert("invoices").
		Columns("user_id", "order_id", "status", "subtotal", "tax_amount", "total", "currency", "due_at").
		Values(inv.UserID, inv.OrderID, inv.Status, inv.Subtotal, inv.TaxAmount, inv.Total, inv.Currency, inv.DueAt).
		Suffix("RETURNING id, number")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&inv.ID, &inv.Number); err != nil {
		return uuid.Nil, err
	}

	return inv.ID, nil
}

func (r *repository) InvoiceByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	q := r.sb.
		Select("id", "user_id", "number", "order_id", "status",
			"subtotal", "tax_amount", "total", "currency", "due_at", "created_at", "updated_at").
		From("invoices").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var inv model.Invoice
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&inv.ID,
		&inv.UserID,
		&inv.Number,
		&inv.OrderID,
		&inv.Status,
		&inv.Subtotal,
		&inv.TaxAmount,
		&inv.Total,
		&inv.Currency,
		&inv.DueAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInvoiceNotFound
		}
		return nil, err
	}

	return &inv, nil
}

// UpdateStatus moves the invoice from one status to another. Zero matched
// rows with an existing invoice means a concurrent transition already won.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.InvoiceStatus) error {
	q := r.sb.
		Update("invoices").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": from})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		if _, err := r.InvoiceByID(ctx, id); err != nil {
			return err
		}
		return model.ErrInvoiceConflict
	}

	return nil
}

func (r *repository) CountByStatus(ctx context.Context, userID uuid.UUID, status model.InvoiceStatus) (int64, error) {
	q := r.sb.
		Select("count(*)").
		From("invoices").
		Where(sq.Eq{"user_id": userID, "status": status})

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

// SumPaidTotal returns the revenue across the user's paid invoices.
func (r *repository) SumPaidTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	q := r.sb.
		Select("coalesce(sum(total), 0)").
		From("invoices").
		Where(sq.Eq{"user_id": userID, "status": model.InvoicePaid})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
