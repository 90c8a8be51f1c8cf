package repository

import (
	"context"
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

func NewCheckoutRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var sessionColumns = []string{
	"id", "user_id", "step", "status", "invoice_id", "order_id",
	"payment_method", "billing_address", "created_at", "updated_at",
}

func (r *repository) Create(ctx context.Context, session *model.CheckoutSession) (uuid.UUID, error) {
	q := r.sb.
		Insert("checkout_sessions").
		Columns("user_id", "step", "status", "invoice_id").
		Values(session.UserID, session.Step, session.Status, session.InvoiceID).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var sessionID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&sessionID); err != nil {
		return uuid.Nil, err
	}

	return sessionID, nil
}

func (r *repository) SessionByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error) {
	q := r.sb.
		Select(sessionColumns...).
		From("checkout_sessions").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var s model.CheckoutSession
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&s.ID,
		&s.UserID,
		&s.Step,
		&s.Status,
		&s.InvoiceID,
		&s.OrderID,
		&s.PaymentMethod,
		&s.BillingAddress,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, upd *model.CheckoutSession) error {
	if upd.ID == uuid.Nil {
		return errors.New("empty session id")
	}

	set := sq.Eq{"updated_at": sq.Expr("now()")}

	if upd.Step != 0 {
		set["step"] = upd.Step
	}
	if upd.Status != "" {
		set["status"] = upd.Status
	}
	if upd.OrderID != nil {
		set["order_id"] = upd.OrderID
	}
	if upd.PaymentMethod != nil {
		set["payment_method"] = upd.PaymentMethod
	}
	if upd.BillingAddress != nil {
		set["billing_address"] = upd.BillingAddress
	}

	q := r.sb.
		Update("checkout_sessions").
		SetMap(set).
		Where(sq.Eq{"id": upd.ID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}

// MarkSubmitting flips an ACTIVE session to SUBMITTING. The conditional
// update is the double-submit guard: a concurrent submission loses the
// race, matches zero rows and gets ErrSubmitInFlight.
func (r *repository) MarkSubmitting(ctx context.Context, id uuid.UUID) error {
	q := r.sb.
		Update("checkout_sessions").
		Set("status", model.CheckoutSubmitting).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": model.CheckoutActive})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrSubmitInFlight
	}

	return nil
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status model.CheckoutStatus) error {
	q := r.sb.
		Update("checkout_sessions").
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
		return model.ErrSessionNotFound
	}

	return nil
}
