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

func NewPaymentRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) CreateManualPayment(ctx context.Context, payment *model.ManualPayment) (uuid.UUID, error) {
	q := r.sb.
		Insert("manual_payments").
		Columns("invoice_id", "method", "transaction_id", "sender_number", "status").
		Values(payment.InvoiceID, payment.Method, payment.TransactionID, payment.SenderNumber, payment.Status).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var paymentID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&paymentID); err != nil {
		return uuid.Nil, err
	}

	return paymentID, nil
}

func (r *repository) ManualPaymentByID(ctx context.Context, id uuid.UUID) (*model.ManualPayment, error) {
	q := r.sb.
		Select("id", "invoice_id", "method", "transaction_id", "sender_number", "status", "created_at", "updated_at").
		From("manual_payments").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var p model.ManualPayment
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&p.ID,
		&p.InvoiceID,
		&p.Method,
		&p.TransactionID,
		&p.SenderNumber,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInvoiceNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdateManualPaymentStatus(ctx context.Context, id uuid.UUID, status model.ManualPaymentStatus) error {
	q := r.sb.
		Update("manual_payments").
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
		return model.ErrInvoiceNotFound
	}

	return nil
}

func (r *repository) CreateTransaction(ctx context.Context, tx *model.PaymentTransaction) (uuid.UUID, error) {
	q := r.sb.
		Insert("payment_transactions").
		Columns("invoice_id", "gateway", "reference", "amount").
		Values(tx.InvoiceID, tx.Gateway, tx.Reference, tx.Amount).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var txID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&txID); err != nil {
		return uuid.Nil, err
	}

	return txID, nil
}

func (r *repository) TransactionsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.PaymentTransaction, error) {
	q := r.sb.
		Select("id", "invoice_id", "gateway", "reference", "amount", "created_at").
		From("payment_transactions").
		Where(sq.Eq{"invoice_id": invoiceID}).
		OrderBy("created_at ASC")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []model.PaymentTransaction
	for rows.Next() {
		var tx model.PaymentTransaction
		err := rows.Scan(&tx.ID, &tx.InvoiceID, &tx.Gateway, &tx.Reference, &tx.Amount, &tx.CreatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}
