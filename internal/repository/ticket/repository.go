package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewTicketRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) CountOpen(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := r.sb.
		Select("count(*)").
		From("tickets").
		Where(sq.Eq{"user_id": userID, "status": "OPEN"})

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
