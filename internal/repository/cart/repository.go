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

func NewCartRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var cartItemColumns = []string{
	"id", "user_id", "product_id", "name", "item_type", "billing_cycle",
	"price", "monthly_price", "annual_price", "quantity", "domain_name", "created_at",
}

func (r *repository) AddItem(ctx context.Context, item *model.CartItem) (uuid.UUID, error) {
	q := r.sb.
		Insert("cart_items").
		Columns("user_id", "product_id", "name", "item_type", "billing_cycle",
			"price", "monthly_price", "annual_price", "quantity", "domain_name").
		Values(item.UserID, item.ProductID, item.Name, item.Type, item.BillingCycle,
			item.Price, item.MonthlyPrice, item.AnnualPrice, item.Quantity, item.DomainName).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var itemID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&itemID); err != nil {
		return uuid.Nil, err
	}

	return itemID, nil
}

func (r *repository) Cart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	q := r.sb.
		Select(cartItemColumns...).
		From("cart_items").
		Where(sq.Eq{"user_id": userID}).
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

	cart := &model.Cart{UserID: userID}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	promo, err := r.promoCode(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.PromoCode = promo

	return cart, nil
}

func (r *repository) ItemByID(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error) {
	q := r.sb.
		Select(cartItemColumns...).
		From("cart_items").
		Where(sq.Eq{"id": itemID, "user_id": userID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	item, err := scanCartItem(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *model.CartItem) error {
	q := r.sb.
		Update("cart_items").
		Set("billing_cycle", item.BillingCycle).
		Set("price", item.Price).
		Set("domain_name", item.DomainName).
		Where(sq.Eq{"id": item.ID, "user_id": item.UserID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	q := r.sb.
		Delete("cart_items").
		Where(sq.Eq{"id": itemID, "user_id": userID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// Clear removes every item and the promo code for the user.
func (r *repository) Clear(ctx context.Context, userID uuid.UUID) error {
	delItems := r.sb.Delete("cart_items").Where(sq.Eq{"user_id": userID})

	sqlStr, args, err := delItems.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	delPromo := r.sb.Delete("cart_promos").Where(sq.Eq{"user_id": userID})

	sqlStr, args, err = delPromo.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}

func (r *repository) SetPromoCode(ctx context.Context, userID uuid.UUID, code *string) error {
	if code == nil {
		q := r.sb.Delete("cart_promos").Where(sq.Eq{"user_id": userID})

		sqlStr, args, err := q.ToSql()
		if err != nil {
			return err
		}
		_, err = r.pool.Exec(ctx, sqlStr, args...)
		return err
	}

	q := r.sb.
		Insert("cart_promos").
		Columns("user_id", "promo_code").
		Values(userID, *code).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET promo_code = EXCLUDED.promo_code")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, sqlStr, args...)
	return err
}

func (r *repository) promoCode(ctx context.Context, userID uuid.UUID) (*string, error) {
	q := r.sb.
		Select("promo_code").
		From("cart_promos").
		Where(sq.Eq{"user_id": userID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var code string
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &code, nil
}

func scanCartItem(row pgx.Row) (*model.CartItem, error) {
	var item model.CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Name,
		&item.Type,
		&item.BillingCycle,
		&item.Price,
		&item.MonthlyPrice,
		&item.AnnualPrice,
		&item.Quantity,
		&item.DomainName,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}
