package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type CartRepository interface {
	AddItem(ctx context.Context, item *model.CartItem) (uuid.UUID, error)
	Cart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	ItemByID(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error)
	UpdateItem(ctx context.Context, item *model.CartItem) error
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	SetPromoCode(ctx context.Context, userID uuid.UUID, code *string) error
}

type service struct {
	repo           CartRepository
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewCartService(
	repository CartRepository,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repository,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (svc *service) AddItem(ctx context.Context, params model.AddCartItemParams) (*model.CartItem, error) {
	const op string = "cart.service.AddItem"
	log := logger.With(
		logger.String("user_id", params.UserID.String()),
		logger.Int64("product_id", params.ProductID),
	)

	if params.UserID == uuid.Nil || params.Name == "" || params.ProductID == 0 {
		log.Error(ctx, "wrong params")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	if params.Type != model.ItemTypeService && params.Type != model.ItemTypeDomain {
		log.Error(ctx, "unknown item type", logger.String("item_type", string(params.Type)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	if !params.BillingCycle.Known() {
		log.Error(ctx, "unknown billing cycle", logger.String("billing_cycle", string(params.BillingCycle)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	if params.Price.IsNegative() {
		log.Error(ctx, "negative price")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	item := &model.CartItem{
		UserID:       params.UserID,
		ProductID:    params.ProductID,
		Name:         params.Name,
		Type:         params.Type,
		BillingCycle: params.BillingCycle,
		Price:        params.Price,
		MonthlyPrice: params.MonthlyPrice,
		AnnualPrice:  params.AnnualPrice,
		Quantity:     params.Quantity,
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if params.DomainName != nil {
		name, err := model.NormalizeDomainName(*params.DomainName)
		if err != nil {
			log.Error(ctx, "normalize domain name", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.DomainName = &name
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	itemID, err := svc.repo.AddItem(ctx, item)
	if err != nil {
		log.Error(ctx, "repository add item", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item.ID = itemID

	return item, nil
}

func (svc *service) Cart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	const op string = "cart.service.Cart"
	log := logger.With(logger.String("user_id", userID.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	cart, err := svc.repo.Cart(ctx, userID)
	if err != nil {
		log.Error(ctx, "repository cart", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}

// SetBillingCycle switches an item between monthly and annual billing and
// reprices it from the stored price options.
func (svc *service) SetBillingCycle(
	ctx context.Context,
	userID, itemID uuid.UUID,
	cycle model.BillingCycle,
) (*model.CartItem, error) {
	const op string = "cart.service.SetBillingCycle"
	log := logger.With(
		logger.String("user_id", userID.String()),
		logger.String("item_id", itemID.String()),
		logger.String("billing_cycle", string(cycle)),
	)

	if !cycle.Known() {
		log.Error(ctx, "unknown billing cycle")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	item, err := svc.repo.ItemByID(rdbCtx, userID, itemID)
	if err != nil {
		log.Error(ctx, "repository item by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var price *decimal.Decimal
	switch cycle {
	case model.CycleMonthly:
		price = item.MonthlyPrice
	case model.CycleAnnually:
		price = item.AnnualPrice
	}
	if price == nil {
		log.Error(ctx, "no price for cycle")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	item.BillingCycle = cycle
	item.Price = *price

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	if err := svc.repo.UpdateItem(wdbCtx, item); err != nil {
		log.Error(ctx, "repository update item", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// SetDomainName records the chosen name for a DOMAIN item, applying the
// normalization rule to the raw input.
func (svc *service) SetDomainName(
	ctx context.Context,
	userID, itemID uuid.UUID,
	raw string,
) (*model.CartItem, error) {
	const op string = "cart.service.SetDomainName"
	log := logger.With(
		logger.String("user_id", userID.String()),
		logger.String("item_id", itemID.String()),
	)

	name, err := model.NormalizeDomainName(raw)
	if err != nil {
		log.Error(ctx, "normalize domain name", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	item, err := svc.repo.ItemByID(rdbCtx, userID, itemID)
	if err != nil {
		log.Error(ctx, "repository item by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if item.Type != model.ItemTypeDomain {
		log.Error(ctx, "not a domain item", logger.String("item_type", string(item.Type)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	item.DomainName = &name

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	if err := svc.repo.UpdateItem(wdbCtx, item); err != nil {
		log.Error(ctx, "repository update item", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (svc *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	const op string = "cart.service.RemoveItem"
	log := logger.With(
		logger.String("user_id", userID.String()),
		logger.String("item_id", itemID.String()),
	)

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.RemoveItem(ctx, userID, itemID); err != nil {
		log.Error(ctx, "repository remove item", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) Clear(ctx context.Context, userID uuid.UUID) error {
	const op string = "cart.service.Clear"
	log := logger.With(logger.String("user_id", userID.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.Clear(ctx, userID); err != nil {
		log.Error(ctx, "repository clear", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ApplyPromoCode stores the code after an exact match against the known
// promotion. Unknown codes are rejected and nothing is stored.
func (svc *service) ApplyPromoCode(ctx context.Context, userID uuid.UUID, code string) error {
	const op string = "cart.service.ApplyPromoCode"
	log := logger.With(logger.String("user_id", userID.String()))

	if !model.PromoCodeValid(code) {
		log.Warn(ctx, "invalid promo code")
		return fmt.Errorf("%s: %w", op, model.ErrInvalidPromoCode)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.SetPromoCode(ctx, userID, &code); err != nil {
		log.Error(ctx, "repository set promo code", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) RemovePromoCode(ctx context.Context, userID uuid.UUID) error {
	const op string = "cart.service.RemovePromoCode"
	log := logger.With(logger.String("user_id", userID.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.SetPromoCode(ctx, userID, nil); err != nil {
		log.Error(ctx, "repository set promo code", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
