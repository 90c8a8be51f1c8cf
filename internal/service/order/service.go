package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

// Invoices for fresh orders fall due a week after placement.
const invoiceDueIn = 7 * 24 * time.Hour

type CartRepository interface {
	Cart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, ord *model.Order) (uuid.UUID, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) (uuid.UUID, error)
}

type OrderPlacedSender interface {
	SendOrderPlaced(ctx context.Context, event model.OrderPlaced) error
}

type service struct {
	carts          CartRepository
	repo           OrderRepository
	invoices       InvoiceRepository
	producer       OrderPlacedSender
	currency       string
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewOrderService(
	carts CartRepository,
	repository OrderRepository,
	invoices InvoiceRepository,
	producer OrderPlacedSender,
	currency string,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		carts:          carts,
		repo:           repository,
		invoices:       invoices,
		producer:       producer,
		currency:       currency,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// Create places an order from the user's cart: prices it, persists the
// order with its invoice and empties the cart. The cart is only cleared
// after the order exists.
func (svc *service) Create(
	ctx context.Context,
	params model.CreateOrderParams,
) (*model.Order, *model.Invoice, error) {
	const op string = "order.service.Create"
	log := logger.With(
		logger.String("user_id", params.UserID.String()),
		logger.String("payment_method", string(params.PaymentMethod)),
	)

	if params.UserID == uuid.Nil {
		log.Error(ctx, "wrong params")
		return nil, nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	if !params.PaymentMethod.Known() {
		log.Error(ctx, "unknown payment method")
		return nil, nil, fmt.Errorf("%s: %w", op, model.ErrUnknownMethod)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	cart, err := svc.carts.Cart(rdbCtx, params.UserID)
	if err != nil {
		log.Error(ctx, "repository cart", logger.ErrorF(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if cart.IsEmpty() {
		log.Warn(ctx, "empty cart")
		return nil, nil, fmt.Errorf("%s: %w", op, model.ErrCartEmpty)
	}

	if missing := cart.MissingDomainItem(); missing != nil {
		log.Warn(ctx, "domain item without name", logger.String("item_name", missing.Name))
		return nil, nil, fmt.Errorf("%s: %s: %w", op, missing.Name, model.ErrDomainNameRequired)
	}

	summary := model.Summarize(cart.Items, cart.PromoCode)

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, model.OrderItem{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Type:         it.Type,
			BillingCycle: it.BillingCycle,
			Quantity:     it.Quantity,
			UnitPrice:    it.Price,
			DomainName:   it.DomainName,
		})
	}

	ord := &model.Order{
		UserID:        params.UserID,
		Status:        model.OrderPendingPayment,
		Items:         items,
		Subtotal:      summary.Subtotal,
		Discount:      summary.Discount,
		Tax:           summary.Tax,
		Total:         summary.Total,
		PaymentMethod: params.PaymentMethod,
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	ordID, err := svc.repo.Create(wdbCtx, ord)
	if err != nil {
		log.Error(ctx, "repository create order", logger.ErrorF(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	inv := &model.Invoice{
		UserID:    params.UserID,
		OrderID:   &ordID,
		Status:    model.InvoiceUnpaid,
		Subtotal:  summary.Subtotal.Sub(summary.Discount),
		TaxAmount: summary.Tax,
		Total:     summary.Total,
		Currency:  svc.currency,
		DueAt:     time.Now().Add(invoiceDueIn),
	}

	if _, err := svc.invoices.Create(wdbCtx, inv); err != nil {
		log.Error(ctx, "repository create invoice", logger.ErrorF(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.producer.SendOrderPlaced(ctx, model.OrderPlaced{
		EventID:     uuid.New(),
		OrderID:     ordID,
		OrderNumber: ord.Number,
		UserID:      params.UserID,
		InvoiceID:   inv.ID,
		Total:       ord.Total,
		Currency:    svc.currency,
		PlacedAt:    time.Now(),
	}); err != nil {
		// The order exists either way, delivery is retried downstream.
		log.Error(ctx, "send order placed", logger.ErrorF(err))
	}

	if err := svc.carts.Clear(wdbCtx, params.UserID); err != nil {
		log.Error(ctx, "repository clear cart", logger.ErrorF(err))
	}

	return ord, inv, nil
}

func (svc *service) OrderByID(ctx context.Context, ordID uuid.UUID) (*model.Order, error) {
	const op string = "order.service.OrderByID"
	log := logger.With(logger.String("order_id", ordID.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	ord, err := svc.repo.OrderByID(ctx, ordID)
	if err != nil {
		log.Error(ctx, "repository order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ord, nil
}

// MarkPaid moves a pending order to PAID once its invoice settles.
func (svc *service) MarkPaid(ctx context.Context, ordID uuid.UUID) error {
	const op string = "order.service.MarkPaid"
	log := logger.With(logger.String("order_id", ordID.String()))

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	ord, err := svc.repo.OrderByID(rdbCtx, ordID)
	if err != nil {
		log.Error(ctx, "repository order by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log = logger.With(logger.String("order_status", string(ord.Status)))
	switch ord.Status {
	case model.OrderPendingPayment:
	case model.OrderPaid, model.OrderCompleted, model.OrderCancelled:
		log.Error(ctx, "order status conflict")
		return fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	default:
		log.Error(ctx, "unknown order status")
		return fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	if err := svc.repo.UpdateStatus(wdbCtx, ordID, model.OrderPaid); err != nil {
		log.Error(ctx, "repository update status", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
