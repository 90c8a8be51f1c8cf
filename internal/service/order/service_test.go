package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/service/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	type deps struct {
		carts      *mocks.MockCartRepository
		repository *mocks.MockOrderRepository
		invoices   *mocks.MockInvoiceRepository
		producer   *mocks.MockOrderPlacedSender
	}

	newSvc := func(d deps) *service {
		return NewOrderService(d.carts, d.repository, d.invoices, d.producer, "BDT", time.Second, time.Second)
	}

	userID := uuid.New()
	ordID := uuid.New()

	filledCart := func() *model.Cart {
		return &model.Cart{
			UserID: userID,
			Items: []model.CartItem{
				{
					ProductID:    7,
					Name:         "Web Hosting - Basic",
					Type:         model.ItemTypeService,
					BillingCycle: model.CycleMonthly,
					Price:        dec("25.00"),
					Quantity:     1,
				},
				{
					ProductID:    3,
					Name:         "Domain Registration",
					Type:         model.ItemTypeDomain,
					BillingCycle: model.CycleAnnually,
					Price:        dec("20.00"),
					Quantity:     1,
					DomainName:   strPtr("mysite.com"),
				},
			},
			PromoCode: strPtr("SAVE20"),
		}
	}

	type testCase struct {
		name   string
		params model.CreateOrderParams
		setup  func(d deps)
		assert func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps)
	}

	tests := []testCase{
		{
			name:   "unknown payment method",
			params: model.CreateOrderParams{UserID: userID, PaymentMethod: model.PaymentMethod("paypal")},
			assert: func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrUnknownMethod)
				assert.Nil(t, ord)
				assert.Nil(t, inv)

				d.carts.AssertNotCalled(t, "Cart", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "empty cart",
			params: model.CreateOrderParams{UserID: userID, PaymentMethod: model.MethodCard},
			setup: func(d deps) {
				d.carts.
					On("Cart", mock.Anything, userID).
					Return(&model.Cart{UserID: userID}, nil).
					Once()
			},
			assert: func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrCartEmpty)
				assert.Nil(t, ord)
				assert.Nil(t, inv)

				d.repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "domain item without a name blocks the order",
			params: model.CreateOrderParams{UserID: userID, PaymentMethod: model.MethodCard},
			setup: func(d deps) {
				cart := filledCart()
				cart.Items[1].DomainName = nil

				d.carts.
					On("Cart", mock.Anything, userID).
					Return(cart, nil).
					Once()
			},
			assert: func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrDomainNameRequired)
				assert.Nil(t, ord)
				assert.Nil(t, inv)

				d.repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				d.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "order create failure leaves the cart intact",
			params: model.CreateOrderParams{UserID: userID, PaymentMethod: model.MethodCard},
			setup: func(d deps) {
				d.carts.
					On("Cart", mock.Anything, userID).
					Return(filledCart(), nil).
					Once()

				d.repository.
					On("Create", mock.Anything, mock.Anything).
					Return(uuid.Nil, errors.New("db write failed")).
					Once()
			},
			assert: func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.Nil(t, ord)
				assert.Nil(t, inv)

				d.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				d.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: promo priced order, invoice, event and cleared cart",
			params: model.CreateOrderParams{UserID: userID, PaymentMethod: model.MethodBkashManual},
			setup: func(d deps) {
				d.carts.
					On("Cart", mock.Anything, userID).
					Return(filledCart(), nil).
					Once()

				d.repository.
					On("Create", mock.Anything, mock.MatchedBy(func(ord *model.Order) bool {
						return ord.UserID == userID &&
							ord.Status == model.OrderPendingPayment &&
							len(ord.Items) == 2 &&
							ord.Subtotal.Equal(dec("45.00")) &&
							ord.Discount.Equal(dec("9.00")) &&
							ord.Tax.Equal(dec("1.80")) &&
							ord.Total.Equal(dec("37.80"))
					})).
					Return(ordID, nil).
					Once()

				d.invoices.
					On("Create", mock.Anything, mock.MatchedBy(func(inv *model.Invoice) bool {
						return inv.UserID == userID &&
							inv.OrderID != nil && *inv.OrderID == ordID &&
							inv.Status == model.InvoiceUnpaid &&
							inv.Subtotal.Equal(dec("36.00")) &&
							inv.TaxAmount.Equal(dec("1.80")) &&
							inv.Total.Equal(dec("37.80")) &&
							inv.Currency == "BDT" &&
							inv.DueAt.After(time.Now())
					})).
					Return(uuid.New(), nil).
					Once()

				d.producer.
					On("SendOrderPlaced", mock.Anything, mock.MatchedBy(func(event model.OrderPlaced) bool {
						return event.OrderID == ordID &&
							event.UserID == userID &&
							event.Total.Equal(dec("37.80")) &&
							event.Currency == "BDT"
					})).
					Return(nil).
					Once()

				d.carts.
					On("Clear", mock.Anything, userID).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, ord)
				require.NotNil(t, inv)
				assert.Equal(t, model.OrderPendingPayment, ord.Status)
				assert.Equal(t, model.MethodBkashManual, ord.PaymentMethod)
			},
		},
		{
			name:   "event delivery failure does not fail the order",
			params: model.CreateOrderParams{UserID: userID, PaymentMethod: model.MethodCard},
			setup: func(d deps) {
				d.carts.
					On("Cart", mock.Anything, userID).
					Return(filledCart(), nil).
					Once()

				d.repository.
					On("Create", mock.Anything, mock.Anything).
					Return(ordID, nil).
					Once()

				d.invoices.
					On("Create", mock.Anything, mock.Anything).
					Return(uuid.New(), nil).
					Once()

				d.producer.
					On("SendOrderPlaced", mock.Anything, mock.Anything).
					Return(errors.New("broker unavailable")).
					Once()

				d.carts.
					On("Clear", mock.Anything, userID).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, ord *model.Order, inv *model.Invoice, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, ord)
				require.NotNil(t, inv)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				carts:      mocks.NewMockCartRepository(t),
				repository: mocks.NewMockOrderRepository(t),
				invoices:   mocks.NewMockInvoiceRepository(t),
				producer:   mocks.NewMockOrderPlacedSender(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			ord, inv, err := svc.Create(ctx, tt.params)
			tt.assert(t, ord, inv, err, d)
		})
	}
}

func TestServiceMarkPaid(t *testing.T) {
	t.Parallel()

	type deps struct {
		carts      *mocks.MockCartRepository
		repository *mocks.MockOrderRepository
		invoices   *mocks.MockInvoiceRepository
		producer   *mocks.MockOrderPlacedSender
	}

	newSvc := func(d deps) *service {
		return NewOrderService(d.carts, d.repository, d.invoices, d.producer, "BDT", time.Second, time.Second)
	}

	ordID := uuid.New()

	type testCase struct {
		name   string
		setup  func(d deps)
		assert func(t *testing.T, err error, d deps)
	}

	tests := []testCase{
		{
			name: "pending order is marked paid",
			setup: func(d deps) {
				d.repository.
					On("OrderByID", mock.Anything, ordID).
					Return(&model.Order{ID: ordID, Status: model.OrderPendingPayment}, nil).
					Once()

				d.repository.
					On("UpdateStatus", mock.Anything, ordID, model.OrderPaid).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, err error, d deps) {
				require.NoError(t, err)
			},
		},
		{
			name: "already paid order conflicts",
			setup: func(d deps) {
				d.repository.
					On("OrderByID", mock.Anything, ordID).
					Return(&model.Order{ID: ordID, Status: model.OrderPaid}, nil).
					Once()
			},
			assert: func(t *testing.T, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrUnknownStatus)

				d.repository.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "order not found",
			setup: func(d deps) {
				d.repository.
					On("OrderByID", mock.Anything, ordID).
					Return((*model.Order)(nil), model.ErrOrderNotFound).
					Once()
			},
			assert: func(t *testing.T, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrOrderNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				carts:      mocks.NewMockCartRepository(t),
				repository: mocks.NewMockOrderRepository(t),
				invoices:   mocks.NewMockInvoiceRepository(t),
				producer:   mocks.NewMockOrderPlacedSender(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := svc.MarkPaid(ctx, ordID)
			tt.assert(t, err, d)
		})
	}
}
