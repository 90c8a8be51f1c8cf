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

func TestServicePay(t *testing.T) {
	t.Parallel()

	type deps struct {
		repository *mocks.MockInvoiceRepository
		payments   *mocks.MockPaymentRepository
		gateway    *mocks.MockGatewayClient
		orders     *mocks.MockOrderService
	}

	newSvc := func(d deps) *service {
		return NewInvoiceService(d.repository, d.payments, d.gateway, d.orders, "BDT", time.Second, time.Second)
	}

	invID := uuid.New()
	ordID := uuid.New()

	unpaidInvoice := func() *model.Invoice {
		return &model.Invoice{
			ID:      invID,
			Number:  "INV-001042",
			OrderID: &ordID,
			Status:  model.InvoiceUnpaid,
			Total:   dec("47.25"),
		}
	}

	type testCase struct {
		name   string
		method model.PaymentMethod
		setup  func(d deps)
		assert func(t *testing.T, inv *model.Invoice, err error, d deps)
	}

	tests := []testCase{
		{
			name:   "unknown payment method",
			method: model.PaymentMethod("paypal"),
			assert: func(t *testing.T, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrUnknownMethod)
				assert.Nil(t, inv)

				d.repository.AssertNotCalled(t, "InvoiceByID", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "manual method rejected on instant path",
			method: model.MethodBank,
			assert: func(t *testing.T, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, inv)

				d.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "already paid invoice conflicts",
			method: model.MethodCard,
			setup: func(d deps) {
				inv := unpaidInvoice()
				inv.Status = model.InvoicePaid

				d.repository.
					On("InvoiceByID", mock.Anything, invID).
					Return(inv, nil).
					Once()
			},
			assert: func(t *testing.T, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvoiceConflict)
				assert.Nil(t, inv)

				d.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "gateway failure keeps the invoice unpaid",
			method: model.MethodCard,
			setup: func(d deps) {
				d.repository.
					On("InvoiceByID", mock.Anything, invID).
					Return(unpaidInvoice(), nil).
					Once()

				d.gateway.
					On("Charge", mock.Anything, mock.Anything).
					Return((*model.ChargeResult)(nil), errors.New("gateway timeout")).
					Once()
			},
			assert: func(t *testing.T, inv *model.Invoice, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrBadGateway)
				assert.Nil(t, inv)

				d.repository.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				d.payments.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: mobile method routes to the bkash gateway",
			method: model.MethodMobile,
			setup: func(d deps) {
				d.repository.
					On("InvoiceByID", mock.Anything, invID).
					Return(unpaidInvoice(), nil).
					Once()

				d.gateway.
					On("Charge", mock.Anything, mock.MatchedBy(func(p model.ChargeParams) bool {
						return p.InvoiceID == invID &&
							p.Gateway == model.GatewayBkash &&
							p.Amount.Equal(dec("47.25")) &&
							p.Currency == "BDT"
					})).
					Return(&model.ChargeResult{Reference: "ch_8271"}, nil).
					Once()

				d.payments.
					On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *model.PaymentTransaction) bool {
						return tx.InvoiceID == invID &&
							tx.Gateway == model.GatewayBkash &&
							tx.Reference == "ch_8271"
					})).
					Return(uuid.New(), nil).
					Once()

				d.repository.
					On("UpdateStatus", mock.Anything, invID, model.InvoiceUnpaid, model.InvoicePaid).
					Return(nil).
					Once()

				d.orders.
					On("MarkPaid", mock.Anything, ordID).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, inv *model.Invoice, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, inv)
				assert.Equal(t, model.InvoicePaid, inv.Status)
			},
		},
		{
			name:   "success: card method routes to the stripe gateway",
			method: model.MethodCard,
			setup: func(d deps) {
				d.repository.
					On("InvoiceByID", mock.Anything, invID).
					Return(unpaidInvoice(), nil).
					Once()

				d.gateway.
					On("Charge", mock.Anything, mock.MatchedBy(func(p model.ChargeParams) bool {
						return p.Gateway == model.GatewayStripe
					})).
					Return(&model.ChargeResult{Reference: "ch_9001"}, nil).
					Once()

				d.payments.
					On("CreateTransaction", mock.Anything, mock.Anything).
					Return(uuid.New(), nil).
					Once()

				d.repository.
					On("UpdateStatus", mock.Anything, invID, model.InvoiceUnpaid, model.InvoicePaid).
					Return(nil).
					Once()

				d.orders.
					On("MarkPaid", mock.Anything, ordID).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, inv *model.Invoice, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, inv)
				assert.Equal(t, model.InvoicePaid, inv.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				repository: mocks.NewMockInvoiceRepository(t),
				payments:   mocks.NewMockPaymentRepository(t),
				gateway:    mocks.NewMockGatewayClient(t),
				orders:     mocks.NewMockOrderService(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			inv, err := svc.Pay(ctx, invID, tt.method)
			tt.assert(t, inv, err, d)
		})
	}
}

func TestServiceSubmitManualPayment(t *testing.T) {
	t.Parallel()

	type deps struct {
		repository *mocks.MockInvoiceRepository
		payments   *mocks.MockPaymentRepository
		gateway    *mocks.MockGatewayClient
		orders     *mocks.MockOrderService
	}

	newSvc := func(d deps) *service {
		return NewInvoiceService(d.repository, d.payments, d.gateway, d.orders, "BDT", time.Second, time.Second)
	}

	invID := uuid.New()
	paymentID := uuid.New()

	type testCase struct {
		name   string
		method model.PaymentMethod
		params model.SubmitParams
		setup  func(d deps)
		assert func(t *testing.T, payment *model.ManualPayment, err error, d deps)
	}

	tests := []testCase{
		{
			name:   "instant method rejected on manual path",
			method: model.MethodCard,
			params: model.SubmitParams{TransactionID: "TRX123", SenderNumber: "01700000000"},
			assert: func(t *testing.T, payment *model.ManualPayment, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, payment)
			},
		},
		{
			name:   "missing transaction id",
			method: model.MethodBkashManual,
			params: model.SubmitParams{TransactionID: "   ", SenderNumber: "01700000000"},
			assert: func(t *testing.T, payment *model.ManualPayment, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrProofRequired)
				assert.Nil(t, payment)

				d.repository.AssertNotCalled(t, "InvoiceByID", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "missing sender number",
			method: model.MethodBkashManual,
			params: model.SubmitParams{TransactionID: "TRX123"},
			assert: func(t *testing.T, payment *model.ManualPayment, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrProofRequired)
				assert.Nil(t, payment)
			},
		},
		{
			name:   "invoice already verifying",
			method: model.MethodBank,
			params: model.SubmitParams{TransactionID: "TRX123", SenderNumber: "01700000000"},
			setup: func(d deps) {
				d.repository.
					On("InvoiceByID", mock.Anything, invID).
					Return(&model.Invoice{ID: invID, Status: model.InvoiceVerifying}, nil).
					Once()
			},
			assert: func(t *testing.T, payment *model.ManualPayment, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvoiceConflict)
				assert.Nil(t, payment)

				d.payments.AssertNotCalled(t, "CreateManualPayment", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: proof trimmed and invoice moved to verifying",
			method: model.MethodNagadManual,
			params: model.SubmitParams{TransactionID: " TRX123 ", SenderNumber: " 01800000000 "},
			setup: func(d deps) {
				d.repository.
					On("InvoiceByID", mock.Anything, invID).
					Return(&model.Invoice{ID: invID, Status: model.InvoiceUnpaid}, nil).
					Once()

				d.payments.
					On("CreateManualPayment", mock.Anything, mock.MatchedBy(func(p *model.ManualPayment) bool {
						return p.InvoiceID == invID &&
							p.Method == model.MethodNagadManual &&
							p.TransactionID == "TRX123" &&
							p.SenderNumber == "01800000000" &&
							p.Status == model.ManualPaymentSubmitted
					})).
					Return(paymentID, nil).
					Once()

				d.repository.
					On("UpdateStatus", mock.Anything, invID, model.InvoiceUnpaid, model.InvoiceVerifying).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, payment *model.ManualPayment, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, payment)
				assert.Equal(t, paymentID, payment.ID)
				assert.Equal(t, model.ManualPaymentSubmitted, payment.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				repository: mocks.NewMockInvoiceRepository(t),
				payments:   mocks.NewMockPaymentRepository(t),
				gateway:    mocks.NewMockGatewayClient(t),
				orders:     mocks.NewMockOrderService(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			payment, err := svc.SubmitManualPayment(ctx, invID, tt.method, tt.params)
			tt.assert(t, payment, err, d)
		})
	}
}

func TestServiceMarkVerified(t *testing.T) {
	t.Parallel()

	invID := uuid.New()
	paymentID := uuid.New()

	ordID := uuid.New()

	t.Run("approved payment settles the invoice and its order", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockInvoiceRepository(t)
		payments := mocks.NewMockPaymentRepository(t)
		orders := mocks.NewMockOrderService(t)

		payments.
			On("ManualPaymentByID", mock.Anything, paymentID).
			Return(&model.ManualPayment{ID: paymentID, InvoiceID: invID, Status: model.ManualPaymentSubmitted}, nil).
			Once()
		payments.
			On("UpdateManualPaymentStatus", mock.Anything, paymentID, model.ManualPaymentApproved).
			Return(nil).
			Once()
		repo.
			On("UpdateStatus", mock.Anything, invID, model.InvoiceVerifying, model.InvoicePaid).
			Return(nil).
			Once()
		repo.
			On("InvoiceByID", mock.Anything, invID).
			Return(&model.Invoice{ID: invID, OrderID: &ordID, Status: model.InvoicePaid}, nil).
			Once()
		orders.
			On("MarkPaid", mock.Anything, ordID).
			Return(nil).
			Once()

		svc := NewInvoiceService(repo, payments, mocks.NewMockGatewayClient(t), orders, "BDT", time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := svc.MarkVerified(ctx, model.PaymentVerified{
			InvoiceID: invID,
			PaymentID: paymentID,
			Approved:  true,
		})
		require.NoError(t, err)
	})

	t.Run("rejected payment reopens the invoice", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockInvoiceRepository(t)
		payments := mocks.NewMockPaymentRepository(t)
		orders := mocks.NewMockOrderService(t)

		payments.
			On("ManualPaymentByID", mock.Anything, paymentID).
			Return(&model.ManualPayment{ID: paymentID, InvoiceID: invID, Status: model.ManualPaymentSubmitted}, nil).
			Once()
		payments.
			On("UpdateManualPaymentStatus", mock.Anything, paymentID, model.ManualPaymentRejected).
			Return(nil).
			Once()
		repo.
			On("UpdateStatus", mock.Anything, invID, model.InvoiceVerifying, model.InvoiceUnpaid).
			Return(nil).
			Once()

		svc := NewInvoiceService(repo, payments, mocks.NewMockGatewayClient(t), orders, "BDT", time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := svc.MarkVerified(ctx, model.PaymentVerified{
			InvoiceID: invID,
			PaymentID: paymentID,
			Approved:  false,
		})
		require.NoError(t, err)

		orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})

	t.Run("redelivered verdict is dropped", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockInvoiceRepository(t)
		payments := mocks.NewMockPaymentRepository(t)

		payments.
			On("ManualPaymentByID", mock.Anything, paymentID).
			Return(&model.ManualPayment{ID: paymentID, InvoiceID: invID, Status: model.ManualPaymentApproved}, nil).
			Once()

		svc := NewInvoiceService(repo, payments, mocks.NewMockGatewayClient(t), mocks.NewMockOrderService(t), "BDT", time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := svc.MarkVerified(ctx, model.PaymentVerified{
			InvoiceID: invID,
			PaymentID: paymentID,
			Approved:  true,
		})
		require.NoError(t, err)

		payments.AssertNotCalled(t, "UpdateManualPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceTransactions(t *testing.T) {
	t.Parallel()

	invID := uuid.New()

	t.Run("lists charges for an existing invoice", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockInvoiceRepository(t)
		payments := mocks.NewMockPaymentRepository(t)

		repo.
			On("InvoiceByID", mock.Anything, invID).
			Return(&model.Invoice{ID: invID, Status: model.InvoicePaid}, nil).
			Once()
		payments.
			On("TransactionsByInvoice", mock.Anything, invID).
			Return([]model.PaymentTransaction{
				{InvoiceID: invID, Gateway: model.GatewayStripe, Reference: "ch_9001", Amount: dec("47.25")},
			}, nil).
			Once()

		svc := NewInvoiceService(repo, payments, mocks.NewMockGatewayClient(t), mocks.NewMockOrderService(t), "BDT", time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		txs, err := svc.Transactions(ctx, invID)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, "ch_9001", txs[0].Reference)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockInvoiceRepository(t)
		payments := mocks.NewMockPaymentRepository(t)

		repo.
			On("InvoiceByID", mock.Anything, invID).
			Return((*model.Invoice)(nil), model.ErrInvoiceNotFound).
			Once()

		svc := NewInvoiceService(repo, payments, mocks.NewMockGatewayClient(t), mocks.NewMockOrderService(t), "BDT", time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		txs, err := svc.Transactions(ctx, invID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvoiceNotFound)
		assert.Nil(t, txs)

		payments.AssertNotCalled(t, "TransactionsByInvoice", mock.Anything, mock.Anything)
	})
}
