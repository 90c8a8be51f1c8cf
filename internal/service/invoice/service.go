package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) (uuid.UUID, error)
	InvoiceByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.InvoiceStatus) error
}

type PaymentRepository interface {
	CreateManualPayment(ctx context.Context, payment *model.ManualPayment) (uuid.UUID, error)
	ManualPaymentByID(ctx context.Context, id uuid.UUID) (*model.ManualPayment, error)
	UpdateManualPaymentStatus(ctx context.Context, id uuid.UUID, status model.ManualPaymentStatus) error
	CreateTransaction(ctx context.Context, tx *model.PaymentTransaction) (uuid.UUID, error)
	TransactionsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.PaymentTransaction, error)
}

type GatewayClient interface {
	Charge(ctx context.Context, params model.ChargeParams) (*model.ChargeResult, error)
}

type OrderService interface {
	MarkPaid(ctx context.Context, ordID uuid.UUID) error
}

type service struct {
	repo           InvoiceRepository
	payments       PaymentRepository
	gateway        GatewayClient
	orders         OrderService
	currency       string
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewInvoiceService(
	repository InvoiceRepository,
	payments PaymentRepository,
	gateway GatewayClient,
	orders OrderService,
	currency string,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repository,
		payments:       payments,
		gateway:        gateway,
		orders:         orders,
		currency:       currency,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// settleOrder flips the order behind a settled invoice to PAID. The invoice
// is already paid at this point, so a failure here is only logged.
func (svc *service) settleOrder(ctx context.Context, log *logger.Logger, inv *model.Invoice) {
	if inv.OrderID == nil {
		return
	}

	if err := svc.orders.MarkPaid(ctx, *inv.OrderID); err != nil {
		log.Error(ctx, "mark order paid", logger.ErrorF(err))
	}
}

func (svc *service) InvoiceByID(ctx context.Context, invID uuid.UUID) (*model.Invoice, error) {
	const op string = "invoice.service.InvoiceByID"
	log := logger.With(logger.String("invoice_id", invID.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	inv, err := svc.repo.InvoiceByID(ctx, invID)
	if err != nil {
		log.Error(ctx, "repository invoice by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return inv, nil
}

// Pay charges an unpaid invoice through the gateway mapped to the instant
// method. On gateway failure the invoice stays unpaid.
func (svc *service) Pay(
	ctx context.Context,
	invID uuid.UUID,
	method model.PaymentMethod,
) (*model.Invoice, error) {
	const op string = "invoice.service.Pay"
	log := logger.With(
		logger.String("invoice_id", invID.String()),
		logger.String("payment_method", string(method)),
	)

	if !method.Known() {
		log.Error(ctx, "unknown payment method")
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownMethod)
	}
	if method.Kind() != model.KindInstant {
		log.Error(ctx, "manual method on instant path")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	inv, err := svc.repo.InvoiceByID(rdbCtx, invID)
	if err != nil {
		log.Error(ctx, "repository invoice by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = logger.With(logger.String("invoice_status", string(inv.Status)))
	switch inv.Status {
	case model.InvoiceUnpaid:
	case model.InvoicePaid, model.InvoiceVerifying:
		log.Error(ctx, "invoice conflict")
		return nil, fmt.Errorf("%s: %w", op, model.ErrInvoiceConflict)
	default:
		log.Error(ctx, "unknown invoice status")
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	}

	result, err := svc.gateway.Charge(ctx, model.ChargeParams{
		InvoiceID: inv.ID,
		Gateway:   method.Gateway(),
		Amount:    inv.Total,
		Currency:  svc.currency,
	})
	if err != nil {
		log.Error(ctx, "gateway charge", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, model.ErrBadGateway)
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	if _, err := svc.payments.CreateTransaction(wdbCtx, &model.PaymentTransaction{
		InvoiceID: inv.ID,
		Gateway:   method.Gateway(),
		Reference: result.Reference,
		Amount:    inv.Total,
	}); err != nil {
		log.Error(ctx, "repository create transaction", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.repo.UpdateStatus(wdbCtx, inv.ID, model.InvoiceUnpaid, model.InvoicePaid); err != nil {
		log.Error(ctx, "repository update status", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	inv.Status = model.InvoicePaid

	svc.settleOrder(ctx, log, inv)

	return inv, nil
}

// SubmitManualPayment records a payment proof and puts the invoice into
// verification. Both the transaction id and the sender number are required.
func (svc *service) SubmitManualPayment(
	ctx context.Context,
	invID uuid.UUID,
	method model.PaymentMethod,
	params model.SubmitParams,
) (*model.ManualPayment, error) {
	const op string = "invoice.service.SubmitManualPayment"
	log := logger.With(
		logger.String("invoice_id", invID.String()),
		logger.String("payment_method", string(method)),
	)

	if !method.Known() {
		log.Error(ctx, "unknown payment method")
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownMethod)
	}
	if method.Kind() != model.KindManual {
		log.Error(ctx, "instant method on manual path")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	trxID := strings.TrimSpace(params.TransactionID)
	sender := strings.TrimSpace(params.SenderNumber)
	if trxID == "" || sender == "" {
		log.Warn(ctx, "missing payment proof")
		return nil, fmt.Errorf("%s: %w", op, model.ErrProofRequired)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	inv, err := svc.repo.InvoiceByID(rdbCtx, invID)
	if err != nil {
		log.Error(ctx, "repository invoice by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = logger.With(logger.String("invoice_status", string(inv.Status)))
	switch inv.Status {
	case model.InvoiceUnpaid:
	case model.InvoicePaid, model.InvoiceVerifying:
		log.Error(ctx, "invoice conflict")
		return nil, fmt.Errorf("%s: %w", op, model.ErrInvoiceConflict)
	default:
		log.Error(ctx, "unknown invoice status")
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	}

	payment := &model.ManualPayment{
		InvoiceID:     inv.ID,
		Method:        method,
		TransactionID: trxID,
		SenderNumber:  sender,
		Status:        model.ManualPaymentSubmitted,
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	paymentID, err := svc.payments.CreateManualPayment(wdbCtx, payment)
	if err != nil {
		log.Error(ctx, "repository create manual payment", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payment.ID = paymentID

	if err := svc.repo.UpdateStatus(wdbCtx, inv.ID, model.InvoiceUnpaid, model.InvoiceVerifying); err != nil {
		log.Error(ctx, "repository update status", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payment, nil
}

// Transactions lists the gateway charges recorded against an invoice.
func (svc *service) Transactions(ctx context.Context, invID uuid.UUID) ([]model.PaymentTransaction, error) {
	const op string = "invoice.service.Transactions"
	log := logger.With(logger.String("invoice_id", invID.String()))

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	if _, err := svc.repo.InvoiceByID(rdbCtx, invID); err != nil {
		log.Error(ctx, "repository invoice by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	txs, err := svc.payments.TransactionsByInvoice(rdbCtx, invID)
	if err != nil {
		log.Error(ctx, "repository transactions by invoice", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// MarkVerified applies an operator's verdict on a submitted proof. An
// approved payment settles the invoice, a rejected one reopens it. A verdict
// for a proof that already left SUBMITTED is dropped, so redelivered events
// are harmless.
func (svc *service) MarkVerified(ctx context.Context, event model.PaymentVerified) error {
	const op string = "invoice.service.MarkVerified"
	log := logger.With(
		logger.String("invoice_id", event.InvoiceID.String()),
		logger.String("payment_id", event.PaymentID.String()),
		logger.Bool("approved", event.Approved),
	)

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	payment, err := svc.payments.ManualPaymentByID(rdbCtx, event.PaymentID)
	if err != nil {
		log.Error(ctx, "repository manual payment by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if payment.Status != model.ManualPaymentSubmitted {
		log.Warn(ctx, "verdict already applied", logger.String("payment_status", string(payment.Status)))
		return nil
	}

	paymentStatus := model.ManualPaymentApproved
	invoiceStatus := model.InvoicePaid
	if !event.Approved {
		paymentStatus = model.ManualPaymentRejected
		invoiceStatus = model.InvoiceUnpaid
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.payments.UpdateManualPaymentStatus(ctx, event.PaymentID, paymentStatus); err != nil {
		log.Error(ctx, "repository update manual payment status", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.repo.UpdateStatus(ctx, event.InvoiceID, model.InvoiceVerifying, invoiceStatus); err != nil {
		log.Error(ctx, "repository update status", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if event.Approved {
		inv, err := svc.repo.InvoiceByID(ctx, event.InvoiceID)
		if err != nil {
			log.Error(ctx, "repository invoice by id", logger.ErrorF(err))
			return nil
		}
		svc.settleOrder(ctx, log, inv)
	}

	return nil
}
