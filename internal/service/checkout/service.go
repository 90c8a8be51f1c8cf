package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type CheckoutRepository interface {
	Create(ctx context.Context, session *model.CheckoutSession) (uuid.UUID, error)
	SessionByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error)
	Update(ctx context.Context, upd *model.CheckoutSession) error
	MarkSubmitting(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.CheckoutStatus) error
}

type CartReader interface {
	Cart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
}

type InvoiceService interface {
	InvoiceByID(ctx context.Context, invID uuid.UUID) (*model.Invoice, error)
	Pay(ctx context.Context, invID uuid.UUID, method model.PaymentMethod) (*model.Invoice, error)
	SubmitManualPayment(ctx context.Context, invID uuid.UUID, method model.PaymentMethod, params model.SubmitParams) (*model.ManualPayment, error)
}

type OrderService interface {
	Create(ctx context.Context, params model.CreateOrderParams) (*model.Order, *model.Invoice, error)
}

type service struct {
	repo           CheckoutRepository
	carts          CartReader
	invoiceSvc     InvoiceService
	orderSvc       OrderService
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewCheckoutService(
	repository CheckoutRepository,
	carts CartReader,
	invoiceSvc InvoiceService,
	orderSvc OrderService,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repository,
		carts:          carts,
		invoiceSvc:     invoiceSvc,
		orderSvc:       orderSvc,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// Start opens a wizard session at the cart review step. With an invoice id
// the session pays that invoice instead of the cart, skips straight to
// payment selection and rejects paid invoices up front.
func (svc *service) Start(ctx context.Context, params model.StartCheckoutParams) (*model.CheckoutView, error) {
	const op string = "checkout.service.Start"
	log := logger.With(logger.String("user_id", params.UserID.String()))

	if params.UserID == uuid.Nil {
		log.Error(ctx, "wrong params")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	if params.InvoiceID != nil {
		log = logger.With(logger.String("invoice_id", params.InvoiceID.String()))

		inv, err := svc.invoiceSvc.InvoiceByID(ctx, *params.InvoiceID)
		if err != nil {
			log.Error(ctx, "invoice by id", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if inv.Status == model.InvoicePaid {
			log.Warn(ctx, "invoice already paid")
			return nil, fmt.Errorf("%s: %w", op, model.ErrInvoiceConflict)
		}
	}

	step := model.StepCartReview
	if params.InvoiceID != nil {
		step = model.StepPaymentSelection
	}

	session := &model.CheckoutSession{
		UserID:    params.UserID,
		Step:      step,
		Status:    model.CheckoutActive,
		InvoiceID: params.InvoiceID,
	}

	ctx2, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	sessionID, err := svc.repo.Create(ctx2, session)
	if err != nil {
		log.Error(ctx, "repository create session", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	session.ID = sessionID

	view, err := svc.buildView(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// Summary returns the current state of the wizard with the price breakdown
// for whatever the session pays for.
func (svc *service) Summary(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutView, error) {
	const op string = "checkout.service.Summary"
	log := logger.With(logger.String("session_id", sessionID.String()))

	session, err := svc.sessionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository session by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view, err := svc.buildView(ctx, session)
	if err != nil {
		log.Error(ctx, "build view", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// Advance moves the wizard one step forward. The confirmation step is not
// reachable this way, only a successful Submit enters it.
func (svc *service) Advance(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutSession, error) {
	const op string = "checkout.service.Advance"
	log := logger.With(logger.String("session_id", sessionID.String()))

	session, err := svc.sessionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository session by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.Status == model.CheckoutCompleted {
		log.Warn(ctx, "session completed")
		return nil, fmt.Errorf("%s: %w", op, model.ErrCheckoutCompleted)
	}

	next := session.Step + 1
	if !session.Step.CanAdvance(next) {
		log.Warn(ctx, "illegal step transition",
			logger.Int("from", int(session.Step)),
			logger.Int("to", int(next)),
		)
		return nil, fmt.Errorf("%s: %w", op, model.ErrStepTransition)
	}

	// Leaving cart review requires something to pay for.
	if session.Step == model.StepCartReview && !session.InvoiceBound() {
		cart, err := svc.carts.Cart(ctx, session.UserID)
		if err != nil {
			log.Error(ctx, "repository cart", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if cart.IsEmpty() {
			log.Warn(ctx, "empty cart")
			return nil, fmt.Errorf("%s: %w", op, model.ErrCartEmpty)
		}
	}

	session.Step = next

	ctx2, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.Update(ctx2, session); err != nil {
		log.Error(ctx, "repository update session", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

// GoBack jumps to an earlier step. Confirmation never goes back.
func (svc *service) GoBack(ctx context.Context, sessionID uuid.UUID, target model.CheckoutStep) (*model.CheckoutSession, error) {
	const op string = "checkout.service.GoBack"
	log := logger.With(
		logger.String("session_id", sessionID.String()),
		logger.Int("target_step", int(target)),
	)

	session, err := svc.sessionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository session by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.Status == model.CheckoutCompleted {
		log.Warn(ctx, "session completed")
		return nil, fmt.Errorf("%s: %w", op, model.ErrCheckoutCompleted)
	}

	if !session.Step.CanReturnTo(target) {
		log.Warn(ctx, "illegal step transition", logger.Int("from", int(session.Step)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrStepTransition)
	}

	session.Step = target

	ctx2, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.Update(ctx2, session); err != nil {
		log.Error(ctx, "repository update session", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (svc *service) SetBillingAddress(ctx context.Context, sessionID uuid.UUID, address string) error {
	const op string = "checkout.service.SetBillingAddress"
	log := logger.With(logger.String("session_id", sessionID.String()))

	if address == "" {
		log.Warn(ctx, "empty billing address")
		return fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	session, err := svc.sessionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository session by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if session.Status == model.CheckoutCompleted {
		log.Warn(ctx, "session completed")
		return fmt.Errorf("%s: %w", op, model.ErrCheckoutCompleted)
	}

	session.BillingAddress = &address

	ctx2, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.Update(ctx2, session); err != nil {
		log.Error(ctx, "repository update session", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) SelectPaymentMethod(ctx context.Context, sessionID uuid.UUID, method model.PaymentMethod) error {
	const op string = "checkout.service.SelectPaymentMethod"
	log := logger.With(
		logger.String("session_id", sessionID.String()),
		logger.String("payment_method", string(method)),
	)

	if !method.Known() {
		log.Warn(ctx, "unknown payment method")
		return fmt.Errorf("%s: %w", op, model.ErrUnknownMethod)
	}

	session, err := svc.sessionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository session by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if session.Status == model.CheckoutCompleted {
		log.Warn(ctx, "session completed")
		return fmt.Errorf("%s: %w", op, model.ErrCheckoutCompleted)
	}

	session.PaymentMethod = &method

	ctx2, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.Update(ctx2, session); err != nil {
		log.Error(ctx, "repository update session", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Submit dispatches the payment. Invoice-bound sessions with a manual
// method record a proof, instant methods charge the gateway, everything
// else places an order from the cart. The session is flipped to SUBMITTING
// for the duration, so a concurrent submit fails fast.
func (svc *service) Submit(ctx context.Context, sessionID uuid.UUID, params model.SubmitParams) (*model.SubmitResult, error) {
	const op string = "checkout.service.Submit"
	log := logger.With(logger.String("session_id", sessionID.String()))

	session, err := svc.sessionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository session by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if session.Status == model.CheckoutCompleted {
		log.Warn(ctx, "session completed")
		return nil, fmt.Errorf("%s: %w", op, model.ErrCheckoutCompleted)
	}
	if session.Step != model.StepPaymentSelection {
		log.Warn(ctx, "submit outside payment step", logger.Int("step", int(session.Step)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrStepTransition)
	}
	if session.PaymentMethod == nil {
		log.Warn(ctx, "no payment method selected")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	method := *session.PaymentMethod
	log = logger.With(logger.String("payment_method", string(method)))

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	if err := svc.repo.MarkSubmitting(wdbCtx, session.ID); err != nil {
		log.Warn(ctx, "mark submitting", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := svc.dispatch(ctx, session, method, params)
	if err != nil {
		svc.restore(ctx, log, session, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Only a freshly placed order enters the confirmation step.
	// Invoice-bound sessions complete on their current step.
	session.Status = model.CheckoutCompleted
	if result.Order != nil {
		session.Step = model.StepConfirmation
		session.OrderID = &result.Order.ID
	}

	cdbCtx, cdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cdbCancel()

	if err := svc.repo.Update(cdbCtx, session); err != nil {
		log.Error(ctx, "repository update session", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (svc *service) dispatch(
	ctx context.Context,
	session *model.CheckoutSession,
	method model.PaymentMethod,
	params model.SubmitParams,
) (*model.SubmitResult, error) {
	switch {
	case session.InvoiceBound() && method.Kind() == model.KindManual:
		_, err := svc.invoiceSvc.SubmitManualPayment(ctx, *session.InvoiceID, method, params)
		if err != nil {
			return nil, err
		}

		inv, err := svc.invoiceSvc.InvoiceByID(ctx, *session.InvoiceID)
		if err != nil {
			return nil, err
		}

		return &model.SubmitResult{Outcome: model.OutcomeManualProofRecorded, Invoice: inv}, nil

	case session.InvoiceBound():
		inv, err := svc.invoiceSvc.Pay(ctx, *session.InvoiceID, method)
		if err != nil {
			return nil, err
		}

		return &model.SubmitResult{Outcome: model.OutcomeInvoicePaid, Invoice: inv}, nil

	default:
		trxID := strings.TrimSpace(params.TransactionID)
		sender := strings.TrimSpace(params.SenderNumber)
		// A proof needs both fields. A half-filled one is rejected
		// before the order is placed and the cart is gone.
		if method.Kind() == model.KindManual && (trxID != "") != (sender != "") {
			return nil, model.ErrProofRequired
		}

		ord, inv, err := svc.orderSvc.Create(ctx, model.CreateOrderParams{
			UserID:         session.UserID,
			PaymentMethod:  method,
			BillingAddress: session.BillingAddress,
		})
		if err != nil {
			return nil, err
		}

		// A manual method with proof attached files it against the
		// freshly issued invoice right away.
		if method.Kind() == model.KindManual && trxID != "" {
			if _, err := svc.invoiceSvc.SubmitManualPayment(ctx, inv.ID, method, params); err != nil {
				logger.Error(ctx, "submit manual payment for new order", logger.ErrorF(err))
			}
		}

		return &model.SubmitResult{Outcome: model.OutcomeOrderPlaced, Order: ord, Invoice: inv}, nil
	}
}

// restore reactivates a session after a failed submission. A cart problem
// sends the wizard back to the cart review step.
func (svc *service) restore(ctx context.Context, log *logger.Logger, session *model.CheckoutSession, cause error) {
	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if errors.Is(cause, model.ErrCartEmpty) || errors.Is(cause, model.ErrDomainNameRequired) {
		session.Step = model.StepCartReview
		session.Status = model.CheckoutActive
		if err := svc.repo.Update(ctx, session); err != nil {
			log.Error(ctx, "repository update session", logger.ErrorF(err))
		}
		return
	}

	if err := svc.repo.SetStatus(ctx, session.ID, model.CheckoutActive); err != nil {
		log.Error(ctx, "repository set status", logger.ErrorF(err))
	}
}

func (svc *service) sessionByID(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	return svc.repo.SessionByID(ctx, sessionID)
}

func (svc *service) buildView(ctx context.Context, session *model.CheckoutSession) (*model.CheckoutView, error) {
	view := &model.CheckoutView{Session: *session}

	if session.InvoiceBound() {
		inv, err := svc.invoiceSvc.InvoiceByID(ctx, *session.InvoiceID)
		if err != nil {
			return nil, err
		}

		view.Invoice = inv
		view.Summary = model.SummarizeInvoice(inv)

		if session.PaymentMethod != nil && session.PaymentMethod.Kind() == model.KindManual {
			instructions, err := session.PaymentMethod.Instructions(inv.Number)
			if err != nil {
				return nil, err
			}
			view.Instructions = &instructions
		}

		return view, nil
	}

	cart, err := svc.carts.Cart(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	view.Cart = cart
	view.Empty = cart.IsEmpty()
	view.Summary = model.Summarize(cart.Items, cart.PromoCode)

	return view, nil
}
