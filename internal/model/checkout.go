package model

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutStep int

const (
	StepCartReview CheckoutStep = iota + 1
	StepBillingDetails
	StepPaymentSelection
	StepConfirmation
)

func (s CheckoutStep) Known() bool {
	return s >= StepCartReview && s <= StepConfirmation
}

// CanAdvance reports whether the wizard may move forward from s to next.
// Forward movement is one step at a time; the confirmation step is only
// reachable through a successful submission.
func (s CheckoutStep) CanAdvance(next CheckoutStep) bool {
	return next == s+1 && next <= StepPaymentSelection
}

// CanReturnTo reports whether the wizard may jump back from s to target.
// Any earlier step is allowed, except once the order is confirmed.
func (s CheckoutStep) CanReturnTo(target CheckoutStep) bool {
	if s == StepConfirmation {
		return false
	}
	return target.Known() && target < s
}

type CheckoutStatus string

const (
	CheckoutActive     CheckoutStatus = "ACTIVE"
	CheckoutSubmitting CheckoutStatus = "SUBMITTING"
	CheckoutCompleted  CheckoutStatus = "COMPLETED"
)

type CheckoutSession struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Step   CheckoutStep
	Status CheckoutStatus
	// Set when checkout was started for an existing invoice; the session
	// then pays that invoice instead of placing a new order.
	InvoiceID *uuid.UUID
	// Set on successful submission of a cart checkout.
	OrderID        *uuid.UUID
	PaymentMethod  *PaymentMethod
	BillingAddress *string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func (s *CheckoutSession) InvoiceBound() bool { return s.InvoiceID != nil }

type StartCheckoutParams struct {
	UserID    uuid.UUID
	InvoiceID *uuid.UUID
}

type SubmitParams struct {
	TransactionID string
	SenderNumber  string
}

type SubmitOutcome string

const (
	OutcomeOrderPlaced         SubmitOutcome = "ORDER_PLACED"
	OutcomeInvoicePaid         SubmitOutcome = "INVOICE_PAID"
	OutcomeManualProofRecorded SubmitOutcome = "MANUAL_PROOF_RECORDED"
)

type SubmitResult struct {
	Outcome SubmitOutcome
	Order   *Order
	Invoice *Invoice
}

// CheckoutView is the summary the wizard renders: the session, what is
// being paid for, and the price breakdown.
type CheckoutView struct {
	Session CheckoutSession
	Cart    *Cart
	Invoice *Invoice
	Summary PriceSummary
	// Rendered manual payment instructions for the selected method, when
	// the session is invoice bound and the method is manual.
	Instructions *PaymentInstructions
	Empty        bool
}
