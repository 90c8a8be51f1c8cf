package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceUnpaid    InvoiceStatus = "UNPAID"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceVerifying InvoiceStatus = "VERIFYING"
)

func (s InvoiceStatus) Known() bool {
	return s == InvoiceUnpaid || s == InvoicePaid || s == InvoiceVerifying
}

type Invoice struct {
	ID     uuid.UUID
	UserID uuid.UUID
	// Human-facing reference, cited in manual payment instructions.
	Number  string
	OrderID *uuid.UUID
	Status  InvoiceStatus
	// Authoritative figures. Checkout bound to an invoice displays these
	// verbatim and never reprices.
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Currency  string
	DueAt     time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PriceSummary is the wizard-facing breakdown of what will be charged.
type PriceSummary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}
