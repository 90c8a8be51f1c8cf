package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPlaced is published after an order and its invoice are persisted.
type OrderPlaced struct {
	EventID     uuid.UUID
	OrderID     uuid.UUID
	OrderNumber string
	UserID      uuid.UUID
	InvoiceID   uuid.UUID
	Total       decimal.Decimal
	Currency    string
	PlacedAt    time.Time
}

// PaymentVerified arrives when an operator approves a manual payment
// proof in the back office.
type PaymentVerified struct {
	EventID    uuid.UUID
	InvoiceID  uuid.UUID
	PaymentID  uuid.UUID
	Approved   bool
	VerifiedAt time.Time
}
