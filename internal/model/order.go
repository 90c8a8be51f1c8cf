package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderPaid           OrderStatus = "PAID"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

func (s OrderStatus) Known() bool {
	switch s {
	case OrderPendingPayment, OrderPaid, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// OrderItem is a snapshot of a cart item at the moment the order was
// placed. Later cart or catalog changes never alter it.
type OrderItem struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Type         ItemType        `json:"type"`
	BillingCycle BillingCycle    `json:"billing_cycle"`
	Quantity     int32           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DomainName   *string         `json:"domain_name,omitempty"`
}

type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Number        string
	Status        OrderStatus
	Items         []OrderItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type CreateOrderParams struct {
	UserID         uuid.UUID
	PaymentMethod  PaymentMethod
	BillingAddress *string
}
