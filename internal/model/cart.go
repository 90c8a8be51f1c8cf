package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	ItemType     string
	BillingCycle string
)

const (
	ItemTypeService ItemType = "SERVICE"
	ItemTypeDomain  ItemType = "DOMAIN"
)

const (
	CycleMonthly  BillingCycle = "MONTHLY"
	CycleAnnually BillingCycle = "ANNUALLY"
)

func (c BillingCycle) Known() bool {
	return c == CycleMonthly || c == CycleAnnually
}

// Domain names shorter than this (after trimming) are rejected.
const minDomainNameLength = 4

// defaultTLD is appended to domain input that carries no dot at all.
const defaultTLD = ".com"

type CartItem struct {
	ID     uuid.UUID
	UserID uuid.UUID
	// Catalog reference of the purchased product. Domain-search results
	// resolve to the domain product id at the time the item is added.
	ProductID int64
	Name      string
	Type      ItemType
	// Active billing cycle; Price always reflects this cycle.
	BillingCycle BillingCycle
	Price        decimal.Decimal
	// Price options, present when the product offers both cycles.
	MonthlyPrice *decimal.Decimal
	AnnualPrice  *decimal.Decimal
	Quantity     int32
	// Chosen domain name; required before checkout for DOMAIN items.
	DomainName *string
	CreatedAt  time.Time
}

type Cart struct {
	UserID    uuid.UUID
	Items     []CartItem
	PromoCode *string
}

// MissingDomainItem returns the first DOMAIN item without a chosen name,
// or nil when the order-submission invariant holds.
func (c *Cart) MissingDomainItem() *CartItem {
	for i := range c.Items {
		it := &c.Items[i]
		if it.Type == ItemTypeDomain && (it.DomainName == nil || *it.DomainName == "") {
			return it
		}
	}
	return nil
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// NormalizeDomainName applies the domain input acceptance rule: the trimmed
// text must be longer than three characters, and input without a dot gets
// the default TLD appended. Input with a dot is stored unchanged.
func NormalizeDomainName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len(name) < minDomainNameLength {
		return "", fmt.Errorf("%w: %q is too short", ErrInvalidDomainName, name)
	}
	if !strings.Contains(name, ".") {
		name += defaultTLD
	}
	return name, nil
}

type AddCartItemParams struct {
	UserID       uuid.UUID
	ProductID    int64
	Name         string
	Type         ItemType
	BillingCycle BillingCycle
	Price        decimal.Decimal
	MonthlyPrice *decimal.Decimal
	AnnualPrice  *decimal.Decimal
	Quantity     int32
	DomainName   *string
}
