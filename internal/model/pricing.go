package model

import "github.com/shopspring/decimal"

// PromoCode is the only promotion currently honored at checkout.
// Matching is exact and case sensitive.
const PromoCode = "SAVE20"

var (
	promoDiscountRate = decimal.NewFromInt(20).Div(decimal.NewFromInt(100))
	taxRate           = decimal.NewFromInt(5).Div(decimal.NewFromInt(100))
)

func PromoCodeValid(code string) bool { return code == PromoCode }

// Summarize prices a cart: line totals summed, promo discount of 20%
// when applied, then 5% tax on the discounted subtotal. Every figure is
// rounded to two decimal places.
func Summarize(items []CartItem, promo *string) PriceSummary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt32(it.Quantity)))
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if promo != nil && PromoCodeValid(*promo) {
		discount = subtotal.Mul(promoDiscountRate).Round(2)
	}

	tax := subtotal.Sub(discount).Mul(taxRate).Round(2)

	return PriceSummary{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax).Round(2),
	}
}

// SummarizeInvoice presents an existing invoice's figures verbatim.
// Invoice-bound checkout never reprices and never applies promos.
func SummarizeInvoice(inv *Invoice) PriceSummary {
	return PriceSummary{
		Subtotal: inv.Subtotal,
		Discount: decimal.Zero,
		Tax:      inv.TaxAmount,
		Total:    inv.Total,
	}
}
