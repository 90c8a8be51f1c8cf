package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestSummarize(t *testing.T) {
	t.Parallel()

	items := []CartItem{
		{Name: "Web Hosting - Basic", Type: ItemTypeService, Price: dec("25.00"), Quantity: 1},
		{Name: "example.com", Type: ItemTypeDomain, Price: dec("20.00"), Quantity: 1},
	}

	tests := []struct {
		name  string
		items []CartItem
		promo *string
		want  PriceSummary
	}{
		{
			name:  "no promo: 5% tax on subtotal",
			items: items,
			promo: nil,
			want: PriceSummary{
				Subtotal: dec("45.00"),
				Discount: dec("0"),
				Tax:      dec("2.25"),
				Total:    dec("47.25"),
			},
		},
		{
			name:  "SAVE20: 20% off, tax on discounted subtotal",
			items: items,
			promo: strPtr("SAVE20"),
			want: PriceSummary{
				Subtotal: dec("45.00"),
				Discount: dec("9.00"),
				Tax:      dec("1.80"),
				Total:    dec("37.80"),
			},
		},
		{
			name:  "unknown promo code applies no discount",
			items: items,
			promo: strPtr("SAVE50"),
			want: PriceSummary{
				Subtotal: dec("45.00"),
				Discount: dec("0"),
				Tax:      dec("2.25"),
				Total:    dec("47.25"),
			},
		},
		{
			name:  "lowercase promo code does not match",
			items: items,
			promo: strPtr("save20"),
			want: PriceSummary{
				Subtotal: dec("45.00"),
				Discount: dec("0"),
				Tax:      dec("2.25"),
				Total:    dec("47.25"),
			},
		},
		{
			name: "quantity multiplies the line total",
			items: []CartItem{
				{Name: "Mailbox", Type: ItemTypeService, Price: dec("3.50"), Quantity: 4},
			},
			promo: nil,
			want: PriceSummary{
				Subtotal: dec("14.00"),
				Discount: dec("0"),
				Tax:      dec("0.70"),
				Total:    dec("14.70"),
			},
		},
		{
			name:  "empty cart prices to zero",
			items: nil,
			promo: strPtr("SAVE20"),
			want: PriceSummary{
				Subtotal: dec("0"),
				Discount: dec("0"),
				Tax:      dec("0"),
				Total:    dec("0"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Summarize(tt.items, tt.promo)

			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal: want %s got %s", tt.want.Subtotal, got.Subtotal)
			assert.True(t, tt.want.Discount.Equal(got.Discount), "discount: want %s got %s", tt.want.Discount, got.Discount)
			assert.True(t, tt.want.Tax.Equal(got.Tax), "tax: want %s got %s", tt.want.Tax, got.Tax)
			assert.True(t, tt.want.Total.Equal(got.Total), "total: want %s got %s", tt.want.Total, got.Total)
		})
	}
}

func TestSummarizeInvoice(t *testing.T) {
	t.Parallel()

	// Invoice figures are presented verbatim, never recomputed.
	inv := &Invoice{
		Subtotal:  dec("99.99"),
		TaxAmount: dec("1.23"),
		Total:     dec("200.00"),
	}

	got := SummarizeInvoice(inv)

	assert.True(t, got.Subtotal.Equal(inv.Subtotal))
	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Tax.Equal(inv.TaxAmount))
	assert.True(t, got.Total.Equal(inv.Total))
}
