package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomainName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare name gets default tld", raw: "mysite", want: "mysite.com"},
		{name: "name with tld kept as is", raw: "mysite.xyz", want: "mysite.xyz"},
		{name: "surrounding whitespace trimmed", raw: "  mysite  ", want: "mysite.com"},
		{name: "too short after trimming", raw: " ab ", wantErr: true},
		{name: "empty input", raw: "", wantErr: true},
		{name: "exactly four characters accepted", raw: "abcd", want: "abcd.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeDomainName(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDomainName)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCartMissingDomainItem(t *testing.T) {
	t.Parallel()

	name := "mysite.com"

	cart := &Cart{
		Items: []CartItem{
			{Name: "Web Hosting", Type: ItemTypeService},
			{Name: "Domain", Type: ItemTypeDomain, DomainName: &name},
		},
	}
	assert.Nil(t, cart.MissingDomainItem())

	cart.Items = append(cart.Items, CartItem{Name: "Another Domain", Type: ItemTypeDomain})
	missing := cart.MissingDomainItem()
	require.NotNil(t, missing)
	assert.Equal(t, "Another Domain", missing.Name)
}

func TestCheckoutStepTransitions(t *testing.T) {
	t.Parallel()

	t.Run("forward one step at a time", func(t *testing.T) {
		t.Parallel()

		assert.True(t, StepCartReview.CanAdvance(StepBillingDetails))
		assert.True(t, StepBillingDetails.CanAdvance(StepPaymentSelection))

		assert.False(t, StepCartReview.CanAdvance(StepPaymentSelection))
		assert.False(t, StepPaymentSelection.CanAdvance(StepConfirmation))
		assert.False(t, StepBillingDetails.CanAdvance(StepCartReview))
	})

	t.Run("back to any earlier step", func(t *testing.T) {
		t.Parallel()

		assert.True(t, StepPaymentSelection.CanReturnTo(StepCartReview))
		assert.True(t, StepPaymentSelection.CanReturnTo(StepBillingDetails))
		assert.True(t, StepBillingDetails.CanReturnTo(StepCartReview))

		assert.False(t, StepBillingDetails.CanReturnTo(StepPaymentSelection))
		assert.False(t, StepCartReview.CanReturnTo(StepCartReview))
		assert.False(t, StepConfirmation.CanReturnTo(StepCartReview))
		assert.False(t, StepPaymentSelection.CanReturnTo(0))
	})
}

func TestPaymentMethodKindAndGateway(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindInstant, MethodCard.Kind())
	assert.Equal(t, KindInstant, MethodMobile.Kind())
	assert.Equal(t, KindManual, MethodBank.Kind())
	assert.Equal(t, KindManual, MethodBkashManual.Kind())
	assert.Equal(t, KindManual, MethodNagadManual.Kind())

	assert.Equal(t, GatewayBkash, MethodMobile.Gateway())
	assert.Equal(t, GatewayStripe, MethodCard.Gateway())

	assert.False(t, PaymentMethod("paypal").Known())
}

func TestPaymentInstructions(t *testing.T) {
	t.Parallel()

	for _, method := range []PaymentMethod{MethodBank, MethodBkashManual, MethodNagadManual} {
		t.Run(string(method), func(t *testing.T) {
			t.Parallel()

			got, err := method.Instructions("INV-001042")
			require.NoError(t, err)

			assert.True(t, strings.Contains(got.English, "INV-001042"))
			assert.True(t, strings.Contains(got.Bangla, "INV-001042"))
			assert.NotEqual(t, got.English, got.Bangla)
		})
	}

	_, err := MethodCard.Instructions("INV-001042")
	assert.ErrorIs(t, err, ErrManualMethodOnly)
}
