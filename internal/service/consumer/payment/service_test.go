package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/facreativefirm/billing-portal/internal/converter"
	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/service/mocks"
	"github.com/facreativefirm/billing-portal/platform/kafka"
)

func TestServiceHandle(t *testing.T) {
	t.Parallel()

	gofakeit.Seed(0)

	invID := uuid.New()
	paymentID := uuid.New()

	payload, err := json.Marshal(map[string]any{
		"event_id":    uuid.New(),
		"invoice_id":  invID,
		"payment_id":  paymentID,
		"approved":    true,
		"verified_at": time.Now().UTC(),
	})
	require.NoError(t, err)

	t.Run("verdict applied to the invoice", func(t *testing.T) {
		t.Parallel()

		invoiceSvc := mocks.NewMockInvoiceService(t)
		invoiceSvc.
			On("MarkVerified", mock.Anything, mock.MatchedBy(func(event model.PaymentVerified) bool {
				return event.InvoiceID == invID &&
					event.PaymentID == paymentID &&
					event.Approved
			})).
			Return(nil).
			Once()

		svc := NewPaymentConsumerService(nil, converter.NewKafkaConverter(), invoiceSvc)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		require.NoError(t, svc.handle(ctx, kafka.Message{Value: payload}))
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		t.Parallel()

		invoiceSvc := mocks.NewMockInvoiceService(t)

		svc := NewPaymentConsumerService(nil, converter.NewKafkaConverter(), invoiceSvc)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := svc.handle(ctx, kafka.Message{Value: []byte("{broken")})
		require.Error(t, err)

		invoiceSvc.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
	})

	t.Run("invoice service error propagates", func(t *testing.T) {
		t.Parallel()

		invoiceSvc := mocks.NewMockInvoiceService(t)
		invoiceSvc.
			On("MarkVerified", mock.Anything, mock.Anything).
			Return(gofakeit.Error()).
			Once()

		svc := NewPaymentConsumerService(nil, converter.NewKafkaConverter(), invoiceSvc)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := svc.handle(ctx, kafka.Message{Value: payload})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "consumer.payment.handle")
	})
}
