package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
)

// Wire shapes of the billing events. Decimal amounts travel as strings.
type orderPlacedPayload struct {
	EventID     uuid.UUID `json:"event_id"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Total       string    `json:"total"`
	Currency    string    `json:"currency"`
	PlacedAt    time.Time `json:"placed_at"`
}

type paymentVerifiedPayload struct {
	EventID    uuid.UUID `json:"event_id"`
	InvoiceID  uuid.UUID `json:"invoice_id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	Approved   bool      `json:"approved"`
	VerifiedAt time.Time `json:"verified_at"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) OrderPlacedToPayload(event model.OrderPlaced) ([]byte, error) {
	const op string = "converter.kafka.OrderPlacedToPayload"

	data, err := json.Marshal(orderPlacedPayload{
		EventID:     event.EventID,
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		UserID:      event.UserID,
		InvoiceID:   event.InvoiceID,
		Total:       event.Total.String(),
		Currency:    event.Currency,
		PlacedAt:    event.PlacedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

func (c *kafkaConverter) PaymentVerifiedFromPayload(data []byte) (model.PaymentVerified, error) {
	const op string = "converter.kafka.PaymentVerifiedFromPayload"

	var payload paymentVerifiedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.PaymentVerified{}, fmt.Errorf("%s: %w", op, err)
	}

	return model.PaymentVerified{
		EventID:    payload.EventID,
		InvoiceID:  payload.InvoiceID,
		PaymentID:  payload.PaymentID,
		Approved:   payload.Approved,
		VerifiedAt: payload.VerifiedAt,
	}, nil
}
