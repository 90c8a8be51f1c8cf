package producer

import (
	"context"
	"fmt"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/kafka"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type KafkaConverter interface {
	OrderPlacedToPayload(event model.OrderPlaced) ([]byte, error)
}

type service struct {
	producer  kafka.Producer
	converter KafkaConverter
}

func NewOrderProducerService(producer kafka.Producer, converter KafkaConverter) *service {
	return &service{
		producer:  producer,
		converter: converter,
	}
}

func (svc *service) SendOrderPlaced(ctx context.Context, event model.OrderPlaced) error {
	const op string = "producer.order.SendOrderPlaced"
	log := logger.With(
		logger.String("order_id", event.OrderID.String()),
		logger.String("event_id", event.EventID.String()),
	)

	payload, err := svc.converter.OrderPlacedToPayload(event)
	if err != nil {
		log.Error(ctx, "convert order placed", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.producer.Send(ctx, []byte(event.OrderID.String()), payload); err != nil {
		log.Error(ctx, "send order placed", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
