package consumer

import (
	"context"
	"fmt"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/kafka"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type KafkaConverter interface {
	PaymentVerifiedFromPayload(data []byte) (model.PaymentVerified, error)
}

type InvoiceService interface {
	MarkVerified(ctx context.Context, event model.PaymentVerified) error
}

// service consumes payment verification verdicts from the back office and
// applies them to invoices.
type service struct {
	consumer   kafka.Consumer
	converter  KafkaConverter
	invoiceSvc InvoiceService
}

func NewPaymentConsumerService(
	consumer kafka.Consumer,
	converter KafkaConverter,
	invoiceSvc InvoiceService,
) *service {
	return &service{
		consumer:   consumer,
		converter:  converter,
		invoiceSvc: invoiceSvc,
	}
}

func (svc *service) RunConsumer(ctx context.Context) error {
	const op string = "consumer.payment.RunConsumer"

	logger.Info(ctx, "Starting payment verified consumer")

	if err := svc.consumer.Consume(ctx, svc.handle); err != nil {
		logger.Error(ctx, "consume payment verified", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) handle(ctx context.Context, msg kafka.Message) error {
	const op string = "consumer.payment.handle"

	event, err := svc.converter.PaymentVerifiedFromPayload(msg.Value)
	if err != nil {
		logger.Error(ctx, "convert payment verified", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log := logger.With(
		logger.String("invoice_id", event.InvoiceID.String()),
		logger.String("payment_id", event.PaymentID.String()),
	)

	if err := svc.invoiceSvc.MarkVerified(ctx, event); err != nil {
		log.Error(ctx, "mark verified", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "Payment verification applied")

	return nil
}
