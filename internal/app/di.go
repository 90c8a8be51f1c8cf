package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	gwclient "github.com/facreativefirm/billing-portal/internal/client/http/gateway"
	"github.com/facreativefirm/billing-portal/internal/config"
	"github.com/facreativefirm/billing-portal/internal/converter"
	"github.com/facreativefirm/billing-portal/internal/migrator"
	"github.com/facreativefirm/billing-portal/internal/model"
	cartrepo "github.com/facreativefirm/billing-portal/internal/repository/cart"
	checkoutrepo "github.com/facreativefirm/billing-portal/internal/repository/checkout"
	invoicerepo "github.com/facreativefirm/billing-portal/internal/repository/invoice"
	orderrepo "github.com/facreativefirm/billing-portal/internal/repository/order"
	paymentrepo "github.com/facreativefirm/billing-portal/internal/repository/payment"
	ticketrepo "github.com/facreativefirm/billing-portal/internal/repository/ticket"
	cartsvc "github.com/facreativefirm/billing-portal/internal/service/cart"
	checkoutsvc "github.com/facreativefirm/billing-portal/internal/service/checkout"
	pmtconsumer "github.com/facreativefirm/billing-portal/internal/service/consumer/payment"
	dashboardsvc "github.com/facreativefirm/billing-portal/internal/service/dashboard"
	invoicesvc "github.com/facreativefirm/billing-portal/internal/service/invoice"
	ordersvc "github.com/facreativefirm/billing-portal/internal/service/order"
	ordproducer "github.com/facreativefirm/billing-portal/internal/service/producer/order"
	carthttp "github.com/facreativefirm/billing-portal/internal/transport/http/cart/v1"
	checkouthttp "github.com/facreativefirm/billing-portal/internal/transport/http/checkout/v1"
	dashboardhttp "github.com/facreativefirm/billing-portal/internal/transport/http/dashboard/v1"
	invoicehttp "github.com/facreativefirm/billing-portal/internal/transport/http/invoice/v1"
	orderhttp "github.com/facreativefirm/billing-portal/internal/transport/http/order/v1"
	"github.com/facreativefirm/billing-portal/platform/closer"
	"github.com/facreativefirm/billing-portal/platform/kafka"
	kconsumer "github.com/facreativefirm/billing-portal/platform/kafka/consumer"
	"github.com/facreativefirm/billing-portal/platform/kafka/middleware"
	kproducer "github.com/facreativefirm/billing-portal/platform/kafka/producer"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type Converter interface {
	OrderPlacedToPayload(event model.OrderPlaced) ([]byte, error)
	PaymentVerifiedFromPayload(data []byte) (model.PaymentVerified, error)
}

type PaymentConsumer interface {
	RunConsumer(ctx context.Context) error
}

type InvoiceService interface {
	checkoutsvc.InvoiceService
	pmtconsumer.InvoiceService
	invoicehttp.InvoiceService
}

type OrderService interface {
	checkoutsvc.OrderService
	orderhttp.OrderService
	invoicesvc.OrderService
}

type CartRepository interface {
	cartsvc.CartRepository
	ordersvc.CartRepository
}

type InvoiceRepository interface {
	invoicesvc.InvoiceRepository
	ordersvc.InvoiceRepository
	dashboardsvc.InvoiceRepository
}

type OrderRepository interface {
	ordersvc.OrderRepository
	dashboardsvc.OrderRepository
}

type Handler interface {
	Register(r chi.Router)
}

type di struct {
	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	cartRepository     CartRepository
	checkoutRepository checkoutsvc.CheckoutRepository
	invoiceRepository  InvoiceRepository
	orderRepository    OrderRepository
	paymentRepository  invoicesvc.PaymentRepository
	ticketRepository   dashboardsvc.TicketRepository

	gatewayClient invoicesvc.GatewayClient

	consumerGroup           sarama.ConsumerGroup
	paymentVerifiedConsumer kafka.Consumer
	paymentConsumer         PaymentConsumer

	syncProducer        sarama.SyncProducer
	orderPlacedProducer kafka.Producer
	orderProducer       ordersvc.OrderPlacedSender

	conv Converter

	cartService      carthttp.CartService
	invoiceService   InvoiceService
	orderService     OrderService
	checkoutService  checkouthttp.CheckoutService
	dashboardService dashboardhttp.DashboardService

	cartHandler      Handler
	checkoutHandler  Handler
	invoiceHandler   Handler
	orderHandler     Handler
	dashboardHandler Handler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) CartRepository(ctx context.Context) CartRepository {
	if d.cartRepository == nil {
		d.cartRepository = cartrepo.NewCartRepository(d.DBPool(ctx))
	}

	return d.cartRepository
}

func (d *di) CheckoutRepository(ctx context.Context) checkoutsvc.CheckoutRepository {
	if d.checkoutRepository == nil {
		d.checkoutRepository = checkoutrepo.NewCheckoutRepository(d.DBPool(ctx))
	}

	return d.checkoutRepository
}

func (d *di) InvoiceRepository(ctx context.Context) InvoiceRepository {
	if d.invoiceRepository == nil {
		d.invoiceRepository = invoicerepo.NewInvoiceRepository(d.DBPool(ctx))
	}

	return d.invoiceRepository
}

func (d *di) OrderRepository(ctx context.Context) OrderRepository {
	if d.orderRepository == nil {
		d.orderRepository = orderrepo.NewOrderRepository(d.DBPool(ctx))
	}

	return d.orderRepository
}

func (d *di) PaymentRepository(ctx context.Context) invoicesvc.PaymentRepository {
	if d.paymentRepository == nil {
		d.paymentRepository = paymentrepo.NewPaymentRepository(d.DBPool(ctx))
	}

	return d.paymentRepository
}

func (d *di) TicketRepository(ctx context.Context) dashboardsvc.TicketRepository {
	if d.ticketRepository == nil {
		d.ticketRepository = ticketrepo.NewTicketRepository(d.DBPool(ctx))
	}

	return d.ticketRepository
}

func (d *di) GatewayClient(_ context.Context) invoicesvc.GatewayClient {
	if d.gatewayClient == nil {
		d.gatewayClient = gwclient.NewClient(config.C().Gateway)
	}

	return d.gatewayClient
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.PaymentVerifiedConsumerGroupID(),
			cfg.Kafka.PaymentVerifiedConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return d.consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) PaymentVerifiedConsumer(ctx context.Context) kafka.Consumer {
	if d.paymentVerifiedConsumer == nil {
		d.paymentVerifiedConsumer = kconsumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.PaymentVerifiedTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.paymentVerifiedConsumer
}

func (d *di) PaymentConsumer(ctx context.Context) PaymentConsumer {
	if d.paymentConsumer == nil {
		d.paymentConsumer = pmtconsumer.NewPaymentConsumerService(
			d.PaymentVerifiedConsumer(ctx),
			d.KafkaConverter(ctx),
			d.InvoiceService(ctx),
		)
	}

	return d.paymentConsumer
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.OrderPlacedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) OrderPlacedProducer(ctx context.Context) kafka.Producer {
	if d.orderPlacedProducer == nil {
		d.orderPlacedProducer = kproducer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.OrderPlacedTopic(),
			logger.L(),
		)
	}

	return d.orderPlacedProducer
}

func (d *di) OrderProducer(ctx context.Context) ordersvc.OrderPlacedSender {
	if d.orderProducer == nil {
		d.orderProducer = ordproducer.NewOrderProducerService(
			d.OrderPlacedProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.orderProducer
}

func (d *di) CartService(ctx context.Context) carthttp.CartService {
	if d.cartService == nil {
		d.cartService = cartsvc.NewCartService(
			d.CartRepository(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.cartService
}

func (d *di) InvoiceService(ctx context.Context) InvoiceService {
	if d.invoiceService == nil {
		d.invoiceService = invoicesvc.NewInvoiceService(
			d.InvoiceRepository(ctx),
			d.PaymentRepository(ctx),
			d.GatewayClient(ctx),
			d.OrderService(ctx),
			config.C().Gateway.Currency(),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.invoiceService
}

func (d *di) OrderService(ctx context.Context) OrderService {
	if d.orderService == nil {
		d.orderService = ordersvc.NewOrderService(
			d.CartRepository(ctx),
			d.OrderRepository(ctx),
			d.InvoiceRepository(ctx),
			d.OrderProducer(ctx),
			config.C().Gateway.Currency(),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.orderService
}

func (d *di) CheckoutService(ctx context.Context) checkouthttp.CheckoutService {
	if d.checkoutService == nil {
		d.checkoutService = checkoutsvc.NewCheckoutService(
			d.CheckoutRepository(ctx),
			d.CartRepository(ctx),
			d.InvoiceService(ctx),
			d.OrderService(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.checkoutService
}

func (d *di) DashboardService(ctx context.Context) dashboardhttp.DashboardService {
	if d.dashboardService == nil {
		d.dashboardService = dashboardsvc.NewDashboardService(
			d.OrderRepository(ctx),
			d.InvoiceRepository(ctx),
			d.TicketRepository(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.dashboardService
}

func (d *di) CartHandler(ctx context.Context) Handler {
	if d.cartHandler == nil {
		d.cartHandler = carthttp.NewCartHandler(d.CartService(ctx))
	}

	return d.cartHandler
}

func (d *di) CheckoutHandler(ctx context.Context) Handler {
	if d.checkoutHandler == nil {
		d.checkoutHandler = checkouthttp.NewCheckoutHandler(d.CheckoutService(ctx))
	}

	return d.checkoutHandler
}

func (d *di) InvoiceHandler(ctx context.Context) Handler {
	if d.invoiceHandler == nil {
		d.invoiceHandler = invoicehttp.NewInvoiceHandler(d.InvoiceService(ctx))
	}

	return d.invoiceHandler
}

func (d *di) OrderHandler(ctx context.Context) Handler {
	if d.orderHandler == nil {
		d.orderHandler = orderhttp.NewOrderHandler(d.OrderService(ctx))
	}

	return d.orderHandler
}

func (d *di) DashboardHandler(ctx context.Context) Handler {
	if d.dashboardHandler == nil {
		d.dashboardHandler = dashboardhttp.NewDashboardHandler(d.DashboardService(ctx))
	}

	return d.dashboardHandler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
