package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

const recentOrdersLimit = 5

type OrderRepository interface {
	Recent(ctx context.Context, userID uuid.UUID, limit uint64) ([]model.Order, error)
	CountByStatus(ctx context.Context, userID uuid.UUID, statuses ...model.OrderStatus) (int64, error)
}

type InvoiceRepository interface {
	CountByStatus(ctx context.Context, userID uuid.UUID, status model.InvoiceStatus) (int64, error)
	SumPaidTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type TicketRepository interface {
	CountOpen(ctx context.Context, userID uuid.UUID) (int64, error)
}

// quickActions are the static dashboard shortcuts, labeled in English
// and Bangla.
var quickActions = []model.QuickAction{
	{Key: "add_client", TitleEN: "Add Client", TitleBN: "ক্লায়েন্ট যোগ করুন", Href: "/clients/new"},
	{Key: "create_invoice", TitleEN: "Create Invoice", TitleBN: "ইনভয়েস তৈরি করুন", Href: "/invoices/new"},
	{Key: "new_order", TitleEN: "New Order", TitleBN: "নতুন অর্ডার", Href: "/checkout"},
	{Key: "open_ticket", TitleEN: "Open Ticket", TitleBN: "টিকেট খুলুন", Href: "/tickets/new"},
}

type service struct {
	orders        OrderRepository
	invoices      InvoiceRepository
	tickets       TicketRepository
	readDBTimeout time.Duration
}

func NewDashboardService(
	orders OrderRepository,
	invoices InvoiceRepository,
	tickets TicketRepository,
	readDBTimeout time.Duration,
) *service {
	return &service{
		orders:        orders,
		invoices:      invoices,
		tickets:       tickets,
		readDBTimeout: readDBTimeout,
	}
}

// Summary aggregates the landing page stats: service and invoice counts,
// open tickets, paid revenue and the latest orders.
func (svc *service) Summary(ctx context.Context, userID uuid.UUID) (*model.DashboardSummary, error) {
	const op string = "dashboard.service.Summary"
	log := logger.With(logger.String("user_id", userID.String()))

	if userID == uuid.Nil {
		log.Error(ctx, "wrong params")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	active, err := svc.orders.CountByStatus(ctx, userID, model.OrderPaid, model.OrderCompleted)
	if err != nil {
		log.Error(ctx, "repository count orders", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unpaid, err := svc.invoices.CountByStatus(ctx, userID, model.InvoiceUnpaid)
	if err != nil {
		log.Error(ctx, "repository count invoices", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	openTickets, err := svc.tickets.CountOpen(ctx, userID)
	if err != nil {
		log.Error(ctx, "repository count tickets", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	revenue, err := svc.invoices.SumPaidTotal(ctx, userID)
	if err != nil {
		log.Error(ctx, "repository sum paid totals", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recent, err := svc.orders.Recent(ctx, userID, recentOrdersLimit)
	if err != nil {
		log.Error(ctx, "repository recent orders", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.DashboardSummary{
		ActiveServices: active,
		UnpaidInvoices: unpaid,
		OpenTickets:    openTickets,
		Revenue:        revenue,
		RecentOrders:   recent,
		QuickActions:   quickActions,
	}, nil
}
