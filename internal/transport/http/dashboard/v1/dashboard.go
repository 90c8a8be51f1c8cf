package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/transport/http/respond"
)

type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*model.DashboardSummary, error)
}

type handler struct {
	svc DashboardService
}

func NewDashboardHandler(service DashboardService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Get("/api/v1/dashboard", h.summary)
}

type recentOrderDTO struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type quickActionDTO struct {
	Key     string `json:"key"`
	TitleEN string `json:"title_en"`
	TitleBN string `json:"title_bn"`
	Href    string `json:"href"`
}

type summaryDTO struct {
	ActiveServices int64            `json:"active_services"`
	UnpaidInvoices int64            `json:"unpaid_invoices"`
	OpenTickets    int64            `json:"open_tickets"`
	Revenue        string           `json:"revenue"`
	RecentOrders   []recentOrderDTO `json:"recent_orders"`
	QuickActions   []quickActionDTO `json:"quick_actions"`
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid X-User-ID header")
		return
	}

	summary, err := h.svc.Summary(ctx, userID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	recent := make([]recentOrderDTO, 0, len(summary.RecentOrders))
	for _, ord := range summary.RecentOrders {
		recent = append(recent, recentOrderDTO{
			ID:        ord.ID,
			Number:    ord.Number,
			Status:    string(ord.Status),
			Total:     ord.Total.StringFixed(2),
			CreatedAt: ord.CreatedAt,
		})
	}

	actions := make([]quickActionDTO, 0, len(summary.QuickActions))
	for _, a := range summary.QuickActions {
		actions = append(actions, quickActionDTO{
			Key:     a.Key,
			TitleEN: a.TitleEN,
			TitleBN: a.TitleBN,
			Href:    a.Href,
		})
	}

	respond.JSON(ctx, w, http.StatusOK, summaryDTO{
		ActiveServices: summary.ActiveServices,
		UnpaidInvoices: summary.UnpaidInvoices,
		OpenTickets:    summary.OpenTickets,
		Revenue:        summary.Revenue.StringFixed(2),
		RecentOrders:   recent,
		QuickActions:   actions,
	})
}
