package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/transport/http/respond"
)

type OrderService interface {
	Create(ctx context.Context, params model.CreateOrderParams) (*model.Order, *model.Invoice, error)
	OrderByID(ctx context.Context, ordID uuid.UUID) (*model.Order, error)
}

type handler struct {
	svc OrderService
}

func NewOrderHandler(service OrderService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Post("/api/v1/orders", h.create)
	r.Get("/api/v1/orders/{order_id}", h.order)
}

type orderItemDTO struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	BillingCycle string  `json:"billing_cycle"`
	Quantity     int32   `json:"quantity"`
	UnitPrice    string  `json:"unit_price"`
	DomainName   *string `json:"domain_name,omitempty"`
}

type orderDTO struct {
	ID            uuid.UUID      `json:"id"`
	Number        string         `json:"number"`
	Status        string         `json:"status"`
	Items         []orderItemDTO `json:"items"`
	Subtotal      string         `json:"subtotal"`
	Discount      string         `json:"discount"`
	Tax           string         `json:"tax"`
	Total         string         `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	CreatedAt     time.Time      `json:"created_at"`
}

type createOrderResponse struct {
	Order     orderDTO  `json:"order"`
	InvoiceID uuid.UUID `json:"invoice_id"`
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid X-User-ID header")
		return
	}

	var req struct {
		PaymentMethod  string  `json:"payment_method"`
		BillingAddress *string `json:"billing_address,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	ord, inv, err := h.svc.Create(ctx, model.CreateOrderParams{
		UserID:         userID,
		PaymentMethod:  model.PaymentMethod(req.PaymentMethod),
		BillingAddress: req.BillingAddress,
	})
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusCreated, createOrderResponse{
		Order:     orderToDTO(ord),
		InvoiceID: inv.ID,
	})
}

func (h *handler) order(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ordID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid order_id")
		return
	}

	ord, err := h.svc.OrderByID(ctx, ordID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, orderToDTO(ord))
}

func orderToDTO(ord *model.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(ord.Items))
	for _, it := range ord.Items {
		items = append(items, orderItemDTO{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Type:         string(it.Type),
			BillingCycle: string(it.BillingCycle),
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice.StringFixed(2),
			DomainName:   it.DomainName,
		})
	}

	return orderDTO{
		ID:            ord.ID,
		Number:        ord.Number,
		Status:        string(ord.Status),
		Items:         items,
		Subtotal:      ord.Subtotal.StringFixed(2),
		Discount:      ord.Discount.StringFixed(2),
		Tax:           ord.Tax.StringFixed(2),
		Total:         ord.Total.StringFixed(2),
		PaymentMethod: string(ord.PaymentMethod),
		CreatedAt:     ord.CreatedAt,
	}
}
