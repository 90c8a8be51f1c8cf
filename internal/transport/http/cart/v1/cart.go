package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/transport/http/respond"
)

type CartService interface {
	AddItem(ctx context.Context, params model.AddCartItemParams) (*model.CartItem, error)
	Cart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	SetBillingCycle(ctx context.Context, userID, itemID uuid.UUID, cycle model.BillingCycle) (*model.CartItem, error)
	SetDomainName(ctx context.Context, userID, itemID uuid.UUID, raw string) (*model.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	ApplyPromoCode(ctx context.Context, userID uuid.UUID, code string) error
	RemovePromoCode(ctx context.Context, userID uuid.UUID) error
}

type handler struct {
	svc CartService
}

func NewCartHandler(service CartService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.cart)
		r.Delete("/", h.clear)
		r.Post("/items", h.addItem)
		r.Patch("/items/{item_id}/billing-cycle", h.setBillingCycle)
		r.Patch("/items/{item_id}/domain-name", h.setDomainName)
		r.Delete("/items/{item_id}", h.removeItem)
		r.Post("/promo-code", h.applyPromoCode)
		r.Delete("/promo-code", h.removePromoCode)
	})
}

type cartItemDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    int64     `json:"product_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	BillingCycle string    `json:"billing_cycle"`
	Price        string    `json:"price"`
	MonthlyPrice *string   `json:"monthly_price,omitempty"`
	AnnualPrice  *string   `json:"annual_price,omitempty"`
	Quantity     int32     `json:"quantity"`
	DomainName   *string   `json:"domain_name,omitempty"`
}

type cartDTO struct {
	Items     []cartItemDTO `json:"items"`
	PromoCode *string       `json:"promo_code,omitempty"`
}

type addItemRequest struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	BillingCycle string  `json:"billing_cycle"`
	Price        string  `json:"price"`
	MonthlyPrice *string `json:"monthly_price,omitempty"`
	AnnualPrice  *string `json:"annual_price,omitempty"`
	Quantity     int32   `json:"quantity"`
	DomainName   *string `json:"domain_name,omitempty"`
}

func (h *handler) cart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	cart, err := h.svc.Cart(ctx, userID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, cartToDTO(cart))
}

func (h *handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respond.BadRequest(ctx, w, "invalid price")
		return
	}

	params := model.AddCartItemParams{
		UserID:       userID,
		ProductID:    req.ProductID,
		Name:         req.Name,
		Type:         model.ItemType(req.Type),
		BillingCycle: model.BillingCycle(req.BillingCycle),
		Price:        price,
		Quantity:     req.Quantity,
		DomainName:   req.DomainName,
	}

	if req.MonthlyPrice != nil {
		monthly, err := decimal.NewFromString(*req.MonthlyPrice)
		if err != nil {
			respond.BadRequest(ctx, w, "invalid monthly_price")
			return
		}
		params.MonthlyPrice = &monthly
	}
	if req.AnnualPrice != nil {
		annual, err := decimal.NewFromString(*req.AnnualPrice)
		if err != nil {
			respond.BadRequest(ctx, w, "invalid annual_price")
			return
		}
		params.AnnualPrice = &annual
	}

	item, err := h.svc.AddItem(ctx, params)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusCreated, cartItemToDTO(item))
}

func (h *handler) setBillingCycle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid item_id")
		return
	}

	var req struct {
		BillingCycle string `json:"billing_cycle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	item, err := h.svc.SetBillingCycle(ctx, userID, itemID, model.BillingCycle(req.BillingCycle))
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, cartItemToDTO(item))
}

func (h *handler) setDomainName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid item_id")
		return
	}

	var req struct {
		DomainName string `json:"domain_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	item, err := h.svc.SetDomainName(ctx, userID, itemID, req.DomainName)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, cartItemToDTO(item))
}

func (h *handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid item_id")
		return
	}

	if err := h.svc.RemoveItem(ctx, userID, itemID); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusNoContent, nil)
}

func (h *handler) clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	if err := h.svc.Clear(ctx, userID); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusNoContent, nil)
}

func (h *handler) applyPromoCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	if err := h.svc.ApplyPromoCode(ctx, userID, req.Code); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusNoContent, nil)
}

func (h *handler) removePromoCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromHeader(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemovePromoCode(ctx, userID); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusNoContent, nil)
}

func userIDFromHeader(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		respond.BadRequest(r.Context(), w, "invalid X-User-ID header")
		return uuid.Nil, false
	}
	return userID, true
}

func cartToDTO(cart *model.Cart) cartDTO {
	dto := cartDTO{
		Items:     make([]cartItemDTO, 0, len(cart.Items)),
		PromoCode: cart.PromoCode,
	}
	for i := range cart.Items {
		dto.Items = append(dto.Items, cartItemToDTO(&cart.Items[i]))
	}
	return dto
}

func cartItemToDTO(item *model.CartItem) cartItemDTO {
	dto := cartItemDTO{
		ID:           item.ID,
		ProductID:    item.ProductID,
		Name:         item.Name,
		Type:         string(item.Type),
		BillingCycle: string(item.BillingCycle),
		Price:        item.Price.StringFixed(2),
		Quantity:     item.Quantity,
		DomainName:   item.DomainName,
	}
	if item.MonthlyPrice != nil {
		s := item.MonthlyPrice.StringFixed(2)
		dto.MonthlyPrice = &s
	}
	if item.AnnualPrice != nil {
		s := item.AnnualPrice.StringFixed(2)
		dto.AnnualPrice = &s
	}
	return dto
}
