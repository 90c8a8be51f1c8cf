package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/transport/http/respond"
)

type CheckoutService interface {
	Start(ctx context.Context, params model.StartCheckoutParams) (*model.CheckoutView, error)
	Summary(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutView, error)
	Advance(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutSession, error)
	GoBack(ctx context.Context, sessionID uuid.UUID, target model.CheckoutStep) (*model.CheckoutSession, error)
	SetBillingAddress(ctx context.Context, sessionID uuid.UUID, address string) error
	SelectPaymentMethod(ctx context.Context, sessionID uuid.UUID, method model.PaymentMethod) error
	Submit(ctx context.Context, sessionID uuid.UUID, params model.SubmitParams) (*model.SubmitResult, error)
}

type handler struct {
	svc CheckoutService
}

func NewCheckoutHandler(service CheckoutService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Get("/payment-methods", h.paymentMethods)
		r.Post("/sessions", h.start)
		r.Route("/sessions/{session_id}", func(r chi.Router) {
			r.Get("/", h.summary)
			r.Post("/advance", h.advance)
			r.Post("/back", h.goBack)
			r.Put("/billing-address", h.setBillingAddress)
			r.Put("/payment-method", h.selectPaymentMethod)
			r.Post("/submit", h.submit)
		})
	})
}

type sessionDTO struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Step           int        `json:"step"`
	Status         string     `json:"status"`
	InvoiceID      *uuid.UUID `json:"invoice_id,omitempty"`
	OrderID        *uuid.UUID `json:"order_id,omitempty"`
	PaymentMethod  *string    `json:"payment_method,omitempty"`
	BillingAddress *string    `json:"billing_address,omitempty"`
}

type summaryDTO struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type instructionsDTO struct {
	English string `json:"en"`
	Bangla  string `json:"bn"`
}

type viewDTO struct {
	Session      sessionDTO       `json:"session"`
	Summary      summaryDTO       `json:"summary"`
	Empty        bool             `json:"empty"`
	Instructions *instructionsDTO `json:"instructions,omitempty"`
}

type submitResultDTO struct {
	Outcome     string     `json:"outcome"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	OrderNumber *string    `json:"order_number,omitempty"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`
}

type paymentMethodDTO struct {
	Method  string `json:"method"`
	Kind    string `json:"kind"`
	TitleEN string `json:"title_en"`
	TitleBN string `json:"title_bn"`
}

func (h *handler) paymentMethods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	methods := make([]paymentMethodDTO, 0, len(model.PaymentMethods))
	for _, m := range model.PaymentMethods {
		methods = append(methods, paymentMethodDTO{
			Method:  string(m.Method),
			Kind:    string(m.Kind),
			TitleEN: m.TitleEN,
			TitleBN: m.TitleBN,
		})
	}

	respond.JSON(ctx, w, http.StatusOK, methods)
}

func (h *handler) start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		respond.BadRequest(ctx, w, "invalid X-User-ID header")
		return
	}

	var req struct {
		InvoiceID *uuid.UUID `json:"invoice_id,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(ctx, w, "invalid request body")
			return
		}
	}

	view, err := h.svc.Start(ctx, model.StartCheckoutParams{
		UserID:    userID,
		InvoiceID: req.InvoiceID,
	})
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusCreated, viewToDTO(view))
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Summary(ctx, sessionID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, viewToDTO(view))
}

func (h *handler) advance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Advance(ctx, sessionID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, sessionToDTO(session))
}

func (h *handler) goBack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	session, err := h.svc.GoBack(ctx, sessionID, model.CheckoutStep(req.Step))
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, sessionToDTO(session))
}

func (h *handler) setBillingAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		BillingAddress string `json:"billing_address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	if err := h.svc.SetBillingAddress(ctx, sessionID, req.BillingAddress); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusNoContent, nil)
}

func (h *handler) selectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	if err := h.svc.SelectPaymentMethod(ctx, sessionID, model.PaymentMethod(req.PaymentMethod)); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusNoContent, nil)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		TransactionID string `json:"transaction_id"`
		SenderNumber  string `json:"sender_number"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(ctx, w, "invalid request body")
			return
		}
	}

	result, err := h.svc.Submit(ctx, sessionID, model.SubmitParams{
		TransactionID: req.TransactionID,
		SenderNumber:  req.SenderNumber,
	})
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	dto := submitResultDTO{Outcome: string(result.Outcome)}
	if result.Order != nil {
		dto.OrderID = &result.Order.ID
		dto.OrderNumber = &result.Order.Number
	}
	if result.Invoice != nil {
		dto.InvoiceID = &result.Invoice.ID
	}

	respond.JSON(ctx, w, http.StatusOK, dto)
}

func sessionIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "session_id"))
	if err != nil {
		respond.BadRequest(r.Context(), w, "invalid session_id")
		return uuid.Nil, false
	}
	return sessionID, true
}

func sessionToDTO(session *model.CheckoutSession) sessionDTO {
	dto := sessionDTO{
		ID:             session.ID,
		UserID:         session.UserID,
		Step:           int(session.Step),
		Status:         string(session.Status),
		InvoiceID:      session.InvoiceID,
		OrderID:        session.OrderID,
		BillingAddress: session.BillingAddress,
	}
	if session.PaymentMethod != nil {
		m := string(*session.PaymentMethod)
		dto.PaymentMethod = &m
	}
	return dto
}

func viewToDTO(view *model.CheckoutView) viewDTO {
	dto := viewDTO{
		Session: sessionToDTO(&view.Session),
		Summary: summaryDTO{
			Subtotal: view.Summary.Subtotal.StringFixed(2),
			Discount: view.Summary.Discount.StringFixed(2),
			Tax:      view.Summary.Tax.StringFixed(2),
			Total:    view.Summary.Total.StringFixed(2),
		},
		Empty: view.Empty,
	}
	if view.Instructions != nil {
		dto.Instructions = &instructionsDTO{
			English: view.Instructions.English,
			Bangla:  view.Instructions.Bangla,
		}
	}
	return dto
}
