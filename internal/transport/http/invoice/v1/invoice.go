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

type InvoiceService interface {
	InvoiceByID(ctx context.Context, invID uuid.UUID) (*model.Invoice, error)
	Pay(ctx context.Context, invID uuid.UUID, method model.PaymentMethod) (*model.Invoice, error)
	SubmitManualPayment(ctx context.Context, invID uuid.UUID, method model.PaymentMethod, params model.SubmitParams) (*model.ManualPayment, error)
	Transactions(ctx context.Context, invID uuid.UUID) ([]model.PaymentTransaction, error)
}

type handler struct {
	svc InvoiceService
}

func NewInvoiceHandler(service InvoiceService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/api/v1/invoices/{invoice_id}", func(r chi.Router) {
		r.Get("/", h.invoice)
		r.Get("/instructions", h.instructions)
		r.Get("/transactions", h.transactions)
		r.Post("/pay", h.pay)
		r.Post("/manual-payments", h.submitManualPayment)
	})
}

type invoiceDTO struct {
	ID        uuid.UUID  `json:"id"`
	Number    string     `json:"number"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Status    string     `json:"status"`
	Subtotal  string     `json:"subtotal"`
	TaxAmount string     `json:"tax_amount"`
	Total     string     `json:"total"`
	Currency  string     `json:"currency"`
	DueAt     time.Time  `json:"due_at"`
}

type manualPaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	InvoiceID     uuid.UUID `json:"invoice_id"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	SenderNumber  string    `json:"sender_number"`
	Status        string    `json:"status"`
}

func (h *handler) invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invID, ok := invoiceIDFromURL(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.InvoiceByID(ctx, invID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, invoiceToDTO(inv))
}

// instructions renders the bilingual payment instructions for a manual
// method, with the invoice number substituted as the reference.
func (h *handler) instructions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invID, ok := invoiceIDFromURL(w, r)
	if !ok {
		return
	}

	method := model.PaymentMethod(r.URL.Query().Get("method"))
	if !method.Known() {
		respond.Error(ctx, w, model.ErrUnknownMethod)
		return
	}

	inv, err := h.svc.InvoiceByID(ctx, invID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	instructions, err := method.Instructions(inv.Number)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, struct {
		English string `json:"en"`
		Bangla  string `json:"bn"`
	}{
		English: instructions.English,
		Bangla:  instructions.Bangla,
	})
}

type transactionDTO struct {
	ID        uuid.UUID `json:"id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	Gateway   string    `json:"gateway"`
	Reference string    `json:"reference"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handler) transactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invID, ok := invoiceIDFromURL(w, r)
	if !ok {
		return
	}

	txs, err := h.svc.Transactions(ctx, invID)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	dtos := make([]transactionDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, transactionDTO{
			ID:        tx.ID,
			InvoiceID: tx.InvoiceID,
			Gateway:   string(tx.Gateway),
			Reference: tx.Reference,
			Amount:    tx.Amount.StringFixed(2),
			CreatedAt: tx.CreatedAt,
		})
	}

	respond.JSON(ctx, w, http.StatusOK, struct {
		Transactions []transactionDTO `json:"transactions"`
	}{Transactions: dtos})
}

func (h *handler) pay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invID, ok := invoiceIDFromURL(w, r)
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

	inv, err := h.svc.Pay(ctx, invID, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, invoiceToDTO(inv))
}

func (h *handler) submitManualPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invID, ok := invoiceIDFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
		TransactionID string `json:"transaction_id"`
		SenderNumber  string `json:"sender_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(ctx, w, "invalid request body")
		return
	}

	payment, err := h.svc.SubmitManualPayment(ctx, invID, model.PaymentMethod(req.PaymentMethod), model.SubmitParams{
		TransactionID: req.TransactionID,
		SenderNumber:  req.SenderNumber,
	})
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusCreated, manualPaymentDTO{
		ID:            payment.ID,
		InvoiceID:     payment.InvoiceID,
		Method:        string(payment.Method),
		TransactionID: payment.TransactionID,
		SenderNumber:  payment.SenderNumber,
		Status:        string(payment.Status),
	})
}

func invoiceIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	invID, err := uuid.Parse(chi.URLParam(r, "invoice_id"))
	if err != nil {
		respond.BadRequest(r.Context(), w, "invalid invoice_id")
		return uuid.Nil, false
	}
	return invID, true
}

func invoiceToDTO(inv *model.Invoice) invoiceDTO {
	return invoiceDTO{
		ID:        inv.ID,
		Number:    inv.Number,
		OrderID:   inv.OrderID,
		Status:    string(inv.Status),
		Subtotal:  inv.Subtotal.StringFixed(2),
		TaxAmount: inv.TaxAmount.StringFixed(2),
		Total:     inv.Total.StringFixed(2),
		Currency:  inv.Currency,
		DueAt:     inv.DueAt,
	}
}
