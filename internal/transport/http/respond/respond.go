package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/platform/logger"
)

type errorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

func JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "encode response", logger.ErrorF(err))
	}
}

// Error maps domain errors onto HTTP statuses and writes a JSON body.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	JSON(ctx, w, status, errorResponse{
		Code:    int32(status),
		Message: err.Error(),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidDomainName),
		errors.Is(err, model.ErrInvalidPromoCode),
		errors.Is(err, model.ErrUnknownMethod),
		errors.Is(err, model.ErrManualMethodOnly):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCartItemNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrInvoiceNotFound),
		errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvoiceConflict),
		errors.Is(err, model.ErrSubmitInFlight),
		errors.Is(err, model.ErrCheckoutCompleted),
		errors.Is(err, model.ErrStepTransition):
		return http.StatusConflict
	case errors.Is(err, model.ErrCartEmpty),
		errors.Is(err, model.ErrDomainNameRequired),
		errors.Is(err, model.ErrProofRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrBadGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest writes a 400 with the given message, for malformed input
// caught before the service layer.
func BadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	JSON(ctx, w, http.StatusBadRequest, errorResponse{
		Code:    int32(http.StatusBadRequest),
		Message: message,
	})
}
