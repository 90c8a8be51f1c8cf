package model

import "errors"

var (
	ErrValidation         = errors.New("validation error")    // 400
	ErrCartItemNotFound   = errors.New("cart item not found") // 404
	ErrOrderNotFound      = errors.New("order not found")     // 404
	ErrInvoiceNotFound    = errors.New("invoice not found")   // 404
	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrInvoiceConflict    = errors.New("invoice conflict") // 409
	ErrSubmitInFlight     = errors.New("checkout submission already in progress")
	ErrCheckoutCompleted  = errors.New("checkout session already completed")
	ErrStepTransition     = errors.New("illegal checkout step transition")
	ErrCartEmpty          = errors.New("cart is empty") // 422
	ErrDomainNameRequired = errors.New("domain name required")
	ErrInvalidDomainName  = errors.New("invalid domain name")
	ErrInvalidPromoCode   = errors.New("invalid promo code")
	ErrProofRequired      = errors.New("transaction id and sender number required")
	ErrUnknownMethod      = errors.New("unknown payment method")
	ErrManualMethodOnly   = errors.New("not a manual payment method")
	ErrUnknownStatus      = errors.New("unknown status")
	ErrBadGateway         = errors.New("bad gateway") // 502
)
