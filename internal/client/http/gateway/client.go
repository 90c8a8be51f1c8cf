package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/facreativefirm/billing-portal/internal/config"
	"github.com/facreativefirm/billing-portal/internal/model"
)

// client talks to the payment gateway facade that fronts Stripe and bKash.
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(cfg config.Gateway) *client {
	return &client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL(),
		apiKey:     cfg.APIKey(),
	}
}

type chargeRequest struct {
	InvoiceID string `json:"invoice_id"`
	Gateway   string `json:"gateway"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

type chargeResponse struct {
	Reference string `json:"reference"`
}

// Charge performs a synchronous charge and returns the processor reference.
func (c *client) Charge(ctx context.Context, params model.ChargeParams) (*model.ChargeResult, error) {
	const op string = "client.gateway.Charge"

	body, err := json.Marshal(chargeRequest{
		InvoiceID: params.InvoiceID.String(),
		Gateway:   string(params.Gateway),
		Amount:    params.Amount.String(),
		Currency:  params.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, model.ErrBadGateway)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, model.ErrBadGateway)
	}

	var out chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.ChargeResult{Reference: out.Reference}, nil
}
