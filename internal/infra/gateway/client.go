package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"clubcore/internal/pkg/config"
	"clubcore/internal/pkg/errs"
)

var ErrGatewayUnavailable = errs.New("payment gateway unavailable")

// PaymentLinkRequest is what the checkout flow knows; amounts arrive in
// whole currency units and are converted to cents on the wire, which is
// the only place cents exist in this codebase.
type PaymentLinkRequest struct {
	Reference     string
	Amount        int64
	CustomerEmail string
}

type PaymentLink struct {
	ID          string
	CheckoutURL string
}

type createLinkRequest struct {
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
	RedirectURL   string `json:"redirect_url"`
	Reference     string `json:"reference"`
}

type createLinkResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// Client talks to the hosted-checkout REST API.
type Client struct {
	httpClient *http.Client
	cfg        config.GatewayConfig
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

func (c *Client) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	body, err := json.Marshal(createLinkRequest{
		AmountInCents: req.Amount * 100,
		Currency:      c.cfg.Currency,
		CustomerEmail: req.CustomerEmail,
		RedirectURL:   fmt.Sprintf("%s?id=%s", c.cfg.RedirectURL, req.Reference),
		Reference:     req.Reference,
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode payment link request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build payment link request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "payment link request failed"), ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded slice of the body for the log line.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("payment gateway returned %d: %s", resp.StatusCode, snippet)),
			ErrGatewayUnavailable,
		)
	}

	var linkResp createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&linkResp); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode payment link response"), ErrGatewayUnavailable)
	}
	if linkResp.ID == "" || linkResp.CheckoutURL == "" {
		return nil, errs.Mark(errs.New("payment link response missing id or checkout_url"), ErrGatewayUnavailable)
	}

	return &PaymentLink{ID: linkResp.ID, CheckoutURL: linkResp.CheckoutURL}, nil
}
