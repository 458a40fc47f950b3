package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// PaymentInitiator starts an off-site payment and returns a redirect target.
type PaymentInitiator interface {
	InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*InitiationResult, error)
}

// PaymentVerifier checks the terminal state of a payment attempt.
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, paymentID string) (*VerificationResponse, error)
}

// InitiatePaymentRequest is the payload sent to the payment-initiation webhook.
type InitiatePaymentRequest struct {
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	PackageID string  `json:"packageId"`
	PromoCode string  `json:"promoCode,omitempty"`
}

// InitiationResult is the normalized payment-initiation response.
// RedirectURL may be empty; the caller decides how to treat its absence.
type InitiationResult struct {
	RedirectURL string
	PaymentID   string
}

// VerificationResponse is the payment-verification payload. Success is
// asserted only by an explicit success flag or a settled/paid status value.
type VerificationResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client calls the external workflow engine's webhooks over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a workflow client for the given webhook base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure Client implements the interfaces.
var (
	_ PaymentInitiator = (*Client)(nil)
	_ PaymentVerifier  = (*Client)(nil)
)

// initiationPayload is one element of the initiation response. The engine has
// returned both snake_case and camelCase redirect keys; both are accepted.
type initiationPayload struct {
	RedirectURL      string `json:"redirect_url"`
	RedirectURLCamel string `json:"redirectUrl"`
	PaymentID        string `json:"payment_id"`
}

func (p initiationPayload) redirect() string {
	if p.RedirectURL != "" {
		return p.RedirectURL
	}
	return p.RedirectURLCamel
}

// InitiatePayment posts the payment request and normalizes the response.
// The engine responds with either a single object or an array whose first
// element carries the payload; the two shapes are detected explicitly rather
// than duck-typed.
func (c *Client) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*InitiationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/initiate-payment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment initiation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment initiation returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read payment initiation response: %w", err)
	}

	payload, err := normalizeInitiationResponse(data)
	if err != nil {
		return nil, err
	}

	return &InitiationResult{
		RedirectURL: payload.redirect(),
		PaymentID:   payload.PaymentID,
	}, nil
}

// normalizeInitiationResponse resolves the object-vs-array response shape
// into a single payload.
func normalizeInitiationResponse(data []byte) (initiationPayload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return initiationPayload{}, fmt.Errorf("empty payment initiation response")
	}

	switch trimmed[0] {
	case '[':
		var list []initiationPayload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return initiationPayload{}, fmt.Errorf("decode payment initiation list: %w", err)
		}
		if len(list) == 0 {
			return initiationPayload{}, fmt.Errorf("empty payment initiation list")
		}
		return list[0], nil
	case '{':
		var single initiationPayload
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return initiationPayload{}, fmt.Errorf("decode payment initiation response: %w", err)
		}
		return single, nil
	default:
		return initiationPayload{}, fmt.Errorf("unexpected payment initiation response shape")
	}
}

// VerifyPayment fetches the terminal state of a payment attempt.
func (c *Client) VerifyPayment(ctx context.Context, paymentID string) (*VerificationResponse, error) {
	endpoint := fmt.Sprintf("%s/payment-callback?paymentId=%s", c.baseURL, url.QueryEscape(paymentID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build verification request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment verification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment verification returned status %d", resp.StatusCode)
	}

	var verification VerificationResponse
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, fmt.Errorf("decode verification response: %w", err)
	}

	return &verification, nil
}
