package gateway_http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	httpclient "github.com/adityarama/iuranpay/internal/pkg/http"
	"github.com/adityarama/iuranpay/internal/pkg/models"
)

// PaymentClient is an HTTP client for the dues-portal payment endpoints.
// The auth token is resolved per request so a refreshed session token is
// picked up without rebuilding the gateway.
type PaymentClient struct {
	client  *httpclient.Client
	tokenFn func() string
}

// NewPaymentClient creates a new payment HTTP gateway
func NewPaymentClient(baseURL string, timeout time.Duration, tokenFn func() string) *PaymentClient {
	if tokenFn == nil {
		tokenFn = func() string { return "" }
	}
	return &PaymentClient{
		client:  httpclient.NewClient(baseURL, timeout),
		tokenFn: tokenFn,
	}
}

// CreatePayment creates a new payment record for a fee
func (g *PaymentClient) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentCharge, error) {
	endpoint := fmt.Sprintf("%s/payments", g.client.BaseURL)

	var charge models.PaymentCharge
	if err := g.doJSON(ctx, http.MethodPost, endpoint, req, &charge); err != nil {
		return nil, fmt.Errorf("create payment request failed: %w", err)
	}
	return &charge, nil
}

// RetryPayment creates a replacement payment for a previous attempt
func (g *PaymentClient) RetryPayment(ctx context.Context, paymentID string) (*models.PaymentCharge, error) {
	endpoint := fmt.Sprintf("%s/payments/%s/retry", g.client.BaseURL, url.PathEscape(paymentID))

	var charge models.PaymentCharge
	if err := g.doJSON(ctx, http.MethodPost, endpoint, nil, &charge); err != nil {
		return nil, fmt.Errorf("retry payment request failed: %w", err)
	}
	return &charge, nil
}

// ForceCheck queries the gateway-authoritative status of a payment
func (g *PaymentClient) ForceCheck(ctx context.Context, paymentID string) (*models.ForceCheckResult, error) {
	endpoint := fmt.Sprintf("%s/payments/%s/force-check", g.client.BaseURL, url.PathEscape(paymentID))

	var result models.ForceCheckResult
	if err := g.doJSON(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, fmt.Errorf("force check request failed: %w", err)
	}
	return &result, nil
}

// ListPayments fetches all payment records for a user
func (g *PaymentClient) ListPayments(ctx context.Context, userID string) ([]models.Payment, error) {
	endpoint := fmt.Sprintf("%s/payments?user=%s", g.client.BaseURL, url.QueryEscape(userID))

	var payments []models.Payment
	if err := g.doJSON(ctx, http.MethodGet, endpoint, nil, &payments); err != nil {
		return nil, fmt.Errorf("list payments request failed: %w", err)
	}
	return payments, nil
}

// doJSON sends a request with the auth token attached and decodes the
// JSON response into out.
func (g *PaymentClient) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if token := g.tokenFn(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed: (status: %d, body: %s)", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
