package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go-pizzeria/models"
)

// PaymentClient posts charges to a Stripe-style gateway. The order flow
// upstream is not implemented yet, so charges are fire-and-forget: the
// caller gets nil on success or a status-coded failure otherwise.
type PaymentClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPaymentClient(baseURL, apiKey string) *PaymentClient {
	return &PaymentClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Charge validates the request, fills in the default currency, and posts a
// form-encoded charge to the gateway.
func (c *PaymentClient) Charge(req models.PaymentRequest) error {
	if req.Amount <= 0 || req.Token == "" || req.OrderID == "" || req.Source == "" {
		return fmt.Errorf("missing or invalid payment parameters")
	}
	currency := strings.TrimSpace(req.Currency)
	if len(currency) != 3 {
		currency = "USD"
	}

	payload := url.Values{}
	payload.Set("amount", fmt.Sprintf("%.2f", req.Amount))
	payload.Set("currency", currency)
	payload.Set("source", req.Source)
	payload.Set("description", strings.TrimSpace(req.Description))
	payload.Set("metadata[order_id]", req.OrderID)

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/charges", strings.NewReader(payload.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(req.Token, "")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status code returned was: %d", resp.StatusCode)
	}
	return nil
}
