package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-pizzeria/models"
)

func TestCharge_Success(t *testing.T) {
	var got struct {
		path     string
		user     string
		form     map[string]string
		received bool
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got.path = r.URL.Path
		got.user, _, _ = r.BasicAuth()
		got.form = map[string]string{
			"amount":             r.PostFormValue("amount"),
			"currency":           r.PostFormValue("currency"),
			"source":             r.PostFormValue("source"),
			"metadata[order_id]": r.PostFormValue("metadata[order_id]"),
		}
		got.received = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "sk_test_key")
	err := client.Charge(models.PaymentRequest{
		Amount:      28.50,
		Currency:    "EUR",
		Token:       "tok_visa",
		OrderID:     "order123",
		Source:      "card_123",
		Description: "two burgers",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.received {
		t.Fatal("expected the gateway to receive a request")
	}
	if got.path != "/v1/charges" {
		t.Errorf("expected path /v1/charges, got %s", got.path)
	}
	if got.user != "tok_visa" {
		t.Errorf("expected basic auth user tok_visa, got %s", got.user)
	}
	if got.form["amount"] != "28.50" {
		t.Errorf("expected amount 28.50, got %s", got.form["amount"])
	}
	if got.form["currency"] != "EUR" {
		t.Errorf("expected currency EUR, got %s", got.form["currency"])
	}
	if got.form["metadata[order_id]"] != "order123" {
		t.Errorf("expected order id order123, got %s", got.form["metadata[order_id]"])
	}
}

func TestCharge_DefaultsCurrencyToUSD(t *testing.T) {
	var currency string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		currency = r.PostFormValue("currency")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "sk_test_key")
	err := client.Charge(models.PaymentRequest{
		Amount:  5.0,
		Token:   "tok_visa",
		OrderID: "order123",
		Source:  "card_123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if currency != "USD" {
		t.Errorf("expected default currency USD, got %s", currency)
	}
}

func TestCharge_GatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "sk_test_key")
	err := client.Charge(models.PaymentRequest{
		Amount:  5.0,
		Token:   "tok_visa",
		OrderID: "order123",
		Source:  "card_123",
	})
	if err == nil {
		t.Fatal("expected an error for a declined charge")
	}
	if !strings.Contains(err.Error(), "402") {
		t.Errorf("expected the status code in the error, got %v", err)
	}
}

func TestCharge_MissingParameters(t *testing.T) {
	client := NewPaymentClient("http://gateway.invalid", "sk_test_key")

	for _, req := range []models.PaymentRequest{
		{Amount: 0, Token: "tok", OrderID: "o1", Source: "card"},
		{Amount: 5, Token: "", OrderID: "o1", Source: "card"},
		{Amount: 5, Token: "tok", OrderID: "", Source: "card"},
		{Amount: 5, Token: "tok", OrderID: "o1", Source: ""},
	} {
		if err := client.Charge(req); err == nil {
			t.Errorf("expected a validation error for %+v", req)
		}
	}
}
