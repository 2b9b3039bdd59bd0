package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"go-pizzeria/models"
	"go-pizzeria/storage"
)

const (
	testPhone    = "5551234567"
	testPassword = "hunter22"
)

type testEnv struct {
	store  *storage.FileStore
	tokens *TokenController
	users  *UserController
	menu   *MenuController
	carts  *CartController
}

func newTestEnv() *testEnv {
	store := storage.NewFileStore(afero.NewMemMapFs(), "data")
	tokens := NewTokenController(store)
	return &testEnv{
		store:  store,
		tokens: tokens,
		users:  NewUserController(store, tokens, nil),
		menu:   NewMenuController(store),
		carts:  NewCartController(store, tokens),
	}
}

// do runs a handler against a synthetic request with an optional JSON body
// and token header.
func do(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("token", token)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func (e *testEnv) registerUser(t *testing.T, phone string) {
	t.Helper()
	w := do(t, e.users.Register, http.MethodPost, "/users", map[string]interface{}{
		"firstName":    "Jamie",
		"lastName":     "Doe",
		"phone":        phone,
		"email":        "jamie@example.com",
		"password":     testPassword,
		"tosAgreement": true,
	}, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 registering user, got %d: %s", w.Code, w.Body.String())
	}
}

func (e *testEnv) login(t *testing.T, phone string) string {
	t.Helper()
	w := do(t, e.tokens.Create, http.MethodPost, "/tokens", map[string]string{
		"phone":    phone,
		"password": testPassword,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 logging in, got %d: %s", w.Code, w.Body.String())
	}
	var token models.Token
	decodeBody(t, w, &token)
	return token.ID
}

func (e *testEnv) createMenuItem(t *testing.T, description string, price float64) models.MenuItem {
	t.Helper()
	w := do(t, e.menu.Create, http.MethodPost, "/menu", map[string]interface{}{
		"description": description,
		"price":       price,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 creating menu item, got %d: %s", w.Code, w.Body.String())
	}
	var item models.MenuItem
	decodeBody(t, w, &item)
	return item
}

func (e *testEnv) getCart(t *testing.T, phone, token string) models.Cart {
	t.Helper()
	w := do(t, e.carts.Get, http.MethodGet, "/carts?phone="+phone, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching cart, got %d: %s", w.Code, w.Body.String())
	}
	var cart models.Cart
	decodeBody(t, w, &cart)
	return cart
}

func cartTotal(cart models.Cart) float64 {
	var total float64
	for _, item := range cart.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
