package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

const validAddress = `{"address":{"fullName":"Asha Devi","phone":"9876543210","addressLine1":"12 Loom Lane","city":"Jaipur","pinCode":"302001"}}`

func TestCheckoutAPIHandoff(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p1","size":"M","quantity":2}`)

	rec := env.do(t, http.MethodPost, "/api/checkout", validAddress)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RedirectURL != "https://pay.example.com/chk_1" {
		t.Errorf("redirectUrl = %q", got.RedirectURL)
	}
	if env.cart.Count() != 0 {
		t.Errorf("cart not cleared after hand-off: count = %d", env.cart.Count())
	}
}

func TestCheckoutAPIEmptyCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/checkout", validAddress)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "empty") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCheckoutAPIInvalidAddress(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p1","size":"M","quantity":1}`)

	rec := env.do(t, http.MethodPost, "/api/checkout",
		`{"address":{"fullName":"Asha Devi","phone":"9876543210","city":"Jaipur","pinCode":"302001"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if env.cart.Count() != 1 {
		t.Error("cart changed on a rejected address")
	}
}

func TestCheckoutAPIPlatformFailureKeepsCart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*fakeCommerce)
	}{
		{"checkout fails", func(f *fakeCommerce) { f.checkoutErr = errors.New("boom") }},
		{"redirect fails", func(f *fakeCommerce) { f.redirectErr = errors.New("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p1","size":"M","quantity":1}`)
			tt.setup(env.commerce)

			rec := env.do(t, http.MethodPost, "/api/checkout", validAddress)
			if rec.Code != http.StatusBadGateway {
				t.Errorf("status = %d, want 502", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Something went wrong. Please try again.") {
				t.Errorf("body = %s", rec.Body.String())
			}
			if env.cart.Count() != 1 {
				t.Error("cart cleared despite a failed hand-off")
			}
		})
	}
}
