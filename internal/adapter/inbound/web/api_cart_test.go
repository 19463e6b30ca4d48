package web

import (
	"encoding/json"
	"net/http"
	"testing"
)

func decodeCart(t *testing.T, body []byte) cartPayload {
	t.Helper()
	var p cartPayload
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("decode cart payload: %v", err)
	}
	return p
}

func TestCartAPIAddAndGet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items",
		`{"productId":"p1","name":"Mulmul Kurta","displayPrice":"₹1,499.00","numericPrice":"1499","size":"M","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	got := decodeCart(t, rec.Body.Bytes())
	if got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(got.Lines))
	}
	if !got.DrawerOpen {
		t.Error("drawer should open after an add")
	}
	if got.SubtotalFormatted != "₹2,998.00" {
		t.Errorf("subtotalFormatted = %q", got.SubtotalFormatted)
	}

	// Adding the same product and size again merges rather than duplicating.
	rec = env.do(t, http.MethodPost, "/api/cart/items",
		`{"productId":"p1","size":"M","quantity":1}`)
	got = decodeCart(t, rec.Body.Bytes())
	if len(got.Lines) != 1 || got.Count != 3 {
		t.Errorf("after merge: lines = %d, count = %d, want 1 and 3", len(got.Lines), got.Count)
	}

	rec = env.do(t, http.MethodGet, "/api/cart", "")
	got = decodeCart(t, rec.Body.Bytes())
	if got.Count != 3 {
		t.Errorf("GET count = %d, want 3", got.Count)
	}
}

func TestCartAPIAddRequiresProductID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/cart/items", `{"size":"M","quantity":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCartAPIUpdateQuantity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p1","size":"M","quantity":1}`)

	rec := env.do(t, http.MethodPut, "/api/cart/items", `{"productId":"p1","size":"M","quantity":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeCart(t, rec.Body.Bytes()); got.Count != 5 {
		t.Errorf("count = %d, want 5", got.Count)
	}

	// Quantities below one are rejected at the API boundary.
	rec = env.do(t, http.MethodPut, "/api/cart/items", `{"productId":"p1","size":"M","quantity":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("quantity 0 status = %d, want 400", rec.Code)
	}
	if env.cart.Count() != 5 {
		t.Errorf("cart changed after rejected update: count = %d", env.cart.Count())
	}
}

func TestCartAPIRemove(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p1","size":"M","quantity":1}`)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p2","quantity":1}`)

	rec := env.do(t, http.MethodDelete, "/api/cart/items?productId=p1&size=M", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeCart(t, rec.Body.Bytes())
	if len(got.Lines) != 1 || got.Lines[0].ProductID != "p2" {
		t.Errorf("lines after remove = %+v", got.Lines)
	}

	// Removing an absent line is a quiet no-op.
	rec = env.do(t, http.MethodDelete, "/api/cart/items?productId=ghost", "")
	if rec.Code != http.StatusOK {
		t.Errorf("absent remove status = %d, want 200", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/cart/items", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing productId status = %d, want 400", rec.Code)
	}
}

func TestCartAPIClearAndDrawer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"p1","size":"M","quantity":2}`)

	rec := env.do(t, http.MethodPut, "/api/cart/drawer", `{"open":false}`)
	if got := decodeCart(t, rec.Body.Bytes()); got.DrawerOpen {
		t.Error("drawer still open after close request")
	}

	rec = env.do(t, http.MethodPost, "/api/cart/clear", "")
	got := decodeCart(t, rec.Body.Bytes())
	if got.Count != 0 || len(got.Lines) != 0 {
		t.Errorf("after clear: count = %d, lines = %d", got.Count, len(got.Lines))
	}
	if got.Subtotal != "0" {
		t.Errorf("subtotal = %q, want 0", got.Subtotal)
	}
}

func TestCartAPIInvalidBody(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/cart/items", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
