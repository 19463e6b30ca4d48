package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestProductsAPIList(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got productsPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Products) != 2 {
		t.Errorf("products = %d, want 2", len(got.Products))
	}
	if got.Bounds.MinPrice != "1499" || got.Bounds.MaxPrice != "4999" {
		t.Errorf("bounds = %+v", got.Bounds)
	}
}

func TestProductsAPIFilterAndSort(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products?sizes=M&sort=price-desc", "")
	var got productsPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Products) != 1 || got.Products[0].ID != "p1" {
		t.Errorf("filtered products = %+v", got.Products)
	}

	// An unknown sort keeps the platform's order rather than failing.
	rec = env.do(t, http.MethodGet, "/api/products?sort=bogus", "")
	if rec.Code != http.StatusOK {
		t.Errorf("unknown sort status = %d, want 200", rec.Code)
	}
}

func TestProductsAPIUnavailable(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.commerce.queryErr = errors.New("platform down")

	rec := env.do(t, http.MethodGet, "/api/products", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if body := rec.Body.String(); !json.Valid([]byte(body)) {
		t.Errorf("error body is not JSON: %s", body)
	}
}

func TestProductAPIBySlug(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products/ajrakh-saree", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "p2" || got.Name != "Ajrakh Saree" {
		t.Errorf("product = %+v", got)
	}

	rec = env.do(t, http.MethodGet, "/api/products/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug status = %d, want 404", rec.Code)
	}
}
