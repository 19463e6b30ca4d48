package web

import (
	"errors"
	"net/http"

	"github.com/indian-sparrow/storefront/internal/domain/catalog"
	"github.com/indian-sparrow/storefront/pkg/money"
)

type boundsPayload struct {
	MinPrice string   `json:"minPrice"`
	MaxPrice string   `json:"maxPrice"`
	Sizes    []string `json:"sizes"`
}

type productsPayload struct {
	Products []catalog.Product `json:"products"`
	Bounds   boundsPayload     `json:"bounds"`
}

// listProducts returns the catalog filtered and sorted by the request's
// query parameters (minPrice, maxPrice, sizes, sort).
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	snap, err := h.catalogService.Snapshot(r.Context())
	if err != nil {
		LoggerFromContext(r.Context()).Error("catalog unavailable", "error", err)
		h.respondError(w, http.StatusBadGateway, "Something went wrong. Please try again.")
		return
	}

	sel := catalog.SelectionFromQuery(r.URL.Query(), snap.Bounds)
	products, bounds, err := h.catalogService.Filtered(r.Context(), sel)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "Something went wrong. Please try again.")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	sizes := bounds.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	h.respondJSON(w, http.StatusOK, productsPayload{
		Products: products,
		Bounds: boundsPayload{
			MinPrice: bounds.MinPrice.String(),
			MaxPrice: bounds.MaxPrice.String(),
			Sizes:    sizes,
		},
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	p, err := h.catalogService.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, "product not found")
			return
		}
		LoggerFromContext(r.Context()).Error("product lookup failed", "slug", slug, "error", err)
		h.respondError(w, http.StatusBadGateway, "Something went wrong. Please try again.")
		return
	}

	h.respondJSON(w, http.StatusOK, p)
}

// formatRange renders a price range for display ("₹899 – ₹4,999").
func formatRange(b catalog.Bounds) string {
	return money.FormatWhole(b.MinPrice) + " – " + money.FormatWhole(b.MaxPrice)
}
