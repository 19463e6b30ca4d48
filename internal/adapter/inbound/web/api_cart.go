package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/pkg/money"
)

// cartPayload is the JSON shape of the cart returned by every cart route,
// so the drawer, badge, and cart page all render from one response.
type cartPayload struct {
	Lines             []cart.Line `json:"lines"`
	Count             int         `json:"count"`
	Subtotal          string      `json:"subtotal"`
	SubtotalFormatted string      `json:"subtotalFormatted"`
	DrawerOpen        bool        `json:"drawerOpen"`
}

func (h *Handler) cartResponse() cartPayload {
	lines := h.cartService.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	subtotal := h.cartService.Subtotal()
	return cartPayload{
		Lines:             lines,
		Count:             h.cartService.Count(),
		Subtotal:          subtotal.String(),
		SubtotalFormatted: money.Format(subtotal),
		DrawerOpen:        h.cartService.DrawerOpen(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.cartResponse())
}

type addItemRequest struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	DisplayPrice string          `json:"displayPrice"`
	NumericPrice decimal.Decimal `json:"numericPrice"`
	ImageURL     string          `json:"imageUrl"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == "" {
		h.respondError(w, http.StatusBadRequest, "productId is required")
		return
	}

	h.cartService.AddLine(r.Context(), cart.Line{
		ProductID:    req.ProductID,
		Name:         req.Name,
		DisplayPrice: req.DisplayPrice,
		NumericPrice: req.NumericPrice,
		ImageURL:     req.ImageURL,
		Size:         req.Size,
	}, req.Quantity)

	h.metrics.CartMutations.WithLabelValues("add").Inc()
	h.respondJSON(w, http.StatusOK, h.cartResponse())
}

type updateItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == "" {
		h.respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity < 1 {
		h.respondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	h.cartService.SetQuantity(r.Context(), req.ProductID, req.Size, req.Quantity)
	h.metrics.CartMutations.WithLabelValues("update").Inc()
	h.respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		h.respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	size := r.URL.Query().Get("size")

	h.cartService.RemoveLine(r.Context(), productID, size)
	h.metrics.CartMutations.WithLabelValues("remove").Inc()
	h.respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cartService.Clear(r.Context())
	h.metrics.CartMutations.WithLabelValues("clear").Inc()
	h.respondJSON(w, http.StatusOK, h.cartResponse())
}

type drawerRequest struct {
	Open bool `json:"open"`
}

func (h *Handler) setCartDrawer(w http.ResponseWriter, r *http.Request) {
	var req drawerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cartService.SetDrawerOpen(req.Open)
	h.respondJSON(w, http.StatusOK, h.cartResponse())
}
