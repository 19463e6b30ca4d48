package web

import (
	"errors"
	"net/http"

	"github.com/indian-sparrow/storefront/internal/domain/checkout"
	"github.com/indian-sparrow/storefront/internal/service"
)

type checkoutRequest struct {
	Address checkout.Address `json:"address"`
}

type checkoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// createCheckout validates the shipping address, hands the cart off to the
// commerce platform, and returns the payment redirect URL. The cart is
// cleared only when the hand-off fully succeeds.
func (h *Handler) createCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Address.Normalize()
	if err := req.Address.Validate(); err != nil {
		h.metrics.CheckoutHandoffs.WithLabelValues("invalid").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	redirectURL, err := h.checkoutService.Handoff(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			h.metrics.CheckoutHandoffs.WithLabelValues("empty").Inc()
			h.respondError(w, http.StatusBadRequest, "your cart is empty")
			return
		}
		LoggerFromContext(r.Context()).Error("checkout hand-off failed", "error", err)
		h.metrics.CheckoutHandoffs.WithLabelValues("error").Inc()
		h.respondError(w, http.StatusBadGateway, "Something went wrong. Please try again.")
		return
	}

	h.metrics.CheckoutHandoffs.WithLabelValues("ok").Inc()
	h.respondJSON(w, http.StatusOK, checkoutResponse{RedirectURL: redirectURL})
}
