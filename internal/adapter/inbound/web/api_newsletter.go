package web

import (
	"net/http"
	"strings"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// subscribeNewsletter posts the signup to the provider once. No retry:
// a failure is reported inline and the visitor may submit again.
func (h *Handler) subscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		h.respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	if h.newsletter == nil {
		h.respondError(w, http.StatusServiceUnavailable, "newsletter is not configured")
		return
	}

	if err := h.newsletter.Subscribe(r.Context(), email); err != nil {
		LoggerFromContext(r.Context()).Warn("newsletter signup failed", "error", err)
		h.metrics.NewsletterSignups.WithLabelValues("error").Inc()
		h.respondError(w, http.StatusBadGateway, "Subscription failed. Please try again.")
		return
	}

	h.metrics.NewsletterSignups.WithLabelValues("ok").Inc()
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}
