package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/internal/port/outbound"
)

// HealthResponse is the JSON response from the /healthz endpoint.
type HealthResponse struct {
	Status  string            `json:"status"`            // "healthy" or "unhealthy"
	Checks  map[string]string `json:"checks"`            // Component check results
	Version string            `json:"version,omitempty"` // Optional version info
}

// HealthChecker verifies component health.
type HealthChecker struct {
	kv          outbound.KeyValueStore
	rateLimiter *RateLimiter
	version     string
}

// NewHealthChecker creates a HealthChecker with optional components.
// Pass nil for components that aren't available.
func NewHealthChecker(kv outbound.KeyValueStore, rateLimiter *RateLimiter, version string) *HealthChecker {
	return &HealthChecker{
		kv:          kv,
		rateLimiter: rateLimiter,
		version:     version,
	}
}

// Check performs health checks on all components.
func (h *HealthChecker) Check(ctx context.Context) HealthResponse {
	checks := make(map[string]string)
	healthy := true

	// Check storage by reading a well-known key. An absent key is fine;
	// only a backend error is unhealthy.
	if h.kv != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if _, _, err := h.kv.Get(probeCtx, cart.StorageKey); err != nil {
			checks["storage"] = fmt.Sprintf("error: %v", err)
			healthy = false
		} else {
			checks["storage"] = "ok"
		}
	} else {
		checks["storage"] = "not configured"
	}

	if h.rateLimiter != nil {
		checks["rate_limiter"] = fmt.Sprintf("ok: %d keys", h.rateLimiter.Size())
	} else {
		checks["rate_limiter"] = "not configured"
	}

	// Add Go runtime info
	checks["goroutines"] = fmt.Sprintf("%d", runtime.NumGoroutine())

	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	return HealthResponse{
		Status:  status,
		Checks:  checks,
		Version: h.version,
	}
}

// Handler returns an HTTP handler for the health endpoint.
func (h *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		health := h.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if health.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable) // 503
		} else {
			w.WriteHeader(http.StatusOK) // 200
		}

		_ = json.NewEncoder(w).Encode(health)
	})
}
