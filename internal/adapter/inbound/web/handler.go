// Package web provides the storefront's HTTP surface: the HTML pages the
// shopper browses and the JSON API the pages mutate state through.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/indian-sparrow/storefront/internal/domain/account"
	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/internal/port/outbound"
	"github.com/indian-sparrow/storefront/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler serves all storefront routes.
type Handler struct {
	cartService     *cart.Service
	accountService  *account.Service
	catalogService  *service.CatalogService
	checkoutService *service.CheckoutService
	newsletter      outbound.NewsletterClient
	rateLimiter     *RateLimiter
	metrics         *Metrics
	registry        *prometheus.Registry
	healthChecker   *HealthChecker
	logger          *slog.Logger
	tmpl            *template.Template
	version         string
}

// Option configures a Handler dependency.
type Option func(*Handler)

// WithCartService sets the cart store.
func WithCartService(s *cart.Service) Option {
	return func(h *Handler) { h.cartService = s }
}

// WithAccountService sets the session store.
func WithAccountService(s *account.Service) Option {
	return func(h *Handler) { h.accountService = s }
}

// WithCatalogService sets the catalog service.
func WithCatalogService(s *service.CatalogService) Option {
	return func(h *Handler) { h.catalogService = s }
}

// WithCheckoutService sets the checkout hand-off service.
func WithCheckoutService(s *service.CheckoutService) Option {
	return func(h *Handler) { h.checkoutService = s }
}

// WithNewsletterClient sets the newsletter client.
func WithNewsletterClient(c outbound.NewsletterClient) Option {
	return func(h *Handler) { h.newsletter = c }
}

// WithRateLimiter sets the per-IP rate limiter for newsletter signups.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(h *Handler) { h.rateLimiter = rl }
}

// WithMetricsRegistry sets the Prometheus registry serving /metrics.
// Handler metrics are registered on it.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(h *Handler) {
		h.registry = reg
		h.metrics = NewMetrics(reg)
	}
}

// WithHealthChecker sets the health checker behind /healthz.
func WithHealthChecker(hc *HealthChecker) Option {
	return func(h *Handler) { h.healthChecker = hc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithVersion sets the version string rendered in the page footer.
func WithVersion(v string) Option {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates the handler and parses the embedded page templates.
func NewHandler(opts ...Option) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	h := &Handler{
		logger:  slog.Default(),
		tmpl:    tmpl,
		version: "dev",
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.registry = prometheus.NewRegistry()
		h.metrics = NewMetrics(h.registry)
	}
	return h, nil
}

// Handler returns the full route table wrapped in the middleware chain:
// request ID, real IP, then metrics.
func (h *Handler) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", h.homePage)
	mux.HandleFunc("GET /shop", h.shopPage)
	mux.HandleFunc("GET /product/{slug}", h.productPage)
	mux.HandleFunc("GET /cart", h.cartPage)
	mux.HandleFunc("GET /checkout", h.checkoutPage)
	mux.HandleFunc("GET /account", h.accountPage)
	mux.HandleFunc("GET /orders", h.ordersPage)
	mux.HandleFunc("GET /login", h.loginPage)
	mux.HandleFunc("GET /story", h.storyPage)
	mux.HandleFunc("GET /craft", h.craftPage)
	mux.HandleFunc("GET /thank-you", h.thankYouPage)

	// Catalog API
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{slug}", h.getProduct)

	// Cart API
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PUT /api/cart/items", h.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items", h.removeCartItem)
	mux.HandleFunc("POST /api/cart/clear", h.clearCart)
	mux.HandleFunc("PUT /api/cart/drawer", h.setCartDrawer)

	// Session API
	mux.HandleFunc("GET /api/session", h.getSession)
	mux.HandleFunc("POST /api/session/login", h.login)
	mux.HandleFunc("POST /api/session/signup", h.signup)
	mux.HandleFunc("POST /api/session/logout", h.logout)
	mux.HandleFunc("PATCH /api/session/user", h.updateUser)

	// Checkout + newsletter
	mux.HandleFunc("POST /api/checkout", h.createCheckout)
	subscribe := http.HandlerFunc(h.subscribeNewsletter)
	if h.rateLimiter != nil {
		mux.Handle("POST /api/newsletter/subscribe", h.rateLimiter.Middleware(subscribe))
	} else {
		mux.Handle("POST /api/newsletter/subscribe", subscribe)
	}

	// Operational endpoints
	if h.healthChecker != nil {
		mux.Handle("GET /healthz", h.healthChecker.Handler())
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	var handler http.Handler = mux
	handler = MetricsMiddleware(h.metrics)(handler)
	handler = RealIPMiddleware(handler)
	handler = RequestIDMiddleware(h.logger)(handler)
	return handler
}
