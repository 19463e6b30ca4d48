package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the storefront.
// Pass to components that need to record metrics.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	CartMutations     *prometheus.CounterVec
	CheckoutHandoffs  *prometheus.CounterVec
	NewsletterSignups *prometheus.CounterVec
	RateLimitKeys     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "status"}, // status=ok/error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets, // 5ms to 10s
			},
			[]string{"method"},
		),
		CartMutations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "cart_mutations_total",
				Help:      "Total cart mutations",
			},
			[]string{"op"}, // op=add/update/remove/clear
		),
		CheckoutHandoffs: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "checkout_handoffs_total",
				Help:      "Total checkout hand-off attempts",
			},
			[]string{"result"}, // result=ok/error/empty
		),
		NewsletterSignups: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "newsletter_signups_total",
				Help:      "Total newsletter signup attempts",
			},
			[]string{"result"}, // result=ok/error/rate_limited
		),
		RateLimitKeys: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "storefront",
				Name:      "rate_limit_keys",
				Help:      "Number of active rate limit keys",
			},
		),
	}
}
