package web

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter applies a per-client token bucket, keyed by the client IP
// resolved by RealIPMiddleware. It guards the newsletter endpoint, which is
// the one route an anonymous visitor can use to generate outbound traffic.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	interval time.Duration
	metrics  *Metrics
	stop     chan struct{}
	done     chan struct{}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithCleanupInterval overrides how often idle clients are evicted.
func WithCleanupInterval(d time.Duration) RateLimiterOption {
	return func(rl *RateLimiter) { rl.interval = d }
}

// WithClientTTL overrides how long an idle client's bucket is kept.
func WithClientTTL(d time.Duration) RateLimiterOption {
	return func(rl *RateLimiter) { rl.ttl = d }
}

// WithRateLimitMetrics reports the active key count on the given metrics.
func WithRateLimitMetrics(m *Metrics) RateLimiterOption {
	return func(rl *RateLimiter) { rl.metrics = m }
}

// NewRateLimiter creates a limiter allowing limit events per second with
// the given burst, and starts the background cleanup goroutine. Call Stop
// to release it.
func NewRateLimiter(limit rate.Limit, burst int, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    limit,
		burst:    burst,
		ttl:      10 * time.Minute,
		interval: time.Minute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}

	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the client identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
		if rl.metrics != nil {
			rl.metrics.RateLimitKeys.Set(float64(len(rl.clients)))
		}
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// Size returns the number of tracked clients.
func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := IPFromContext(r.Context())
		if key == "" {
			key = r.RemoteAddr
		}
		if !rl.Allow(key) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stop terminates the cleanup goroutine and waits for it to exit.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
	<-rl.done
}

// cleanupLoop evicts clients that have been idle longer than the TTL so
// the map doesn't grow with every visitor ever seen.
func (rl *RateLimiter) cleanupLoop() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.ttl)
			for key, c := range rl.clients {
				if c.lastSeen.Before(cutoff) {
					delete(rl.clients, key)
				}
			}
			if rl.metrics != nil {
				rl.metrics.RateLimitKeys.Set(float64(len(rl.clients)))
			}
			rl.mu.Unlock()
		}
	}
}
