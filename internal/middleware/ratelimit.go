package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"regimen-tracker/internal/platform/metrics"

	"github.com/juju/ratelimit"
)

// RateLimiter mantiene un token bucket por IP de cliente.
type RateLimiter struct {
	mu       sync.RWMutex
	clients  map[string]*ratelimit.Bucket
	rate     float64
	capacity int64
}

// NewRateLimiter: rate tokens/seg, capacity máximo acumulable. Cada request cuesta 1 token.
func NewRateLimiter(rate float64, capacity int64) *RateLimiter {
	if rate <= 0 {
		rate = 10
	}
	if capacity <= 0 {
		capacity = 100
	}
	return &RateLimiter{
		clients:  make(map[string]*ratelimit.Bucket),
		rate:     rate,
		capacity: capacity,
	}
}

func (rl *RateLimiter) bucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	b, ok := rl.clients[clientIP]
	rl.mu.RUnlock()
	if ok {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok = rl.clients[clientIP]; !ok {
		b = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
		rl.clients[clientIP] = b
		metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
	}
	return b
}

// Cleanup borra los buckets llenos (clientes inactivos) cada interval hasta que ctx termine.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.sweep()
			}
		}
	}()
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.clients {
		if b.Available() == b.Capacity() {
			delete(rl.clients, ip)
		}
	}
	metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
}

// Middleware: /health y /metrics no consumen tokens.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	limit := strconv.FormatInt(rl.capacity, 10)
	rate := strconv.FormatFloat(rl.rate, 'f', -1, 64)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		b := rl.bucket(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", limit)
		w.Header().Set("X-RateLimit-Rate", rate)

		if b.TakeAvailable(1) < 1 {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(b.Available(), 10))
		next.ServeHTTP(w, r)
	})
}

// clientIP usa RemoteAddr (chi RealIP ya lo reescribe desde X-Forwarded-For / X-Real-IP).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
