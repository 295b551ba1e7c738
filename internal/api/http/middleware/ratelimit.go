package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dtroode/premium-server/internal/logger"
	"golang.org/x/time/rate"
)

const msgTooManyRequests = "Too many requests, please try again later."

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits each client IP to a number of requests per window.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	window   time.Duration
	proxies  *TrustedProxies
	logger   *logger.Logger
	now      func() time.Time
}

// NewRateLimiter allows requests per window for each client, refilling evenly.
// Clients are keyed by the address resolved through proxies.
func NewRateLimiter(requests int, window time.Duration, proxies *TrustedProxies, logger *logger.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Every(window / time.Duration(requests)),
		burst:    requests,
		window:   window,
		proxies:  proxies,
		logger:   logger,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, exists := rl.limiters[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = rl.now()

	return cl.limiter
}

// Handler responds with 429 once a client exceeds its allowance.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.proxies.ClientIP(r)

		if !rl.getLimiter(key).AllowN(rl.now(), 1) {
			rl.logger.Warn("Rate limiter: limit exceeded",
				"client", key,
				"method", r.Method,
				"path", r.URL.Path)
			ErrorResponse(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup drops limiters of clients idle for longer than one window.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
