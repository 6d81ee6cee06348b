package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/scm-sandbox/scm-backend/shared/utils"
)

// RateLimiter implements a simple in-memory sliding-window rate limiter,
// keyed by client IP. Edit endpoints sit behind it so a stuck client-side
// refresh loop cannot hammer single-row updates.
type RateLimiter struct {
	requests map[string][]time.Time
	mutex    sync.Mutex
	maxReqs  int
	window   time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		maxReqs:  maxRequests,
		window:   window,
	}
}

// Allow checks if a request from the given IP is allowed
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	var valid []time.Time
	for _, reqTime := range rl.requests[clientIP] {
		if now.Sub(reqTime) < rl.window {
			valid = append(valid, reqTime)
		}
	}

	if len(valid) >= rl.maxReqs {
		return false
	}

	rl.requests[clientIP] = append(valid, now)
	return true
}

// RateLimitMiddleware creates a rate limiting middleware
func RateLimitMiddleware(maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(maxRequests, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			if !limiter.Allow(clientIP) {
				slog.Warn("Rate limit exceeded", "ip", clientIP, "path", r.URL.Path)
				utils.RespondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
