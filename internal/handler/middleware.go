package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// WindowStore counts hits per key in fixed windows.
type WindowStore interface {
	// Hit records one request for key and returns the count in the current
	// window and the time left until that window resets.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}

// RateLimiter enforces a fixed-window request ceiling per client IP.
type RateLimiter struct {
	store             WindowStore
	max               int64
	window            time.Duration
	trustedProxyCount int
}

// NewRateLimiter allows max requests per window per client IP.
// trustedProxies is the number of reverse proxies in front of the server
// that append to X-Forwarded-For. Zero ignores the header and keys on
// RemoteAddr only.
func NewRateLimiter(store WindowStore, max int, window time.Duration, trustedProxies int) *RateLimiter {
	if trustedProxies < 0 {
		trustedProxies = 0
	}
	return &RateLimiter{
		store:             store,
		max:               int64(max),
		window:            window,
		trustedProxyCount: trustedProxies,
	}
}

// Middleware returns an http.Handler that enforces rate limits. If the
// store is unavailable the request is let through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		count, resetIn, err := rl.store.Hit(r.Context(), ip, rl.window)
		if err != nil {
			slog.Warn("rate limit store unavailable", "ip", ip, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.max - count
		if remaining < 0 {
			remaining = 0
		}
		h := w.Header()
		h.Set("RateLimit-Limit", strconv.FormatInt(rl.max, 10))
		h.Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		h.Set("RateLimit-Reset", retryAfterSeconds(resetIn))

		if count > rl.max {
			h.Set("Retry-After", retryAfterSeconds(resetIn))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Error: "Too many requests from this IP, please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP extracts the real client IP, reading from the rightmost trusted
// proxy position in X-Forwarded-For to prevent spoofing.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		// The rightmost entry added by our infrastructure is at
		// index len(parts) - trustedProxyCount.
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
