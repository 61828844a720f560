// internal/adapters/in/http/middleware/ratelimit.go
package middleware

import (
	"net"
	"net/http"
	"time"

	"narratives-solana/internal/adapters/in/http/handlers/common"
	"narratives-solana/internal/platform/logger"
	"narratives-solana/internal/platform/metrics"
	"narratives-solana/internal/platform/ratelimiter"
)

// RateLimit rejects requests with 429 once the client IP has used up its
// bucket. A nil limiter disables the check.
func RateLimit(l *ratelimiter.ClientLimiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.Allow(ip, time.Now()) {
				if m != nil {
					m.RateLimitedRequests.Inc()
				}
				logger.Warn("[ratelimit] rejected", "remote_ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				common.WriteError(w, http.StatusTooManyRequests, common.MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. After chi's RealIP middleware
// RemoteAddr may already be a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
