package ratelimit

import (
	"net"
	"net/http"

	"investease-api/internal/handlers"
	"investease-api/internal/observability"

	"go.uber.org/zap"
)

// Middleware rejects requests over the per-client budget with 429.
// Clients are keyed by the host part of RemoteAddr.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !l.Allow(ip) {
				observability.LoggerWithTrace(r.Context()).Warn("rate limit exceeded",
					zap.String("client", ip),
					zap.String("path", r.URL.Path),
					zap.String("request_id", observability.RequestIDFromContext(r.Context())),
				)
				w.Header().Set("Retry-After", "1")
				handlers.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
