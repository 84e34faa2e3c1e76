package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/config"
)

// MsgTooManyRequests is the error body written when the limiter rejects a
// request.
const MsgTooManyRequests = "too many requests"

// RateLimit returns middleware that applies a process-wide token bucket to
// inbound requests. Requests over the limit get a 429 with a JSON error body.
// A zero RequestsPerSecond disables limiting.
func RateLimit(cfg config.RateLimitConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if cfg.RequestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.WarnContext(r.Context(), "request rate limited",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", "1")
				dto.WriteError(w, r, http.StatusTooManyRequests, MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
