package rate_limiter

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"taxi-dispatch/pkg/logger"
)

const rateLimitedBody = `{"error":"rate limit exceeded, try again later"}`

// Middleware отклоняет запрос с 429, когда в бакете нет токена.
// rateLimiterQPS уходит клиенту в X-RateLimit-Limit.
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlimiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			RejectedTotal.WithLabelValues(r.Method, handlerPath).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(rateLimitedBody)); err != nil {
				log.Error("failed to write rate limit response",
					logger.NewField("route", handlerPath),
					logger.NewField("error", err),
				)
			}
		})
	}
}
