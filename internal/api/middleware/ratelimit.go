package middleware

import (
	"net/http"
	"triviaquiz/internal/common"
	"triviaquiz/internal/platform/ratelimit"

	"github.com/redis/go-redis/v9"
)

// RateLimit applies a fixed-window request cap per client IP, counted in
// Redis so the limit holds across server instances. Run after RealIP.
func RateLimit(client *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := ratelimit.Allow(r.Context(), client, r.RemoteAddr)
			if err != nil {
				// The limiter store being down should not take the API down
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				common.RespondWithError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
