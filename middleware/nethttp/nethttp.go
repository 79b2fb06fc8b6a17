// Package nethttp adapts a floodgate.Limiter to the standard net/http library.
package nethttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jassus213/floodgate"
)

// Middleware wraps an http.Handler so that every request consumes one trigger
// from limiter. All requests share the same counter.
//
// On every decided request the `X-RateLimit-*` headers are added to the
// response. Rejected requests are handed to the configured ErrorHandler.
//
// Example:
//
//	cooldown := floodgate.NewCooldown(100, time.Minute)
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", myHandler)
//	http.ListenAndServe(":8080", nethttp.Middleware(cooldown)(mux))
func Middleware(limiter floodgate.Limiter, options ...floodgate.Option) func(http.Handler) http.Handler {
	cfg := floodgate.NewConfig(options...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := limiter.Allow(r.Context())
			if err != nil {
				cfg.Logger.Errorf("Limiter failed for %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatUint(result.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatUint(result.Remaining, 10))
			resetTimestamp := time.Now().Add(result.ResetAfter).Unix()
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTimestamp, 10))

			if !result.Allowed {
				cfg.Logger.Debugf(
					"Request denied from '%s'. Retry after: %s, Limit: %d",
					r.RemoteAddr, result.ResetAfter, result.Limit,
				)
				cfg.ErrorHandler(w, r, floodgate.ErrorExceeded, result)
				return
			}

			cfg.Logger.Debugf(
				"Request allowed from '%s'. Remaining: %d, Limit: %d",
				r.RemoteAddr, result.Remaining, result.Limit,
			)
			next.ServeHTTP(w, r)
		})
	}
}
