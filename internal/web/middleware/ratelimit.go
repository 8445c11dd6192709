package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitMessage is returned with 429 responses.
const RateLimitMessage = "Too many requests from this IP, please try again later."

// RateLimit allows at most requests per window for each client IP. The key is
// r.RemoteAddr, so TrustedRealIP must run first when behind a proxy.
// onLimited, if non-nil, is called for every rejected request.
func RateLimit(requests int, window time.Duration, onLimited func()) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if onLimited != nil {
				onLimited()
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": RateLimitMessage})
		}),
	)
}
