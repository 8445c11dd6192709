package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/JonMunkholm/pinstore/internal/logging"
)

// Recover turns a panic into a 500 {"error":"Internal server error"} response.
// The panic value and stack are logged; neither is sent to the client.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logging.FromContext(r.Context()).Error("unhandled panic",
				"path", r.URL.Path,
				"panic", rvr,
				"stack", string(debug.Stack()),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
		}()

		next.ServeHTTP(w, r)
	})
}
