package middleware

import "net/http"

// Cors allows any origin: this is a single tenant API, guarded by the API
// key check, and its clients (phone shortcuts, scripts, local dashboards)
// come from anywhere.
func Cors() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers",
				"Accept, Content-Type, Content-Length, Accept-Encoding, X-Api-Key",
			)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")

			next.ServeHTTP(w, r)
		})
	}
}
