package middleware

import (
	"net/http"

	"github.com/mstanic/liftlog/internal/telemetry/tracing"
	"github.com/mstanic/liftlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// AuthMiddlewareHandler checks the X-Api-Key header against the configured
// bcrypt hash. When no hash is configured, all requests pass (local dev).
type AuthMiddlewareHandler struct {
	apiKeyHash   string
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(apiKeyHash string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		apiKeyHash: apiKeyHash,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.apiKeyHash == "" || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "allowed")
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-Api-Key")
			if apiKey == "" || !pkg.CheckPasswordHash(apiKey, h.apiKeyHash) {
				log.Tracef("unauthorized request for path [%s]", r.URL.Path)
				span.SetStatus(codes.Error, "unauthorized")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "authorized")
			next.ServeHTTP(w, r)
		})
	}
}
