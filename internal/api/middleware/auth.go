package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"library-store/internal/auth"
	"library-store/internal/config"
)

var (
	errMissingAuthHeader = errors.New("missing Authorization header")
	errMalformedHeader   = errors.New("invalid Authorization header format")
)

// AuthMiddleware resolves the bearer token into a principal stored on the
// request context. With authentication disabled every request carries the
// development principal.
func AuthMiddleware(cfg config.AuthConfig, tokens *auth.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("component", "AuthMiddleware")

	if !cfg.Enabled {
		logger.Warn("Authentication is disabled, requests run with every role")
		dev := auth.DevelopmentPrincipal()
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), dev)))
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticate(r, tokens)
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected unauthenticated request", slog.String("path", r.URL.Path), slog.Any("error", err))
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

func authenticate(r *http.Request, tokens *auth.TokenService) (*auth.Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingAuthHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errMalformedHeader
	}
	return tokens.Parse(strings.TrimSpace(parts[1]))
}
