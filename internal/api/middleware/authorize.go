package middleware

import (
	"log/slog"
	"net/http"

	"library-store/internal/auth"
	"library-store/internal/infrastructure/monitoring"
)

// Authorize admits the request only when the principal holds a role that the
// policy grants for op. Rejected requests never reach next.
func Authorize(op auth.Operation, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("component", "Authorize", slog.String("operation", string(op)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				logger.WarnContext(r.Context(), "No principal on request")
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !auth.Allowed(op, principal.Roles) {
				monitoring.RecordAccessDenied(string(op))
				logger.WarnContext(r.Context(), "Access denied",
					slog.Int64("customerID", principal.CustomerID),
					slog.Any("roles", principal.Roles))
				writeJSONError(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
