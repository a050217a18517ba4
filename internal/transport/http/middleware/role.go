package middleware

import (
	"log/slog"
	"net/http"
	"slices"
)

// RequireRole admits requests whose token role is one of allowedRoles. It must
// run after Auth; without claims in context the request is unauthorized.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "", "unauthorized")
				return
			}
			if !slices.Contains(allowedRoles, claims.Role) {
				slog.Info("role check denied", "account_id", claims.AccountID, "role", claims.Role, "path", r.URL.Path)
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
