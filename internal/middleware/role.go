package middleware

import (
	"fmt"
	"net/http"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/model"
)

// RequireRole returns middleware that enforces the account role.
// Must be applied after Auth middleware.
func RequireRole(required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := auth.AuthFromContext(r.Context())
			if authCtx == nil {
				writeRoleError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
				return
			}

			if authCtx.Role != required {
				writeRoleError(w, http.StatusForbidden, "FORBIDDEN",
					fmt.Sprintf("This action requires the %s role", required))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmployer is a convenience middleware for employer-only routes.
func RequireEmployer() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEmployer)
}

// RequireJobSeeker is a convenience middleware for job seeker-only routes.
func RequireJobSeeker() func(http.Handler) http.Handler {
	return RequireRole(model.RoleJobSeeker)
}

// writeRoleError writes a role-related error response.
func writeRoleError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"error":{"code":"%s","message":"%s"}}`, code, message)))
}
