package middleware

import (
	"net/http"

	"github.com/frahmantamala/project-console/internal/transport"
)

// RequireRole lets a request through only when its principal holds one of
// roles. It must run after Authenticate.
func RequireRole(h *transport.BaseHandler, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				h.WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			h.Logger.Warn("access denied: missing role",
				"user_id", principal.UserID,
				"required_roles", roles,
				"role", principal.Role)
			h.WriteError(w, http.StatusForbidden, "Not enough permissions")
		})
	}
}
