package middleware

import (
	"context"
	"net/http"

	"github.com/frahmantamala/project-console/internal/transport"
	"github.com/frahmantamala/project-console/pkg/logger"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// TokenValidator resolves a bearer token to its principal.
type TokenValidator interface {
	ValidateToken(token string) (*Principal, error)
}

// Authenticate rejects requests without a valid bearer token with 401 and
// otherwise stores the principal in the request context.
func Authenticate(validator TokenValidator, h *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := h.ExtractTokenFromHeader(r)
			if token == "" {
				h.WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			principal, err := validator.ValidateToken(token)
			if err != nil {
				h.Logger.Debug("token validation failed", "error", err)
				h.WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			ctx = logger.With(ctx, "userID", principal.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
