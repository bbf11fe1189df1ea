package middleware

import (
	"context"
	"net/http"

	"github.com/innerventory/server/internal/auth"
	"github.com/innerventory/server/internal/http/respond"
	"github.com/innerventory/server/internal/models"
)

const claimsKey contextKey = "claims"

// RequireAuth rejects requests without a valid bearer token and stores the claims in the context.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			claims, err := tokens.Validate(raw)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			logger := LoggerFromContext(r.Context()).With().Str("user_id", claims.UserID()).Logger()
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = logger.WithContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			if !models.HasRole(claims.Role, roles...) {
				respond.Error(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims RequireAuth stored for this request.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
