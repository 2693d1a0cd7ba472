// Package middleware implements the access-control gates that guard
// every inbound request: authentication (token verification) followed by
// authorization (role subset check), both driven by the static route
// metadata registry.
package middleware

import (
	"net/http"
	"strings"

	"github.com/catalogkit/catalog-api/internal/api/shared"
	"github.com/catalogkit/catalog-api/internal/service/auth"
)

// unauthenticatedMessage is the client-facing message for every
// authentication failure; the specific cause only reaches the logs.
const unauthenticatedMessage = "User is not authenticated"

// AuthMiddleware is the authentication gate. It verifies bearer tokens
// on every non-public route and attaches the decoded identity to the
// request context for the authorization gate and handlers.
type AuthMiddleware struct {
	tokens  auth.TokenService
	routes  *RouteRegistry
	enabled bool
}

// NewAuthMiddleware creates the authentication gate. When enabled is
// false the gate passes every request through unmodified (diagnostic/dev
// mode).
func NewAuthMiddleware(
	tokens auth.TokenService,
	routes *RouteRegistry,
	enabled bool,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		routes:  routes,
		enabled: enabled,
	}
}

// extractBearerToken pulls the token out of an "Authorization: Bearer
// <token>" header. Any other scheme, or a missing header, yields no
// token.
func extractBearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Authenticate returns the authentication middleware for the route
// registered under routeKey. Public routes pass through without any
// verification attempt; all others must present a verifiable bearer
// token.
func (m *AuthMiddleware) Authenticate(routeKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			if m.routes.Lookup(routeKey).Public {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearerToken(r)
			identity, err := m.tokens.VerifyToken(r.Context(), token)
			if err != nil {
				shared.RespondWithErrorAndLog(
					w, r,
					http.StatusUnauthorized,
					unauthenticatedMessage,
					err,
				)
				return
			}

			ctx := shared.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
