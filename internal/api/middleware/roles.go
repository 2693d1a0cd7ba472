package middleware

import (
	"net/http"

	"github.com/catalogkit/catalog-api/internal/api/shared"
)

// forbiddenMessage is the client-facing message for authorization
// failures.
const forbiddenMessage = "Insufficient roles to access the resource"

// RolesMiddleware is the authorization gate. It runs after the
// authentication gate and grants access iff every role the route
// requires is present on the identity's role set. Extra roles on the
// identity never disqualify it.
type RolesMiddleware struct {
	routes  *RouteRegistry
	enabled bool
}

// NewRolesMiddleware creates the authorization gate. When enabled is
// false the gate passes every request through unmodified, mirroring the
// authentication gate.
func NewRolesMiddleware(routes *RouteRegistry, enabled bool) *RolesMiddleware {
	return &RolesMiddleware{
		routes:  routes,
		enabled: enabled,
	}
}

// Authorize returns the authorization middleware for the route
// registered under routeKey. Routes that declare no roles pass
// unconditionally (permissive default, see RouteMeta).
func (m *RolesMiddleware) Authorize(routeKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			required := m.routes.Lookup(routeKey).Roles
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			// The authentication gate should have attached an identity;
			// if it did not, deny rather than assume.
			identity, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusForbidden, forbiddenMessage)
				return
			}

			if !identity.HasAllRoles(required) {
				shared.RespondWithError(w, r, http.StatusForbidden, forbiddenMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
