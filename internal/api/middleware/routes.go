package middleware

import (
	"fmt"

	"github.com/catalogkit/catalog-api/internal/domain"
)

// RouteMeta declares the access-control metadata for one route: whether
// it bypasses authentication entirely and which roles it requires.
//
// A route with no declared roles passes authorization unconditionally.
// This is a deliberately permissive default carried over from the
// original system; production deployments should declare roles on every
// protected route.
type RouteMeta struct {
	// Public marks the route as exempt from authentication.
	Public bool

	// Roles is the set of roles that must ALL be present on the
	// authenticated identity.
	Roles []domain.Role
}

// RouteKey builds the registry key for a method and route pattern,
// e.g. RouteKey("GET", "/v1/services/{serviceId}").
func RouteKey(method, pattern string) string {
	return fmt.Sprintf("%s %s", method, pattern)
}

// RouteRegistry is an explicit static mapping from route key to access
// metadata, built once at router registration time. The authentication
// and authorization gates consult it instead of inspecting handlers at
// runtime.
type RouteRegistry struct {
	meta map[string]RouteMeta
}

// NewRouteRegistry creates an empty route registry.
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{meta: make(map[string]RouteMeta)}
}

// Register records the metadata for a route key, replacing any previous
// entry.
func (r *RouteRegistry) Register(key string, meta RouteMeta) {
	r.meta[key] = meta
}

// Lookup returns the metadata for a route key. An unregistered route
// yields the zero value: not public, no required roles, meaning it
// requires authentication but passes authorization.
func (r *RouteRegistry) Lookup(key string) RouteMeta {
	return r.meta[key]
}
