package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/catalogkit/catalog-api/internal/api"
	apimiddleware "github.com/catalogkit/catalog-api/internal/api/middleware"
	"github.com/catalogkit/catalog-api/internal/domain"
)

// routeSpec couples a route's method, pattern, handler and access
// metadata so registration and the metadata registry cannot drift
// apart.
type routeSpec struct {
	method  string
	pattern string
	handler http.HandlerFunc
	meta    apimiddleware.RouteMeta
}

// setupRouter builds the application router: global middleware, the
// route metadata registry and the per-route authentication and
// authorization gates.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.tokens)
	serviceHandler := api.NewServiceHandler(app.catalog)
	versionHandler := api.NewVersionHandler(app.catalog)

	routes := []routeSpec{
		{"POST", "/v1/auth/generate-token", authHandler.GenerateToken,
			apimiddleware.RouteMeta{Public: true}},
		{"GET", "/v1/auth/public-endpoint", authHandler.PublicEndpoint,
			apimiddleware.RouteMeta{Public: true}},
		{"GET", "/v1/auth/admin-endpoint", authHandler.AdminEndpoint,
			apimiddleware.RouteMeta{Roles: []domain.Role{domain.RoleAdmin}}},
		{"GET", "/v1/auth/user-endpoint", authHandler.UserEndpoint,
			apimiddleware.RouteMeta{Roles: []domain.Role{domain.RoleUser}}},
		{"GET", "/v1/auth/user-admin-endpoint", authHandler.UserAdminEndpoint,
			apimiddleware.RouteMeta{Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}},

		{"POST", "/v1/services", serviceHandler.CreateService, apimiddleware.RouteMeta{}},
		{"GET", "/v1/services", serviceHandler.ListServices, apimiddleware.RouteMeta{}},
		{"GET", "/v1/services/{serviceId}", serviceHandler.GetService, apimiddleware.RouteMeta{}},
		{"PATCH", "/v1/services/{serviceId}", serviceHandler.UpdateService, apimiddleware.RouteMeta{}},
		{"DELETE", "/v1/services/{serviceId}", serviceHandler.DeleteService, apimiddleware.RouteMeta{}},

		{"POST", "/v1/services/{serviceId}/versions", versionHandler.CreateVersion, apimiddleware.RouteMeta{}},
		{"GET", "/v1/services/{serviceId}/versions", versionHandler.ListVersions, apimiddleware.RouteMeta{}},
		{"GET", "/v1/services/{serviceId}/versions/{versionId}", versionHandler.GetVersion, apimiddleware.RouteMeta{}},
		{"PATCH", "/v1/services/{serviceId}/versions/{versionId}", versionHandler.UpdateVersion, apimiddleware.RouteMeta{}},
		{"DELETE", "/v1/services/{serviceId}/versions/{versionId}", versionHandler.DeleteVersion, apimiddleware.RouteMeta{}},
	}

	registry := apimiddleware.NewRouteRegistry()
	for _, route := range routes {
		registry.Register(apimiddleware.RouteKey(route.method, route.pattern), route.meta)
	}

	authGate := apimiddleware.NewAuthMiddleware(app.tokens, registry, app.config.Auth.Enabled)
	rolesGate := apimiddleware.NewRolesMiddleware(registry, app.config.Auth.Enabled)

	for _, route := range routes {
		key := apimiddleware.RouteKey(route.method, route.pattern)
		r.With(authGate.Authenticate(key), rolesGate.Authorize(key)).
			Method(route.method, route.pattern, route.handler)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
