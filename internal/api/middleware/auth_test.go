package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogkit/catalog-api/internal/api/middleware"
	"github.com/catalogkit/catalog-api/internal/api/shared"
	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/service/auth"
)

// stubTokenService verifies exactly one known token string.
type stubTokenService struct {
	validToken string
	identity   *domain.Identity
}

func (s *stubTokenService) IssueToken(
	ctx context.Context, subjectID string, roles []domain.Role,
) (string, error) {
	return s.validToken, nil
}

func (s *stubTokenService) VerifyToken(
	ctx context.Context, tokenString string,
) (*domain.Identity, error) {
	if tokenString == "" {
		return nil, auth.ErrMissingToken
	}
	if tokenString != s.validToken {
		return nil, auth.ErrInvalidToken
	}
	return s.identity, nil
}

func newGateTestSetup(enabled bool) (*middleware.AuthMiddleware, *middleware.RouteRegistry, *stubTokenService) {
	tokens := &stubTokenService{
		validToken: "good-token",
		identity: &domain.Identity{
			Subject: "9c5923a7-0cd4-4e0f-b04a-7cc7a6a2b129",
			Roles:   []domain.Role{domain.RoleUser},
		},
	}
	registry := middleware.NewRouteRegistry()
	gate := middleware.NewAuthMiddleware(tokens, registry, enabled)
	return gate, registry, tokens
}

// identityEcho records whether the handler ran and which identity it saw.
func identityEcho(sawIdentity **domain.Identity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := shared.IdentityFromContext(r.Context()); ok {
			*sawIdentity = identity
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateGate(t *testing.T) {
	t.Parallel()

	const routeKey = "GET /v1/services"

	t.Run("disabled gate passes without token", func(t *testing.T) {
		t.Parallel()

		gate, registry, _ := newGateTestSetup(false)
		registry.Register(routeKey, middleware.RouteMeta{})

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate(routeKey)(identityEcho(&saw)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/services", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, saw)
	})

	t.Run("public route bypasses verification", func(t *testing.T) {
		t.Parallel()

		gate, registry, _ := newGateTestSetup(true)
		registry.Register(routeKey, middleware.RouteMeta{Public: true})

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate(routeKey)(identityEcho(&saw)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/services", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		t.Parallel()

		gate, registry, _ := newGateTestSetup(true)
		registry.Register(routeKey, middleware.RouteMeta{})

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate(routeKey)(identityEcho(&saw)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/services", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, saw)

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "User is not authenticated", body.Error)
	})

	t.Run("malformed authorization header is rejected", func(t *testing.T) {
		t.Parallel()

		gate, registry, _ := newGateTestSetup(true)
		registry.Register(routeKey, middleware.RouteMeta{})

		req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate(routeKey)(identityEcho(&saw)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		t.Parallel()

		gate, registry, _ := newGateTestSetup(true)
		registry.Register(routeKey, middleware.RouteMeta{})

		req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
		req.Header.Set("Authorization", "Bearer bad-token")

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate(routeKey)(identityEcho(&saw)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches the identity", func(t *testing.T) {
		t.Parallel()

		gate, registry, tokens := newGateTestSetup(true)
		registry.Register(routeKey, middleware.RouteMeta{})

		req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate(routeKey)(identityEcho(&saw)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, saw)
		assert.Equal(t, tokens.identity.Subject, saw.Subject)
	})

	t.Run("unregistered route requires authentication", func(t *testing.T) {
		t.Parallel()

		gate, _, _ := newGateTestSetup(true)

		var saw *domain.Identity
		rec := httptest.NewRecorder()
		gate.Authenticate("GET /v1/unregistered")(identityEcho(&saw)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unregistered", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
