package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogkit/catalog-api/internal/api"
)

func generateToken(t *testing.T, server *httptest.Server, roles []string) string {
	t.Helper()

	resp, body := doJSON(t, server, http.MethodPost, "/v1/auth/generate-token", "",
		map[string]any{"user_id": uuid.New().String(), "roles": roles})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var token api.TokenResponse
	require.NoError(t, json.Unmarshal(body, &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestGenerateTokenEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, true)

	t.Run("issues a token for valid input", func(t *testing.T) {
		token := generateToken(t, server, []string{"user", "admin"})
		assert.NotEmpty(t, token)
	})

	t.Run("empty role list is accepted", func(t *testing.T) {
		token := generateToken(t, server, []string{})
		assert.NotEmpty(t, token)
	})

	t.Run("rejects a non-uuid user id", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodPost, "/v1/auth/generate-token", "",
			map[string]any{"user_id": "charlie", "roles": []string{"user"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodPost, "/v1/auth/generate-token", "",
			map[string]any{"user_id": uuid.New().String(), "roles": []string{"root"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAccessControlMatrix(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, true)

	adminToken := generateToken(t, server, []string{"admin"})
	userToken := generateToken(t, server, []string{"user"})
	bothToken := generateToken(t, server, []string{"user", "admin"})
	noneToken := generateToken(t, server, []string{})

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"public endpoint without token", "/v1/auth/public-endpoint", "", http.StatusOK},
		{"public endpoint with token", "/v1/auth/public-endpoint", userToken, http.StatusOK},

		{"admin endpoint without token", "/v1/auth/admin-endpoint", "", http.StatusUnauthorized},
		{"admin endpoint with garbage token", "/v1/auth/admin-endpoint", "garbage", http.StatusUnauthorized},
		{"admin endpoint as user", "/v1/auth/admin-endpoint", userToken, http.StatusForbidden},
		{"admin endpoint as admin", "/v1/auth/admin-endpoint", adminToken, http.StatusOK},
		{"admin endpoint with both roles", "/v1/auth/admin-endpoint", bothToken, http.StatusOK},
		{"admin endpoint with no roles", "/v1/auth/admin-endpoint", noneToken, http.StatusForbidden},

		{"user endpoint as user", "/v1/auth/user-endpoint", userToken, http.StatusOK},
		{"user endpoint as admin", "/v1/auth/user-endpoint", adminToken, http.StatusForbidden},

		{"combined endpoint as user only", "/v1/auth/user-admin-endpoint", userToken, http.StatusForbidden},
		{"combined endpoint as admin only", "/v1/auth/user-admin-endpoint", adminToken, http.StatusForbidden},
		{"combined endpoint with both roles", "/v1/auth/user-admin-endpoint", bothToken, http.StatusOK},

		{"catalog route requires authentication", "/v1/services", "", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, body := doJSON(t, server, http.MethodGet, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, resp.StatusCode, string(body))

			switch tc.want {
			case http.StatusUnauthorized:
				var errBody map[string]string
				require.NoError(t, json.Unmarshal(body, &errBody))
				assert.Equal(t, "User is not authenticated", errBody["error"])
			case http.StatusForbidden:
				var errBody map[string]string
				require.NoError(t, json.Unmarshal(body, &errBody))
				assert.Equal(t, "Insufficient roles to access the resource", errBody["error"])
			}
		})
	}
}

// TestCatalogRoutesPassAuthorizationWithoutRoles exercises the
// permissive default: catalog routes declare no roles, so any
// authenticated identity may use them regardless of its role set.
func TestCatalogRoutesPassAuthorizationWithoutRoles(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, true)
	noneToken := generateToken(t, server, []string{})

	created := createService(t, server, noneToken, "Open Access", "No role needed")
	assert.Equal(t, 1, created.NoOfVersions)

	resp, _ := doJSON(t, server, http.MethodGet,
		"/v1/services/"+created.ID, noneToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
