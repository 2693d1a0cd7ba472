package api

import (
	"net/http"

	"github.com/catalogkit/catalog-api/internal/api/shared"
	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/service/auth"
)

// AuthHandler handles token issuance and the demonstration endpoints
// showing the access-control gates in action.
type AuthHandler struct {
	tokens auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokens auth.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// GenerateToken handles POST /v1/auth/generate-token requests.
// The route is public: it is how callers obtain their first credential.
func (h *AuthHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var req GenerateTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	roles, err := domain.ParseRoles(req.Roles)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	token, err := h.tokens.IssueToken(r.Context(), req.UserID, roles)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TokenResponse{AccessToken: token})
}

// PublicEndpoint handles GET /v1/auth/public-endpoint requests. It is
// reachable with or without a token even when authentication is on.
func (h *AuthHandler) PublicEndpoint(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageEnvelope{
		Entity: MessageResponse{
			Message: "This is a public endpoint and does not have authentication or authorization",
		},
	})
}

// AdminEndpoint handles GET /v1/auth/admin-endpoint requests. Requires
// the admin role; extra roles on the identity are fine.
func (h *AuthHandler) AdminEndpoint(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageEnvelope{
		Entity: MessageResponse{
			Message: "This is an admin endpoint and requires the user to have an admin role",
		},
	})
}

// UserEndpoint handles GET /v1/auth/user-endpoint requests. Requires the
// user role.
func (h *AuthHandler) UserEndpoint(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageEnvelope{
		Entity: MessageResponse{
			Message: "This is a user endpoint and requires the user to have a user role",
		},
	})
}

// UserAdminEndpoint handles GET /v1/auth/user-admin-endpoint requests.
// Requires both the user and admin roles.
func (h *AuthHandler) UserAdminEndpoint(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageEnvelope{
		Entity: MessageResponse{
			Message: "This is a user and admin endpoint and requires the user to have both the role",
		},
	})
}
