package api

import (
	"time"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/service/catalog"
)

// Request payloads

// GenerateTokenRequest defines the payload for the token issuance
// endpoint. Roles may be empty; such a token authenticates but fails
// every role-gated route.
type GenerateTokenRequest struct {
	UserID string   `json:"user_id" validate:"required,uuid"`
	Roles  []string `json:"roles"   validate:"required,dive,oneof=user admin"`
}

// CreateServiceRequest defines the payload for creating a service.
type CreateServiceRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateServiceRequest defines the partial payload for updating a
// service. Absent fields are left unchanged; an entirely empty payload
// is rejected.
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// CreateVersionRequest defines the payload for creating a version.
type CreateVersionRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=255"`
	Overview string `json:"overview" validate:"required,min=1"`
}

// UpdateVersionRequest defines the partial payload for updating a
// version.
type UpdateVersionRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=1,max=255"`
	Overview *string `json:"overview,omitempty" validate:"omitempty,min=1"`
}

// Response payloads. Single entities are wrapped in an "entity"
// envelope, collections in "entities" plus pagination metadata.

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ServiceResponse is the wire representation of a service.
type ServiceResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	NoOfVersions int       `json:"no_of_versions"`
}

// VersionResponse is the wire representation of a version.
type VersionResponse struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	Name      string    `json:"name"`
	Overview  string    `json:"overview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceEnvelope wraps a single service.
type ServiceEnvelope struct {
	Entity ServiceResponse `json:"entity"`
}

// ListMeta carries pagination metadata for list responses.
type ListMeta struct {
	Pagination catalog.Pagination `json:"pagination"`
}

// ServiceListEnvelope wraps a page of services.
type ServiceListEnvelope struct {
	Entities []ServiceResponse `json:"entities"`
	Meta     ListMeta          `json:"meta"`
}

// VersionEnvelope wraps a single version.
type VersionEnvelope struct {
	Entity VersionResponse `json:"entity"`
}

// VersionListEnvelope wraps the versions of one service.
type VersionListEnvelope struct {
	Entities []VersionResponse `json:"entities"`
}

// MessageEnvelope wraps the informational payload of the auth demo
// endpoints.
type MessageEnvelope struct {
	Entity MessageResponse `json:"entity"`
}

// MessageResponse is a plain informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

func serviceToResponse(svc *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:           svc.ID.String(),
		Name:         svc.Name,
		Description:  svc.Description,
		CreatedAt:    svc.CreatedAt,
		UpdatedAt:    svc.UpdatedAt,
		NoOfVersions: svc.NoOfVersions,
	}
}

func versionToResponse(v *domain.Version) VersionResponse {
	return VersionResponse{
		ID:        v.ID.String(),
		ServiceID: v.ServiceID.String(),
		Name:      v.Name,
		Overview:  v.Overview,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
