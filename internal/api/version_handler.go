package api

import (
	"net/http"

	"github.com/catalogkit/catalog-api/internal/api/shared"
	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/service/catalog"
)

// VersionHandler handles version-related HTTP requests. All version
// routes are nested under their owning service.
type VersionHandler struct {
	catalog *catalog.CatalogService
}

// NewVersionHandler creates a new VersionHandler.
func NewVersionHandler(catalogService *catalog.CatalogService) *VersionHandler {
	return &VersionHandler{catalog: catalogService}
}

// CreateVersion handles POST /v1/services/{serviceId}/versions requests.
func (h *VersionHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "serviceId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req CreateVersionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	version, err := h.catalog.CreateVersion(r.Context(), serviceID, req.Name, req.Overview)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, VersionEnvelope{
		Entity: versionToResponse(version),
	})
}

// ListVersions handles GET /v1/services/{serviceId}/versions requests.
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "serviceId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	versions, err := h.catalog.ListVersions(r.Context(), serviceID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	entities := make([]VersionResponse, len(versions))
	for i := range versions {
		entities[i] = versionToResponse(&versions[i])
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VersionListEnvelope{Entities: entities})
}

// GetVersion handles GET /v1/services/{serviceId}/versions/{versionId}
// requests.
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := getPathUUID(r, "versionId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	version, err := h.catalog.GetVersion(r.Context(), versionID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VersionEnvelope{
		Entity: versionToResponse(version),
	})
}

// UpdateVersion handles PATCH /v1/services/{serviceId}/versions/{versionId}
// requests. An empty partial payload is rejected.
func (h *VersionHandler) UpdateVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := getPathUUID(r, "versionId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req UpdateVersionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	version, err := h.catalog.UpdateVersion(r.Context(), versionID, domain.VersionUpdate{
		Name:     req.Name,
		Overview: req.Overview,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VersionEnvelope{
		Entity: versionToResponse(version),
	})
}

// DeleteVersion handles DELETE /v1/services/{serviceId}/versions/{versionId}
// requests. Deleting the sole remaining version of a service is refused
// with a conflict.
func (h *VersionHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "serviceId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	versionID, err := getPathUUID(r, "versionId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.catalog.DeleteVersion(r.Context(), serviceID, versionID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
