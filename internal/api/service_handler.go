package api

import (
	"net/http"
	"strconv"

	"github.com/catalogkit/catalog-api/internal/api/shared"
	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/service/catalog"
	"github.com/catalogkit/catalog-api/internal/store"
)

// ServiceHandler handles service-related HTTP requests.
type ServiceHandler struct {
	catalog *catalog.CatalogService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(catalogService *catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalogService}
}

// CreateService handles POST /v1/services requests. The created service
// always carries one seed version.
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	svc, err := h.catalog.CreateService(r.Context(), req.Name, req.Description)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ServiceEnvelope{
		Entity: serviceToResponse(svc),
	})
}

// listParamsFromQuery parses the pagination, filter and sort query
// parameters used by the list endpoint. The bracketed parameter names
// (page[number], page[size]) match the original wire format.
func listParamsFromQuery(r *http.Request) (catalog.ListParams, error) {
	query := r.URL.Query()
	params := catalog.ListParams{
		SearchTerm: query.Get("searchTerm"),
		Order:      store.SortOrder(query.Get("order")),
		SortBy:     store.ServiceSortField(query.Get("sortBy")),
	}

	if raw := query.Get("page[number]"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.ErrValidation
		}
		params.PageNumber = n
	}
	if raw := query.Get("page[size]"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.ErrValidation
		}
		params.PageSize = n
	}

	return params, nil
}

// ListServices handles GET /v1/services requests with filtering,
// sorting and pagination.
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	page, err := h.catalog.ListServices(r.Context(), params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	entities := make([]ServiceResponse, len(page.Services))
	for i := range page.Services {
		entities[i] = serviceToResponse(&page.Services[i])
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ServiceListEnvelope{
		Entities: entities,
		Meta:     ListMeta{Pagination: page.Pagination},
	})
}

// GetService handles GET /v1/services/{serviceId} requests.
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "serviceId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	svc, err := h.catalog.GetService(r.Context(), serviceID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ServiceEnvelope{
		Entity: serviceToResponse(svc),
	})
}

// UpdateService handles PATCH /v1/services/{serviceId} requests.
// An empty partial payload is rejected before any store access.
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "serviceId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req UpdateServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	svc, err := h.catalog.UpdateService(r.Context(), serviceID, domain.ServiceUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ServiceEnvelope{
		Entity: serviceToResponse(svc),
	})
}

// DeleteService handles DELETE /v1/services/{serviceId} requests.
// Deletion cascades to every version of the service.
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "serviceId")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.catalog.DeleteService(r.Context(), serviceID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
