// Package catalog implements the business rules governing services and
// their versions: creation seeds exactly one initial version, reads
// exclude soft-deleted records, service deletion cascades to versions,
// and a service can never be stripped of its last version.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/platform/logger"
	"github.com/catalogkit/catalog-api/internal/store"
)

// DefaultPageSize is applied when a listing request does not specify one.
const DefaultPageSize = 20

// Pagination describes the position of a returned page within the full
// result set.
type Pagination struct {
	CurPage    int `json:"cur_page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// ServicePage is one page of services plus its pagination metadata.
type ServicePage struct {
	Services   []domain.Service
	Pagination Pagination
}

// ListParams controls service listings. Zero values fall back to page 1,
// the default page size, descending creation-time order.
type ListParams struct {
	PageNumber int
	PageSize   int
	SearchTerm string
	Order      store.SortOrder
	SortBy     store.ServiceSortField
}

// normalize applies defaults and validates the explicit values.
func (p ListParams) normalize() (store.ListServicesParams, error) {
	if p.PageNumber == 0 {
		p.PageNumber = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageNumber < 1 {
		return store.ListServicesParams{}, fmt.Errorf(
			"%w: page number must be >= 1", domain.ErrValidation)
	}
	if p.PageSize < 1 {
		return store.ListServicesParams{}, fmt.Errorf(
			"%w: page size must be >= 1", domain.ErrValidation)
	}

	switch p.Order {
	case "":
		p.Order = store.SortDesc
	case store.SortAsc, store.SortDesc:
	default:
		return store.ListServicesParams{}, fmt.Errorf(
			"%w: order must be ASC or DESC", domain.ErrValidation)
	}

	switch p.SortBy {
	case "":
		p.SortBy = store.SortByCreatedAt
	case store.SortByName, store.SortByCreatedAt:
	default:
		return store.ListServicesParams{}, fmt.Errorf(
			"%w: sortBy must be name or created_at", domain.ErrValidation)
	}

	return store.ListServicesParams{
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		SearchTerm: p.SearchTerm,
		Order:      p.Order,
		SortBy:     p.SortBy,
	}, nil
}

// CatalogService coordinates the consistency rules over the catalog
// stores. It holds no state of its own; the stores are the only shared
// mutable resource.
type CatalogService struct {
	services store.ServiceStore
	versions store.VersionStore
	logger   *slog.Logger
}

// NewCatalogService creates the consistency engine over the given stores.
// If log is nil, the default logger is used.
func NewCatalogService(
	services store.ServiceStore,
	versions store.VersionStore,
	log *slog.Logger,
) *CatalogService {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogService{
		services: services,
		versions: versions,
		logger:   log.With(slog.String("component", "catalog_service")),
	}
}

// CreateService validates the fields, then atomically creates the
// service together with its seed "Initial Version". Duplicate names are
// permitted. Returns the created service with NoOfVersions set to 1.
func (c *CatalogService) CreateService(
	ctx context.Context,
	name, description string,
) (*domain.Service, error) {
	svc, err := domain.NewService(name, description)
	if err != nil {
		return nil, err
	}

	initial := svc.InitialVersion()
	if err := c.services.CreateWithInitialVersion(ctx, svc, initial); err != nil {
		return nil, err
	}

	svc.NoOfVersions = 1
	return svc, nil
}

// GetService returns the non-deleted service with the given id, with its
// version count computed at read time.
func (c *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return c.services.GetByID(ctx, id)
}

// ListServices returns one page of non-deleted services with pagination
// metadata. Returns store.ErrServiceNotFound when no service matches the
// filter at all; a page number past the end of a non-empty result set
// yields an empty page with valid metadata instead.
func (c *CatalogService) ListServices(
	ctx context.Context,
	params ListParams,
) (*ServicePage, error) {
	storeParams, err := params.normalize()
	if err != nil {
		return nil, err
	}

	services, total, err := c.services.List(ctx, storeParams)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no services found", store.ErrServiceNotFound)
	}

	return &ServicePage{
		Services: services,
		Pagination: Pagination{
			CurPage:    storeParams.PageNumber,
			PageSize:   storeParams.PageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(storeParams.PageSize))),
			TotalItems: total,
		},
	}, nil
}

// UpdateService applies a partial update to a non-deleted service and
// returns the refreshed entity. Rejects an empty update payload.
func (c *CatalogService) UpdateService(
	ctx context.Context,
	id uuid.UUID,
	update domain.ServiceUpdate,
) (*domain.Service, error) {
	if update.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	if err := c.services.Update(ctx, id, update); err != nil {
		return nil, err
	}

	return c.services.GetByID(ctx, id)
}

// DeleteService soft-deletes a service and cascades the deletion to all
// of its versions. Both succeed or neither does.
func (c *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return c.services.SoftDeleteCascade(ctx, id)
}

// CreateVersion creates a new version for an existing, non-deleted
// service. Returns store.ErrServiceNotFound if the owning service is
// absent or deleted.
func (c *CatalogService) CreateVersion(
	ctx context.Context,
	serviceID uuid.UUID,
	name, overview string,
) (*domain.Version, error) {
	if _, err := c.services.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}

	version, err := domain.NewVersion(serviceID, name, overview)
	if err != nil {
		return nil, err
	}

	if err := c.versions.Create(ctx, version); err != nil {
		// The store reports a missing or deleted owner as an invalid
		// entity; to the caller that is simply an absent service.
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, store.ErrServiceNotFound
		}
		return nil, err
	}

	return version, nil
}

// ListVersions returns all non-deleted versions of a service. A live
// service always owns at least one version, so an empty result proves
// the service id is invalid or deleted and surfaces as not found.
func (c *CatalogService) ListVersions(
	ctx context.Context,
	serviceID uuid.UUID,
) ([]domain.Version, error) {
	versions, err := c.versions.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: no versions found for the service", store.ErrVersionNotFound)
	}
	return versions, nil
}

// GetVersion returns the non-deleted version with the given id.
func (c *CatalogService) GetVersion(
	ctx context.Context,
	versionID uuid.UUID,
) (*domain.Version, error) {
	return c.versions.GetByID(ctx, versionID)
}

// UpdateVersion applies a partial update to a non-deleted version and
// returns the refreshed entity. Rejects an empty update payload.
func (c *CatalogService) UpdateVersion(
	ctx context.Context,
	versionID uuid.UUID,
	update domain.VersionUpdate,
) (*domain.Version, error) {
	if update.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	if err := c.versions.Update(ctx, versionID, update); err != nil {
		return nil, err
	}

	return c.versions.GetByID(ctx, versionID)
}

// DeleteVersion soft-deletes a version unless it is the last non-deleted
// version of its service, in which case it returns store.ErrLastVersion
// and performs no mutation. The store executes the sibling count and the
// delete atomically, so concurrent deletes cannot break the
// minimum-one-version rule.
func (c *CatalogService) DeleteVersion(
	ctx context.Context,
	serviceID, versionID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	err := c.versions.SoftDeleteGuarded(ctx, serviceID, versionID)
	if err != nil {
		return err
	}

	log.Debug("version deleted",
		slog.String("service_id", serviceID.String()),
		slog.String("version_id", versionID.String()))
	return nil
}
