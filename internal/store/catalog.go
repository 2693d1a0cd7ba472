package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/catalogkit/catalog-api/internal/domain"
)

// SortOrder is the direction applied to list sorting.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ServiceSortField is a column services may be sorted by.
type ServiceSortField string

const (
	SortByName      ServiceSortField = "name"
	SortByCreatedAt ServiceSortField = "created_at"
)

// ListServicesParams controls filtering, sorting and pagination of
// service listings. Sorting is applied before pagination; ties are broken
// on id so pages are deterministic under equal sort keys.
type ListServicesParams struct {
	// PageNumber is the 1-based page to return.
	PageNumber int

	// PageSize is the number of items per page.
	PageSize int

	// SearchTerm, when non-empty, matches case-insensitively as a
	// substring of either name or description.
	SearchTerm string

	// Order is the sort direction, ascending or descending.
	Order SortOrder

	// SortBy is the column to sort on.
	SortBy ServiceSortField
}

// Offset returns the number of rows to skip for the requested page.
func (p ListServicesParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// ServiceStore defines persistence for catalog services.
// Every read excludes soft-deleted rows.
type ServiceStore interface {
	// CreateWithInitialVersion atomically persists a new service together
	// with its seed version. Both rows are written or neither is.
	CreateWithInitialVersion(ctx context.Context, svc *domain.Service, initial *domain.Version) error

	// GetByID retrieves a non-deleted service by ID with NoOfVersions
	// computed from its non-deleted versions.
	// Returns ErrServiceNotFound if no such service exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// List returns one page of non-deleted services, each with
	// NoOfVersions computed, plus the total number of services matching
	// the filter across all pages.
	List(ctx context.Context, params ListServicesParams) ([]domain.Service, int, error)

	// Update applies the non-nil fields of the partial update to a
	// non-deleted service. Returns ErrServiceNotFound if no such service
	// exists.
	Update(ctx context.Context, id uuid.UUID, update domain.ServiceUpdate) error

	// SoftDeleteCascade soft-deletes a service and all of its versions in
	// a single atomic operation. Returns ErrServiceNotFound if the
	// service does not exist or is already deleted.
	SoftDeleteCascade(ctx context.Context, id uuid.UUID) error
}

// VersionStore defines persistence for service versions.
// Every read excludes soft-deleted rows.
type VersionStore interface {
	// Create persists a new version. Returns ErrInvalidEntity if the
	// owning service row does not exist.
	Create(ctx context.Context, version *domain.Version) error

	// GetByID retrieves a non-deleted version by ID.
	// Returns ErrVersionNotFound if no such version exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Version, error)

	// ListByService returns all non-deleted versions owned by a service.
	// An empty slice is not an error at this layer.
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]domain.Version, error)

	// CountByService returns the number of non-deleted versions owned by
	// a service.
	CountByService(ctx context.Context, serviceID uuid.UUID) (int, error)

	// Update applies the non-nil fields of the partial update to a
	// non-deleted version. Returns ErrVersionNotFound if no such version
	// exists.
	Update(ctx context.Context, id uuid.UUID, update domain.VersionUpdate) error

	// SoftDeleteGuarded soft-deletes a version only if at least one other
	// non-deleted version of the same service remains. The existence
	// check, sibling count and delete execute as one atomic unit so that
	// concurrent deletes cannot strip a service of its last version.
	// Returns ErrVersionNotFound if the version does not exist and
	// ErrLastVersion if it is the sole remaining version.
	SoftDeleteGuarded(ctx context.Context, serviceID, versionID uuid.UUID) error
}
