// Package memory provides an in-memory implementation of the catalog
// store interfaces. It backs unit tests and the database-free development
// mode. A single mutex serializes every operation, which makes the
// compound operations (create-with-initial-version, cascading delete,
// guarded version delete) naturally atomic.
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/store"
)

// Catalog holds the shared in-memory state behind the service and
// version store views.
type Catalog struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*domain.Service
	versions map[uuid.UUID]*domain.Version
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		services: make(map[uuid.UUID]*domain.Service),
		versions: make(map[uuid.UUID]*domain.Version),
	}
}

// Services returns the store.ServiceStore view over the catalog.
func (c *Catalog) Services() store.ServiceStore {
	return &serviceStore{catalog: c}
}

// Versions returns the store.VersionStore view over the catalog.
func (c *Catalog) Versions() store.VersionStore {
	return &versionStore{catalog: c}
}

// liveVersionCount counts non-deleted versions of a service.
// Callers must hold the mutex.
func (c *Catalog) liveVersionCount(serviceID uuid.UUID) int {
	count := 0
	for _, v := range c.versions {
		if v.ServiceID == serviceID && !v.IsDeleted() {
			count++
		}
	}
	return count
}

// sortServices orders matched services by the requested field and
// direction, tie-breaking on id so pagination stays deterministic.
func sortServices(matched []domain.Service, params store.ListServicesParams) {
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less, equal bool
		switch params.SortBy {
		case store.SortByName:
			less = a.Name < b.Name
			equal = a.Name == b.Name
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
			equal = a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			return a.ID.String() < b.ID.String()
		}
		if params.Order == store.SortDesc {
			return !less
		}
		return less
	})
}
