package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/store"
)

// versionStore is the store.VersionStore view over an in-memory catalog.
type versionStore struct {
	catalog *Catalog
}

var _ store.VersionStore = (*versionStore)(nil)

// Create implements store.VersionStore.
func (s *versionStore) Create(ctx context.Context, version *domain.Version) error {
	c := s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	svc, ok := c.services[version.ServiceID]
	if !ok || svc.IsDeleted() {
		return store.ErrInvalidEntity
	}

	verCopy := *version
	c.versions[version.ID] = &verCopy
	return nil
}

// GetByID implements store.VersionStore.
func (s *versionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Version, error) {
	c := s.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.versions[id]
	if !ok || v.IsDeleted() {
		return nil, store.ErrVersionNotFound
	}
	result := *v
	return &result, nil
}

// ListByService implements store.VersionStore.
func (s *versionStore) ListByService(
	ctx context.Context,
	serviceID uuid.UUID,
) ([]domain.Version, error) {
	c := s.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	versions := make([]domain.Version, 0)
	for _, v := range c.versions {
		if v.ServiceID == serviceID && !v.IsDeleted() {
			versions = append(versions, *v)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		if versions[i].CreatedAt.Equal(versions[j].CreatedAt) {
			return versions[i].ID.String() < versions[j].ID.String()
		}
		return versions[i].CreatedAt.Before(versions[j].CreatedAt)
	})
	return versions, nil
}

// CountByService implements store.VersionStore.
func (s *versionStore) CountByService(ctx context.Context, serviceID uuid.UUID) (int, error) {
	c := s.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.liveVersionCount(serviceID), nil
}

// Update implements store.VersionStore.
func (s *versionStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.VersionUpdate,
) error {
	c := s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.versions[id]
	if !ok || v.IsDeleted() {
		return store.ErrVersionNotFound
	}

	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.Overview != nil {
		v.Overview = *update.Overview
	}
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDeleteGuarded implements store.VersionStore. The existence check,
// sibling count and delete run under a single lock acquisition, so
// concurrent deletes of the last two versions cannot both pass the count.
func (s *versionStore) SoftDeleteGuarded(
	ctx context.Context,
	serviceID, versionID uuid.UUID,
) error {
	c := s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.versions[versionID]
	if !ok || v.IsDeleted() || v.ServiceID != serviceID {
		return store.ErrVersionNotFound
	}

	if c.liveVersionCount(serviceID) <= 1 {
		return store.ErrLastVersion
	}

	now := time.Now().UTC()
	v.DeletedAt = &now
	return nil
}
