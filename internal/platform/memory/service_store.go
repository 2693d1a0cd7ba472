package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/store"
)

// serviceStore is the store.ServiceStore view over an in-memory catalog.
type serviceStore struct {
	catalog *Catalog
}

var _ store.ServiceStore = (*serviceStore)(nil)

// CreateWithInitialVersion implements store.ServiceStore.
func (s *serviceStore) CreateWithInitialVersion(
	ctx context.Context,
	svc *domain.Service,
	initial *domain.Version,
) error {
	c := s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	svcCopy := *svc
	verCopy := *initial
	c.services[svc.ID] = &svcCopy
	c.versions[initial.ID] = &verCopy
	return nil
}

// GetByID implements store.ServiceStore.
func (s *serviceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	c := s.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	svc, ok := c.services[id]
	if !ok || svc.IsDeleted() {
		return nil, store.ErrServiceNotFound
	}

	result := *svc
	result.NoOfVersions = c.liveVersionCount(id)
	return &result, nil
}

// List implements store.ServiceStore.
func (s *serviceStore) List(
	ctx context.Context,
	params store.ListServicesParams,
) ([]domain.Service, int, error) {
	c := s.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	term := strings.ToLower(params.SearchTerm)
	matched := make([]domain.Service, 0, len(c.services))
	for _, svc := range c.services {
		if svc.IsDeleted() {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(svc.Name), term) &&
			!strings.Contains(strings.ToLower(svc.Description), term) {
			continue
		}
		result := *svc
		result.NoOfVersions = c.liveVersionCount(svc.ID)
		matched = append(matched, result)
	}

	sortServices(matched, params)

	total := len(matched)
	start := params.Offset()
	if start >= total {
		return []domain.Service{}, total, nil
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Update implements store.ServiceStore.
func (s *serviceStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.ServiceUpdate,
) error {
	c := s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	svc, ok := c.services[id]
	if !ok || svc.IsDeleted() {
		return store.ErrServiceNotFound
	}

	if update.Name != nil {
		svc.Name = *update.Name
	}
	if update.Description != nil {
		svc.Description = *update.Description
	}
	svc.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDeleteCascade implements store.ServiceStore. The service and all of
// its versions are marked deleted under one lock acquisition.
func (s *serviceStore) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	c := s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	svc, ok := c.services[id]
	if !ok || svc.IsDeleted() {
		return store.ErrServiceNotFound
	}

	now := time.Now().UTC()
	svc.DeletedAt = &now
	for _, v := range c.versions {
		if v.ServiceID == id && !v.IsDeleted() {
			deletedAt := now
			v.DeletedAt = &deletedAt
		}
	}
	return nil
}
