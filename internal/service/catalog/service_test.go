package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/platform/memory"
	"github.com/catalogkit/catalog-api/internal/service/catalog"
	"github.com/catalogkit/catalog-api/internal/store"
)

func newTestCatalog(t *testing.T) *catalog.CatalogService {
	t.Helper()

	cat := memory.NewCatalog()
	return catalog.NewCatalogService(cat.Services(), cat.Versions(), nil)
}

func TestCreateServiceSeedsInitialVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	created, err := svc.CreateService(ctx, "Priority Telephone", "Banking preference")
	require.NoError(t, err)
	assert.Equal(t, 1, created.NoOfVersions)

	versions, err := svc.ListVersions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, domain.InitialVersionName, versions[0].Name)
	assert.Equal(t, "Initial version of Priority Telephone", versions[0].Overview)
}

func TestCreateServiceValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	_, err := svc.CreateService(ctx, "", "description")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateService(ctx, "name", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateServiceAllowsDuplicateNames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	first, err := svc.CreateService(ctx, "duplicate", "first")
	require.NoError(t, err)
	second, err := svc.CreateService(ctx, "duplicate", "second")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestListServices(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	t.Run("empty catalog is not found", func(t *testing.T) {
		_, err := svc.ListServices(ctx, catalog.ListParams{})
		assert.ErrorIs(t, err, store.ErrServiceNotFound)
	})

	for i := 0; i < 25; i++ {
		_, err := svc.CreateService(ctx,
			fmt.Sprintf("service-%02d", i), "a catalog entry")
		require.NoError(t, err)
	}

	t.Run("defaults to page 1 with 20 items", func(t *testing.T) {
		page, err := svc.ListServices(ctx, catalog.ListParams{})
		require.NoError(t, err)
		assert.Len(t, page.Services, 20)
		assert.Equal(t, catalog.Pagination{
			CurPage:    1,
			PageSize:   20,
			TotalPages: 2,
			TotalItems: 25,
		}, page.Pagination)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		page, err := svc.ListServices(ctx, catalog.ListParams{PageNumber: 2})
		require.NoError(t, err)
		assert.Len(t, page.Services, 5)
		assert.Equal(t, 2, page.Pagination.CurPage)
	})

	t.Run("page past the end is empty but not an error", func(t *testing.T) {
		page, err := svc.ListServices(ctx, catalog.ListParams{PageNumber: 9})
		require.NoError(t, err)
		assert.Empty(t, page.Services)
		assert.Equal(t, 25, page.Pagination.TotalItems)
	})

	t.Run("no match at all is not found", func(t *testing.T) {
		_, err := svc.ListServices(ctx, catalog.ListParams{SearchTerm: "zzz-nothing"})
		assert.ErrorIs(t, err, store.ErrServiceNotFound)
	})

	t.Run("name sort ascending", func(t *testing.T) {
		page, err := svc.ListServices(ctx, catalog.ListParams{
			Order:  store.SortAsc,
			SortBy: store.SortByName,
		})
		require.NoError(t, err)
		assert.Equal(t, "service-00", page.Services[0].Name)
	})

	t.Run("invalid order rejected", func(t *testing.T) {
		_, err := svc.ListServices(ctx, catalog.ListParams{Order: "SIDEWAYS"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid sort field rejected", func(t *testing.T) {
		_, err := svc.ListServices(ctx, catalog.ListParams{SortBy: "updated_at"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative page rejected", func(t *testing.T) {
		_, err := svc.ListServices(ctx, catalog.ListParams{PageNumber: -1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	created, err := svc.CreateService(ctx, "before", "unchanged")
	require.NoError(t, err)

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := svc.UpdateService(ctx, created.ID, domain.ServiceUpdate{})
		assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
	})

	t.Run("partial update applies and refreshes", func(t *testing.T) {
		name := "after"
		updated, err := svc.UpdateService(ctx, created.ID, domain.ServiceUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Name)
		assert.Equal(t, "unchanged", updated.Description)
		assert.Equal(t, 1, updated.NoOfVersions)
	})

	t.Run("unknown service is not found", func(t *testing.T) {
		name := "x"
		_, err := svc.UpdateService(ctx, uuid.New(), domain.ServiceUpdate{Name: &name})
		assert.ErrorIs(t, err, store.ErrServiceNotFound)
	})
}

func TestDeleteServiceCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	created, err := svc.CreateService(ctx, "doomed", "to be removed")
	require.NoError(t, err)
	_, err = svc.CreateVersion(ctx, created.ID, "v2", "second")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(ctx, created.ID))

	_, err = svc.GetService(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrServiceNotFound)

	_, err = svc.ListVersions(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrVersionNotFound)

	assert.ErrorIs(t, svc.DeleteService(ctx, created.ID), store.ErrServiceNotFound)
}

func TestVersionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestCatalog(t)

	created, err := svc.CreateService(ctx, "payments", "handles payments")
	require.NoError(t, err)

	t.Run("create against unknown service fails", func(t *testing.T) {
		_, err := svc.CreateVersion(ctx, uuid.New(), "v2", "second")
		assert.ErrorIs(t, err, store.ErrServiceNotFound)
	})

	version, err := svc.CreateVersion(ctx, created.ID, "v2", "second")
	require.NoError(t, err)

	t.Run("version count reflects additions", func(t *testing.T) {
		got, err := svc.GetService(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.NoOfVersions)
	})

	t.Run("get and update", func(t *testing.T) {
		got, err := svc.GetVersion(ctx, version.ID)
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Name)

		_, err = svc.UpdateVersion(ctx, version.ID, domain.VersionUpdate{})
		assert.ErrorIs(t, err, domain.ErrEmptyUpdate)

		overview := "patched"
		updated, err := svc.UpdateVersion(ctx, version.ID,
			domain.VersionUpdate{Overview: &overview})
		require.NoError(t, err)
		assert.Equal(t, "patched", updated.Overview)
	})

	t.Run("delete leaves the initial version untouchable", func(t *testing.T) {
		require.NoError(t, svc.DeleteVersion(ctx, created.ID, version.ID))

		versions, err := svc.ListVersions(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, versions, 1)

		err = svc.DeleteVersion(ctx, created.ID, versions[0].ID)
		assert.ErrorIs(t, err, store.ErrLastVersion)
	})
}
