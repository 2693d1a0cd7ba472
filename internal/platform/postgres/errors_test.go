package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/catalogkit/catalog-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{name: "no rows becomes not found", err: sql.ErrNoRows, want: store.ErrNotFound},
		{
			name: "wrapped no rows becomes not found",
			err:  fmt.Errorf("query failed: %w", sql.ErrNoRows),
			want: store.ErrNotFound,
		},
		{
			name: "unique violation becomes duplicate",
			err:  &pgconn.PgError{Code: "23505"},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation becomes invalid entity",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "versions_service_id_fkey"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation becomes invalid entity",
			err:  &pgconn.PgError{Code: "23502", ColumnName: "name"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	t.Run("unrelated errors pass through unchanged", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		assert.Equal(t, cause, MapError(cause))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(
		fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain error")))
}

func TestOrderByClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params store.ListServicesParams
		want   string
	}{
		{
			name:   "defaults to created_at descending",
			params: store.ListServicesParams{},
			want:   "ORDER BY s.created_at DESC, s.id DESC",
		},
		{
			name: "name ascending",
			params: store.ListServicesParams{
				SortBy: store.SortByName,
				Order:  store.SortAsc,
			},
			want: "ORDER BY s.name ASC, s.id ASC",
		},
		{
			name: "created_at ascending",
			params: store.ListServicesParams{
				SortBy: store.SortByCreatedAt,
				Order:  store.SortAsc,
			},
			want: "ORDER BY s.created_at ASC, s.id ASC",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, orderByClause(tc.params))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `under\_score`, escapeLike("under_score"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
