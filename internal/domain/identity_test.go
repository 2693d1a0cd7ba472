package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogkit/catalog-api/internal/domain"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    domain.Role
		wantErr bool
	}{
		{name: "user role", input: "user", want: domain.RoleUser},
		{name: "admin role", input: "admin", want: domain.RoleAdmin},
		{name: "unknown role", input: "superuser", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "case sensitive", input: "Admin", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			role, err := domain.ParseRole(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestParseRoles(t *testing.T) {
	t.Parallel()

	t.Run("valid set", func(t *testing.T) {
		t.Parallel()

		roles, err := domain.ParseRoles([]string{"user", "admin"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Role{domain.RoleUser, domain.RoleAdmin}, roles)
	})

	t.Run("empty set is allowed", func(t *testing.T) {
		t.Parallel()

		roles, err := domain.ParseRoles(nil)
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("fails on first unknown value", func(t *testing.T) {
		t.Parallel()

		_, err := domain.ParseRoles([]string{"user", "root"})
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})
}

func TestIdentityHasAllRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		have     []domain.Role
		required []domain.Role
		want     bool
	}{
		{
			name:     "exact match",
			have:     []domain.Role{domain.RoleAdmin},
			required: []domain.Role{domain.RoleAdmin},
			want:     true,
		},
		{
			name:     "extra roles do not disqualify",
			have:     []domain.Role{domain.RoleUser, domain.RoleAdmin},
			required: []domain.Role{domain.RoleAdmin},
			want:     true,
		},
		{
			name:     "both roles required and present",
			have:     []domain.Role{domain.RoleUser, domain.RoleAdmin},
			required: []domain.Role{domain.RoleUser, domain.RoleAdmin},
			want:     true,
		},
		{
			name:     "missing one of two required",
			have:     []domain.Role{domain.RoleUser},
			required: []domain.Role{domain.RoleUser, domain.RoleAdmin},
			want:     false,
		},
		{
			name:     "empty identity fails any requirement",
			have:     nil,
			required: []domain.Role{domain.RoleUser},
			want:     false,
		},
		{
			name:     "empty requirement is trivially satisfied",
			have:     nil,
			required: nil,
			want:     true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			identity := domain.Identity{Subject: "subject", Roles: tc.have}
			assert.Equal(t, tc.want, identity.HasAllRoles(tc.required))
		})
	}
}
