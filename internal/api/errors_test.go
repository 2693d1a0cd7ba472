package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/catalogkit/catalog-api/internal/api"
	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/service/auth"
	"github.com/catalogkit/catalog-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "missing token", err: auth.ErrMissingToken, want: http.StatusUnauthorized},
		{name: "service not found", err: store.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "version not found", err: store.ErrVersionNotFound, want: http.StatusNotFound},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("%w: no services found", store.ErrServiceNotFound),
			want: http.StatusNotFound,
		},
		{name: "last version", err: store.ErrLastVersion, want: http.StatusConflict},
		{name: "validation", err: domain.ErrValidation, want: http.StatusBadRequest},
		{name: "invalid id", err: domain.ErrInvalidID, want: http.StatusBadRequest},
		{name: "invalid role", err: domain.ErrInvalidRole, want: http.StatusBadRequest},
		{name: "empty update", err: domain.ErrEmptyUpdate, want: http.StatusBadRequest},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: "An unexpected error occurred"},
		{name: "auth error", err: auth.ErrExpiredToken, want: "User is not authenticated"},
		{name: "service not found", err: store.ErrServiceNotFound, want: "Service not found"},
		{name: "version not found", err: store.ErrVersionNotFound, want: "Version not found"},
		{
			name: "last version",
			err:  store.ErrLastVersion,
			want: "Cannot delete the only version of the service",
		},
		{name: "empty update", err: domain.ErrEmptyUpdate, want: "Update data cannot be empty"},
		{
			name: "validation detail is surfaced",
			err:  fmt.Errorf("%w: page number must be >= 1", domain.ErrValidation),
			want: "validation failed: page number must be >= 1",
		},
		{
			name: "internal detail is hidden",
			err:  errors.New("pq: connection refused"),
			want: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
		})
	}
}
