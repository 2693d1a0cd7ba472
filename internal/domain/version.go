package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version represents a single version of a catalog service. The owning
// service reference is immutable after creation.
type Version struct {
	// ID is the unique identifier for the version.
	ID uuid.UUID

	// ServiceID references the owning service.
	ServiceID uuid.UUID

	// Name is the display name of the version.
	Name string

	// Overview is a free-form summary of the version.
	Overview string

	// CreatedAt is the time the version was created.
	CreatedAt time.Time

	// UpdatedAt is the time the version was last modified.
	UpdatedAt time.Time

	// DeletedAt marks the version as soft-deleted when non-nil.
	DeletedAt *time.Time
}

// NewVersion creates a new version owned by the given service.
// Returns a validation error if the name is empty.
func NewVersion(serviceID uuid.UUID, name, overview string) (*Version, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: version name cannot be empty", ErrValidation)
	}

	now := time.Now().UTC()
	return &Version{
		ID:        uuid.New(),
		ServiceID: serviceID,
		Name:      name,
		Overview:  overview,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsDeleted reports whether the version has been soft-deleted.
func (v *Version) IsDeleted() bool {
	return v.DeletedAt != nil
}

// VersionUpdate is a partial update for a version. Nil fields are left
// unchanged.
type VersionUpdate struct {
	Name     *string
	Overview *string
}

// IsEmpty reports whether the update carries no fields.
func (u VersionUpdate) IsEmpty() bool {
	return u.Name == nil && u.Overview == nil
}
