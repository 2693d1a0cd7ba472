package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service represents a catalog service. A service exclusively owns its
// versions: deleting the service deletes all of them, and a version cannot
// outlive its service.
type Service struct {
	// ID is the unique identifier for the service.
	ID uuid.UUID

	// Name is the display name of the service. Uniqueness is not enforced.
	Name string

	// Description is a free-form description of the service.
	Description string

	// CreatedAt is the time the service was created.
	CreatedAt time.Time

	// UpdatedAt is the time the service was last modified.
	UpdatedAt time.Time

	// DeletedAt marks the service as soft-deleted when non-nil.
	// A soft-deleted service is logically absent from every read.
	DeletedAt *time.Time

	// NoOfVersions is the count of non-deleted versions owned by the
	// service. It is computed at read time and never stored.
	NoOfVersions int
}

// InitialVersionName is the name given to the version seeded when a
// service is created.
const InitialVersionName = "Initial Version"

// NewService creates a new service with a generated ID and timestamps.
// Returns a validation error if name or description is empty.
func NewService(name, description string) (*Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: service name cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: service description cannot be empty", ErrValidation)
	}

	now := time.Now().UTC()
	return &Service{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// InitialVersion builds the seed version that accompanies a newly created
// service. Every live service retains at least one non-deleted version,
// established here and protected at deletion time.
func (s *Service) InitialVersion() *Version {
	now := time.Now().UTC()
	return &Version{
		ID:        uuid.New(),
		ServiceID: s.ID,
		Name:      InitialVersionName,
		Overview:  fmt.Sprintf("Initial version of %s", s.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDeleted reports whether the service has been soft-deleted.
func (s *Service) IsDeleted() bool {
	return s.DeletedAt != nil
}

// ServiceUpdate is a partial update for a service. Nil fields are left
// unchanged.
type ServiceUpdate struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the update carries no fields.
func (u ServiceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil
}
