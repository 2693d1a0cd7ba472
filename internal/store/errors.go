package store

import "errors"

// Store-level sentinel errors. Services classify these with errors.Is and
// the API layer maps them to HTTP status codes.
var (
	// ErrNotFound is the generic "entity absent or soft-deleted" error.
	// The entity-specific variants below wrap more context but callers
	// should prefer matching those directly.
	ErrNotFound = errors.New("entity not found")

	// ErrServiceNotFound is returned when a service does not exist or has
	// been soft-deleted.
	ErrServiceNotFound = errors.New("service not found")

	// ErrVersionNotFound is returned when a version does not exist or has
	// been soft-deleted.
	ErrVersionNotFound = errors.New("version not found")

	// ErrLastVersion is returned when deleting a version would leave its
	// service without any non-deleted version.
	ErrLastVersion = errors.New("cannot delete the only version of the service")

	// ErrInvalidEntity is returned when entity data violates a storage
	// constraint (foreign key, not null, check).
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDuplicate is returned when an operation violates a unique
	// constraint.
	ErrDuplicate = errors.New("duplicate entity")
)
