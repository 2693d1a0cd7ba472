// Package store defines the persistence abstractions for the catalog.
//
// The interfaces here are implemented by the postgres backend in
// internal/platform/postgres and by the in-memory backend in
// internal/platform/memory. All read operations exclude soft-deleted
// rows; "deleted" means logically absent, not physically absent.
package store
