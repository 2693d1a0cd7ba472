package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catalogkit/catalog-api/internal/domain"
	"github.com/catalogkit/catalog-api/internal/platform/logger"
	"github.com/catalogkit/catalog-api/internal/store"
)

// PostgresVersionStore implements the store.VersionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVersionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresVersionStore creates a new PostgreSQL implementation of the
// VersionStore interface. If logger is nil, the default logger is used.
func NewPostgresVersionStore(db *sql.DB, logger *slog.Logger) *PostgresVersionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVersionStore{
		db:     db,
		logger: logger.With(slog.String("component", "version_store")),
	}
}

// Ensure PostgresVersionStore implements store.VersionStore interface
var _ store.VersionStore = (*PostgresVersionStore)(nil)

// insertVersion writes a version row through any DBTX, so the same
// statement serves both the standalone create and the seed insert inside
// the create-service transaction.
func insertVersion(ctx context.Context, db store.DBTX, version *domain.Version) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO versions (id, service_id, name, overview, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, version.ID, version.ServiceID, version.Name, version.Overview,
		version.CreatedAt, version.UpdatedAt)
	return err
}

// Create implements store.VersionStore.
func (s *PostgresVersionStore) Create(ctx context.Context, version *domain.Version) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := insertVersion(ctx, s.db, version); err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during version creation",
				slog.String("version_id", version.ID.String()),
				slog.String("service_id", version.ServiceID.String()))
			return fmt.Errorf("%w: service with ID %s not found",
				store.ErrInvalidEntity, version.ServiceID)
		}
		log.Error("failed to create version",
			slog.String("error", err.Error()),
			slog.String("version_id", version.ID.String()))
		return MapError(err)
	}

	log.Info("version created",
		slog.String("version_id", version.ID.String()),
		slog.String("service_id", version.ServiceID.String()))
	return nil
}

// GetByID implements store.VersionStore.
func (s *PostgresVersionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Version, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, service_id, name, overview, created_at, updated_at
		FROM versions
		WHERE id = $1 AND deleted_at IS NULL
	`

	var version domain.Version
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&version.ID,
		&version.ServiceID,
		&version.Name,
		&version.Overview,
		&version.CreatedAt,
		&version.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("version not found", slog.String("version_id", id.String()))
			return nil, store.ErrVersionNotFound
		}
		log.Error("failed to get version by ID",
			slog.String("error", err.Error()),
			slog.String("version_id", id.String()))
		return nil, MapError(err)
	}

	return &version, nil
}

// ListByService implements store.VersionStore.
func (s *PostgresVersionStore) ListByService(
	ctx context.Context,
	serviceID uuid.UUID,
) ([]domain.Version, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, service_id, name, overview, created_at, updated_at
		FROM versions
		WHERE service_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, serviceID)
	if err != nil {
		log.Error("failed to list versions",
			slog.String("error", err.Error()),
			slog.String("service_id", serviceID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	versions := make([]domain.Version, 0)
	for rows.Next() {
		var version domain.Version
		if err := rows.Scan(
			&version.ID,
			&version.ServiceID,
			&version.Name,
			&version.Overview,
			&version.CreatedAt,
			&version.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		versions = append(versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return versions, nil
}

// CountByService implements store.VersionStore.
func (s *PostgresVersionStore) CountByService(
	ctx context.Context,
	serviceID uuid.UUID,
) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM versions
		WHERE service_id = $1 AND deleted_at IS NULL
	`, serviceID).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// Update implements store.VersionStore.
func (s *PostgresVersionStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.VersionUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set := []string{}
	args := []any{}
	if update.Name != nil {
		args = append(args, *update.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Overview != nil {
		args = append(args, *update.Overview)
		set = append(set, fmt.Sprintf("overview = $%d", len(args)))
	}
	args = append(args, time.Now().UTC())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE versions
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update version",
			slog.String("error", err.Error()),
			slog.String("version_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrVersionNotFound)
}

// SoftDeleteGuarded implements store.VersionStore.
//
// The count-then-delete sequence is a check-then-act race under
// concurrent deletes, so the whole operation runs in one transaction
// that first takes a row lock on the parent service. Concurrent deletes
// against versions of the same service serialize on that lock; the
// second transaction re-counts after the first commits and sees the
// reduced count.
func (s *PostgresVersionStore) SoftDeleteGuarded(
	ctx context.Context,
	serviceID, versionID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// Lock the parent row for the duration of the check-and-delete.
		var lockedID uuid.UUID
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM services WHERE id = $1 FOR UPDATE
		`, serviceID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrVersionNotFound
			}
			return MapError(err)
		}

		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM versions
				WHERE id = $1 AND service_id = $2 AND deleted_at IS NULL
			)
		`, versionID, serviceID).Scan(&exists)
		if err != nil {
			return MapError(err)
		}
		if !exists {
			return store.ErrVersionNotFound
		}

		var count int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM versions
			WHERE service_id = $1 AND deleted_at IS NULL
		`, serviceID).Scan(&count)
		if err != nil {
			return MapError(err)
		}
		if count <= 1 {
			return store.ErrLastVersion
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx, `
			UPDATE versions
			SET deleted_at = $2, updated_at = $2
			WHERE id = $1 AND deleted_at IS NULL
		`, versionID, now)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrVersionNotFound)
	})
	if err != nil {
		if errors.Is(err, store.ErrVersionNotFound) || errors.Is(err, store.ErrLastVersion) {
			return err
		}
		log.Error("failed to soft-delete version",
			slog.String("error", err.Error()),
			slog.String("version_id", versionID.String()),
			slog.String("service_id", serviceID.String()))
		return err
	}

	log.Info("version soft-deleted",
		slog.String("version_id", versionID.String()),
		slog.String("service_id", serviceID.String()))
	return nil
}
