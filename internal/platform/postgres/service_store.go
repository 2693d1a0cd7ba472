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

// PostgresServiceStore implements the store.ServiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresServiceStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the
// ServiceStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewPostgresServiceStore(db *sql.DB, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// Ensure PostgresServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// noOfVersionsExpr computes the derived non-deleted version count per
// service row at read time. It is never stored.
const noOfVersionsExpr = `(
		SELECT COUNT(*) FROM versions v
		WHERE v.service_id = s.id AND v.deleted_at IS NULL
	)`

// CreateWithInitialVersion implements store.ServiceStore. Both inserts
// run in one transaction so a service can never exist without its seed
// version.
func (s *PostgresServiceStore) CreateWithInitialVersion(
	ctx context.Context,
	svc *domain.Service,
	initial *domain.Version,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO services (id, name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, svc.ID, svc.Name, svc.Description, svc.CreatedAt, svc.UpdatedAt)
		if err != nil {
			return MapError(err)
		}

		if err := insertVersion(ctx, tx, initial); err != nil {
			return MapError(err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to create service with initial version",
			slog.String("error", err.Error()),
			slog.String("service_id", svc.ID.String()))
		return err
	}

	log.Info("service created",
		slog.String("service_id", svc.ID.String()),
		slog.String("version_id", initial.ID.String()))
	return nil
}

// GetByID implements store.ServiceStore.
func (s *PostgresServiceStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT s.id, s.name, s.description, s.created_at, s.updated_at, ` + noOfVersionsExpr + ` AS no_of_versions
		FROM services s
		WHERE s.id = $1 AND s.deleted_at IS NULL
	`

	var svc domain.Service
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.CreatedAt,
		&svc.UpdatedAt,
		&svc.NoOfVersions,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("service not found", slog.String("service_id", id.String()))
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service by ID",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return nil, MapError(err)
	}

	return &svc, nil
}

// orderByClause maps the closed sort enums onto a SQL ORDER BY fragment.
// Only whitelisted values reach the query; anything else falls back to
// the created_at descending default.
func orderByClause(params store.ListServicesParams) string {
	column := "s.created_at"
	if params.SortBy == store.SortByName {
		column = "s.name"
	}
	direction := "DESC"
	if params.Order == store.SortAsc {
		direction = "ASC"
	}
	// Tie-break on id so pages are deterministic under equal sort keys.
	return fmt.Sprintf("ORDER BY %s %s, s.id %s", column, direction, direction)
}

// List implements store.ServiceStore.
func (s *PostgresServiceStore) List(
	ctx context.Context,
	params store.ListServicesParams,
) ([]domain.Service, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := "WHERE s.deleted_at IS NULL"
	args := []any{}
	if params.SearchTerm != "" {
		where += " AND (s.name ILIKE $1 OR s.description ILIKE $1)"
		args = append(args, "%"+escapeLike(params.SearchTerm)+"%")
	}

	countQuery := "SELECT COUNT(*) FROM services s " + where
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count services", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.name, s.description, s.created_at, s.updated_at, %s AS no_of_versions
		FROM services s
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, noOfVersionsExpr, where, orderByClause(params), len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list services", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	services := make([]domain.Service, 0, params.PageSize)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.CreatedAt,
			&svc.UpdatedAt,
			&svc.NoOfVersions,
		); err != nil {
			return nil, 0, MapError(err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return services, total, nil
}

// escapeLike escapes LIKE metacharacters so a search term matches
// literally.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// Update implements store.ServiceStore.
func (s *PostgresServiceStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.ServiceUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set := []string{}
	args := []any{}
	if update.Name != nil {
		args = append(args, *update.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	args = append(args, time.Now().UTC())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE services
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
	`, strings.Join(set, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update service",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrServiceNotFound)
}

// SoftDeleteCascade implements store.ServiceStore. The service and its
// versions are marked deleted in one transaction so a deleted service can
// never be left with live versions.
func (s *PostgresServiceStore) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		now := time.Now().UTC()

		result, err := tx.ExecContext(ctx, `
			UPDATE services
			SET deleted_at = $2, updated_at = $2
			WHERE id = $1 AND deleted_at IS NULL
		`, id, now)
		if err != nil {
			return MapError(err)
		}
		if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE versions
			SET deleted_at = $2, updated_at = $2
			WHERE service_id = $1 AND deleted_at IS NULL
		`, id, now)
		if err != nil {
			return MapError(err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrServiceNotFound) {
			log.Error("failed to soft-delete service",
				slog.String("error", err.Error()),
				slog.String("service_id", id.String()))
		}
		return err
	}

	log.Info("service soft-deleted with versions", slog.String("service_id", id.String()))
	return nil
}
