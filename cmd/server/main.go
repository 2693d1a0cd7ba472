// Package main implements the entry point for the catalog API server,
// which manages the organization's service catalog and the versions
// published under each service.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/catalogkit/catalog-api/internal/config"
	"github.com/catalogkit/catalog-api/internal/platform/logger"
	"github.com/catalogkit/catalog-api/internal/platform/memory"
	"github.com/catalogkit/catalog-api/internal/platform/postgres"
	"github.com/catalogkit/catalog-api/internal/service/auth"
	"github.com/catalogkit/catalog-api/internal/service/catalog"
	"github.com/catalogkit/catalog-api/internal/store"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// application holds the fully wired server dependencies.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	tokens  auth.TokenService
	catalog *catalog.CatalogService
	closeDB func() error
}

// initializeApp loads configuration, sets up logging, connects the
// storage backend and wires the service layer.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("auth_enabled", cfg.Auth.Enabled))

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	app := &application{
		config:  cfg,
		logger:  appLogger,
		tokens:  tokens,
		closeDB: func() error { return nil },
	}

	var services store.ServiceStore
	var versions store.VersionStore
	if cfg.Database.URL != "" {
		db, err := setupDatabase(cfg, appLogger)
		if err != nil {
			return nil, err
		}
		app.closeDB = db.Close
		services = postgres.NewPostgresServiceStore(db, appLogger)
		versions = postgres.NewPostgresVersionStore(db, appLogger)
	} else {
		appLogger.Warn("No database URL configured, using in-memory store")
		cat := memory.NewCatalog()
		services = cat.Services()
		versions = cat.Versions()
	}

	app.catalog = catalog.NewCatalogService(services, versions, appLogger)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.closeDB(); err != nil {
		app.logger.Error("Failed to close database connection", slog.Any("error", err))
	}
}
