// Package app assembles storage, the chart of accounts and the services from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/core/services"
	"github.com/SscSPs/smb_ledger/internal/platform/chart"
	"github.com/SscSPs/smb_ledger/internal/platform/config"
	"github.com/SscSPs/smb_ledger/internal/platform/database"
	"github.com/SscSPs/smb_ledger/internal/platform/metrics"
	"github.com/SscSPs/smb_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/smb_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/smb_ledger/internal/repositories/memory"
)

// App is a booted ledger: storage handles, services and metrics.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Repos    portsrepo.RepositoryProvider
	Services *portssvc.ServiceContainer
	Metrics  *metrics.Metrics
}

// NewLogger builds the JSON logger used by every command.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Bootstrap opens storage, applies migrations when configured, seeds the
// chart of accounts and wires the services. A chart that lacks any
// well-known posting account is fatal.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	repos, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	accounts, err := chart.Load(cfg.ChartFile)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	if err := repos.AccountRepo.SaveAccounts(ctx, accounts); err != nil {
		repos.Close()
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}
	logger.Info("Chart of accounts seeded", slog.Int("accounts", len(accounts)))

	m := metrics.New()
	container, err := services.NewServiceContainer(ctx, repos, cfg.WellKnown(), m)
	if err != nil {
		repos.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Repos:    repos,
		Services: container,
		Metrics:  m,
	}, nil
}

// Close releases the storage handle.
func (a *App) Close() error {
	return a.Repos.Close()
}

// OpenStorage returns the repositories for the configured driver.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.MigratePostgres(cfg.DatabaseURL, logger); err != nil {
				return portsrepo.RepositoryProvider{}, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return pgsql.NewRepositoryProvider(pool), nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		if cfg.RunMigrations {
			if err := database.MigrateSQLite(db, logger); err != nil {
				db.Close()
				return portsrepo.RepositoryProvider{}, err
			}
		}
		logger.Info("Opened sqlite database", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), nil

	case config.StorageMemory:
		logger.Warn("Using in-memory storage; journals are lost on exit")
		return memory.NewRepositoryProvider(memory.NewStore()), nil
	}
	return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Migrate applies migrations for the configured driver without booting services.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return database.MigratePostgres(cfg.DatabaseURL, logger)
	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		return database.MigrateSQLite(db, logger)
	case config.StorageMemory:
		logger.Info("Memory storage has no schema to migrate")
		return nil
	}
	return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
