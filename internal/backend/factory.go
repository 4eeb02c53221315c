// Package backend selects and opens the configured store backend.
package backend

import (
	"context"
	"fmt"

	"cashbook/internal/config"
	"cashbook/internal/log"
	"cashbook/internal/store"
	"cashbook/internal/store/memory"
	"cashbook/internal/store/postgres"
	"cashbook/internal/store/sqlite"
)

// Open returns the store selected by cfg.DataBackend and a cleanup
// function to call on shutdown.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Store, func() error, error) {
	logger = logger.WithComponent("backend")

	switch cfg.DataBackend {
	case "memory":
		logger.InfoContext(ctx, "Using in-memory store")
		return memory.New(), func() error { return nil }, nil

	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.InfoContext(ctx, "Using SQLite store", "path", cfg.SQLiteDBPath)
		return repo, repo.Close, nil

	case "postgres":
		repo, err := postgres.NewRepository(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres backend: %w", err)
		}
		logger.InfoContext(ctx, "Using Postgres store")
		return repo, func() error { repo.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
