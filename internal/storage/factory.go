package storage

import (
	"context"
	"fmt"

	"product-dashboard/internal/config"
	"product-dashboard/internal/database"

	"github.com/rs/zerolog"
)

// New builds the backend selected by cfg.Storage.Backend. Remote backends
// are wrapped with a local file fallback when FallbackPath is set.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "storage").Logger()

	var (
		store Store
		err   error
	)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		store = NewMemoryStore()
	case config.BackendFile:
		store, err = NewFileStore(cfg.Storage.FilePath, logger)
	case config.BackendSQLite:
		db, openErr := database.OpenSQLite(cfg.Storage.SQLitePath, logger)
		if openErr != nil {
			return nil, openErr
		}
		store, err = NewSQLiteStore(db, logger)
	case config.BackendPostgres:
		store, err = newPostgres(ctx, cfg.Database, logger)
	case config.BackendS3:
		store, err = NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s store: %w", cfg.Storage.Backend, err)
	}

	remote := cfg.Storage.Backend == config.BackendPostgres || cfg.Storage.Backend == config.BackendS3
	if remote && cfg.Storage.FallbackPath != "" {
		local, err := NewFileStore(cfg.Storage.FallbackPath, logger)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to create fallback store: %w", err)
		}
		store = NewFallbackStore(store, local, logger)
	}

	logger.Info().
		Str("backend", cfg.Storage.Backend).
		Bool("fallback", remote && cfg.Storage.FallbackPath != "").
		Msg("storage ready")

	return store, nil
}

func newPostgres(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (Store, error) {
	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store := NewPostgresStore(pool, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
