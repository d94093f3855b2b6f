// Package storage selects and prepares the KV backend behind the itinerary
// repo. The API server and the itinctl CLI share it so both read the same
// saved collection.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/itinerary-planner/backend/internal/config"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
	"github.com/pkordes/itinerary-planner/backend/migrations"
)

// Open returns the KV backend selected by cfg and a function that releases it.
//
// With DatabaseURL set it connects to Postgres, verifies the connection, and
// applies pending migrations. Otherwise it uses a file store in StorageDir.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.KV, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("using file storage", "dir", cfg.StorageDir)
		return repo.NewFileKV(cfg.StorageDir), func() {}, nil
	}

	// pgxpool.New does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("storage.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("storage.Open: ping: %w", err)
	}
	log.Info("database connection established")

	if err := Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo.NewPostgresKV(pool), pool.Close, nil
}

// Migrate applies every pending migration in migrations.FS.
// goose drives database/sql, so the pool is wrapped rather than reopened.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("storage.Migrate: create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("storage.Migrate: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
