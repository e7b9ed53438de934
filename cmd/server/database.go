package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/platform/postgres"
)

// setupAppDatabase establishes a connection to the database, waits for it
// to accept connections, and applies pending schema migrations. Returns the
// database connection if successful, or an error if any step fails.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Wait for the database to become ready before touching the schema.
	// The database often starts alongside the server and may need a moment.
	policy := postgres.ReadinessPolicy{
		MaxAttempts: uint64(cfg.Database.ConnectMaxAttempts),
		BaseDelay:   time.Duration(cfg.Database.ConnectBackoffBaseSeconds) * time.Second,
	}
	if err := postgres.WaitForReady(ctx, db, policy, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("database never became ready: %w", err)
	}

	// Migrations are idempotent, so every boot converges on the same schema.
	if err := postgres.Migrate(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and schema migrated")
	return db, nil
}
