// Package main implements the entry point for the TaskFlow API server,
// a task tracking backend with JWT authentication and calendar event
// scheduling over PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
)

// main initializes configuration, logging, the database connection, and all
// application dependencies, then starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run contains the actual startup sequence so main stays trivially small
// and every failure path flows through a single error return.
func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish the database connection. The pool is lazy; readiness is
	// verified separately so startup can outwait a database that is still
	// coming up.
	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Wire up stores, services, and handlers
	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
