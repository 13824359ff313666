package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"link-validator/internal/config"
	"link-validator/internal/lib/logger/slogcute"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	directionUp   = "up"
	directionDown = "down"
)

func main() {
	var (
		direction string
		steps     int
	)

	// Flags must be declared before MustLoad parses the command line.
	flag.StringVar(&direction, "direction", directionUp, "direction to migrate (up or down)")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply, 0 applies all")
	cfg := config.MustLoad()

	log := setupLogger()

	log.Info("starting migrator",
		slog.String("env", cfg.Env),
		slog.String("storage_path", cfg.StoragePath),
		slog.String("migrations_path", cfg.Migrations.MigrationsPath),
		slog.String("migration_table", cfg.Migrations.MigrationTable),
		slog.String("direction", direction),
		slog.Int("steps", steps),
	)

	if err := validateFlags(direction, steps); err != nil {
		log.Error("invalid arguments", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := runMigrations(log, cfg.StoragePath, cfg.Migrations, direction, steps); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("migrations completed successfully")
}

func setupLogger() *slog.Logger {
	opts := slogcute.CuteHandlerOptions{
		SlogOptions: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return slog.New(opts.NewCuteHandler(os.Stdout))
}

func validateFlags(direction string, steps int) error {
	if direction != directionUp && direction != directionDown {
		return fmt.Errorf("invalid direction '%s', must be 'up' or 'down'", direction)
	}
	if steps < 0 {
		return fmt.Errorf("invalid steps %d, must not be negative", steps)
	}
	return nil
}

func runMigrations(log *slog.Logger, storagePath string, cfg config.MigrationsConfig, direction string, steps int) error {
	sourceURL := fmt.Sprintf("file://%s", cfg.MigrationsPath)
	databaseURL := fmt.Sprintf("sqlite3://%s?x-migrations-table=%s", storagePath, cfg.MigrationTable)

	log.Info("initializing migrator",
		slog.String("source", sourceURL),
		slog.String("database", databaseURL),
	)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			log.Error("failed to close migration source", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			log.Error("failed to close database", slog.String("error", dbErr.Error()))
		}
	}()

	switch {
	case steps > 0 && direction == directionDown:
		log.Info("rolling back migrations", slog.Int("steps", steps))
		err = m.Steps(-steps)
	case steps > 0:
		log.Info("applying migrations", slog.Int("steps", steps))
		err = m.Steps(steps)
	case direction == directionDown:
		log.Info("rolling back all migrations")
		err = m.Down()
	default:
		log.Info("applying all migrations")
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
