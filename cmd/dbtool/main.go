package main

import (
	"context"
	"fmt"
	"meeting-point-service/internal/adapters/repositories"
	"meeting-point-service/internal/config"
	"meeting-point-service/internal/platform/db"
	"meeting-point-service/internal/platform/logging"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const usage = `usage: dbtool <command>

commands:
  up           apply pending Postgres migrations (DATABASE_URL)
  down         roll back the latest Postgres migration (DATABASE_URL)
  status       list Postgres migrations and whether they are applied (DATABASE_URL)
  sqlite-init  create the SQLite schema (DB_PATH, default data/app.db)`

func main() {
	foundDotenv := config.LoadDotenv()
	logger := logging.New(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if !foundDotenv {
		logger.Debug().Msg("no .env file found (using environment variables)")
	}

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := logger.WithContext(context.Background())
	if err := run(ctx, logger, os.Args[1]); err != nil {
		logger.Fatal().Err(err).Str("command", os.Args[1]).Msg("dbtool failed")
	}
}

func run(ctx context.Context, logger zerolog.Logger, command string) error {
	if command == "sqlite-init" {
		dbPath := config.Get("DB_PATH", "data/app.db")
		sqlDB, err := db.OpenSqlite(dbPath)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		logger.Info().Str("path", dbPath).Msg("initializing sqlite schema")
		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			return err
		}
		logger.Info().Msg("schema ready")
		return nil
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	provider, err := db.NewMigrationProvider(sqlDB)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		for _, r := range results {
			logger.Info().Str("migration", r.Source.Path).Dur("took", r.Duration).Msg("applied")
		}
		logger.Info().Int("count", len(results)).Msg("migrations up to date")

	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		logger.Info().Str("migration", r.Source.Path).Dur("took", r.Duration).Msg("rolled back")

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, s := range statuses {
			logger.Info().
				Int64("version", s.Source.Version).
				Str("migration", s.Source.Path).
				Str("state", string(s.State)).
				Msg("status")
		}

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}
