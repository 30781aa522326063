// Package testutil provides shared helpers for integration tests.
// Helpers skip the calling test when the required environment is missing.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"meeting-point-service/migrations"
)

// NewSQLDB opens a *sql.DB for TEST_DATABASE_URL using the pgx driver.
// The test is skipped when TEST_DATABASE_URL is not set.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := requireDSN(t)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// NewMigratedSQLDB is NewSQLDB with every migration applied.
func NewMigratedSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		t.Fatalf("testutil.NewMigratedSQLDB: goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		t.Fatalf("testutil.NewMigratedSQLDB: goose up: %v", err)
	}
	return db
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
