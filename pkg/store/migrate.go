package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Migrate applies every pending migration.
func Migrate(ctx context.Context, databaseURL string) error {
	return withGoose(databaseURL, func(db *sql.DB) error {
		return goose.UpContext(ctx, db, migrationsDir)
	})
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, databaseURL string) error {
	return withGoose(databaseURL, func(db *sql.DB) error {
		return goose.DownContext(ctx, db, migrationsDir)
	})
}

// MigrationStatus logs the applied state of each migration.
func MigrationStatus(ctx context.Context, databaseURL string) error {
	return withGoose(databaseURL, func(db *sql.DB) error {
		return goose.StatusContext(ctx, db, migrationsDir)
	})
}

func withGoose(databaseURL string, fn func(db *sql.DB) error) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := fn(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
