// Package sqlite implements the repositories on SQLite. Timestamps are
// stored as RFC3339Nano TEXT and featured as a 0/1 INTEGER.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tattoos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		image_url TEXT NOT NULL,
		featured INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tattoos_created_at ON tattoos (created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_tattoos_category ON tattoos (category)`,
	`CREATE TABLE IF NOT EXISTS site_content (
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS testimonials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_testimonials_created_at ON testimonials (created_at DESC, id DESC)`,
}

// Migrate creates the schema. Statements are idempotent so Migrate is safe
// to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
