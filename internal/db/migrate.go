package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS catalog_modules (
		position   INTEGER NOT NULL,
		course     TEXT NOT NULL,
		module     TEXT NOT NULL,
		topics     TEXT NOT NULL DEFAULT '',
		colab_link TEXT NOT NULL DEFAULT '',
		hours      REAL NOT NULL DEFAULT 1,
		PRIMARY KEY (course, module)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_modules_position ON catalog_modules(position)`,
	`CREATE TABLE IF NOT EXISTS catalog_imports (
		id           TEXT PRIMARY KEY,
		source       TEXT NOT NULL,
		module_count INTEGER NOT NULL,
		imported_at  TEXT NOT NULL
	)`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
