package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Absent observations are NULL, never zero, and a row carries at least one.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS log_entries (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL UNIQUE,
		weight     REAL CHECK(weight IS NULL OR weight > 0),
		calories   REAL CHECK(calories IS NULL OR calories >= 0),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK(weight IS NOT NULL OR calories IS NOT NULL)
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id              TEXT PRIMARY KEY DEFAULT 'default',
		start_weight    REAL,
		goal_weight     REAL,
		height_cm       REAL,
		weekly_rate     REAL NOT NULL DEFAULT 0.5,
		calculated_tdee INTEGER,
		updated_at      TEXT NOT NULL DEFAULT ''
	)`,

	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,
}
