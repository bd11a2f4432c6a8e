package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; each entry runs at most once. Never edit
// a shipped migration, append a new one.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS interpretations (
		id TEXT PRIMARY KEY,
		correlation_id TEXT NOT NULL DEFAULT '',
		characteristic TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		confidence TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interpretations_created_at
		ON interpretations(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_interpretations_characteristic
		ON interpretations(characteristic)`,
	`CREATE INDEX IF NOT EXISTS idx_interpretations_correlation
		ON interpretations(correlation_id)`,
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
