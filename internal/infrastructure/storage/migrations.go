package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order.
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_reconciliation_runs",
		Up:      migration001ReconciliationRuns,
	},
}

// runMigrations executes all pending migrations.
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.appliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
			migration.Version, migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (s *Storage) appliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func migration001ReconciliationRuns(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS reconciliation_runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		transaction_count INTEGER NOT NULL DEFAULT 0,
		invoice_count INTEGER NOT NULL DEFAULT 0,
		matched_count INTEGER NOT NULL DEFAULT 0,
		suspect_count INTEGER NOT NULL DEFAULT 0,
		unmatched_count INTEGER NOT NULL DEFAULT 0,
		refund_count INTEGER NOT NULL DEFAULT 0,
		rent_count INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
	CREATE INDEX IF NOT EXISTS idx_runs_started_at
	ON reconciliation_runs(started_at DESC)`)
	return err
}
