// Package storage persists reconciliation run history.
//
// Only run metadata and per-status counts are stored. Individual match
// decisions are not persisted: every run re-evaluates its inputs, and
// the result set belongs to the caller.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunRecord summarizes one reconciliation run.
type RunRecord struct {
	ID               string    `json:"id"`
	StartedAt        time.Time `json:"started_at"`
	DurationMS       int64     `json:"duration_ms"`
	TransactionCount int       `json:"transaction_count"`
	InvoiceCount     int       `json:"invoice_count"`
	MatchedCount     int       `json:"matched_count"`
	SuspectCount     int       `json:"suspect_count"`
	UnmatchedCount   int       `json:"unmatched_count"`
	RefundCount      int       `json:"refund_count"`
	RentCount        int       `json:"rent_count"`
}

// Repository is the persistence interface consumed by the service and
// API layers.
type Repository interface {
	SaveRun(run *RunRecord) error
	GetRun(id string) (*RunRecord, error)
	ListRuns(limit int) ([]*RunRecord, error)
	Close() error
}

// Storage provides SQLite database access for run records.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run summary.
func (s *Storage) SaveRun(run *RunRecord) error {
	query := `
	INSERT OR REPLACE INTO reconciliation_runs
	(id, started_at, duration_ms, transaction_count, invoice_count,
	 matched_count, suspect_count, unmatched_count, refund_count, rent_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.ID,
		run.StartedAt,
		run.DurationMS,
		run.TransactionCount,
		run.InvoiceCount,
		run.MatchedCount,
		run.SuspectCount,
		run.UnmatchedCount,
		run.RefundCount,
		run.RentCount,
	)
	return err
}

// GetRun retrieves one run by ID. Returns sql.ErrNoRows when absent.
func (s *Storage) GetRun(id string) (*RunRecord, error) {
	query := `
	SELECT id, started_at, duration_ms, transaction_count, invoice_count,
	       matched_count, suspect_count, unmatched_count, refund_count, rent_count
	FROM reconciliation_runs WHERE id = ?
	`

	run := &RunRecord{}
	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.StartedAt,
		&run.DurationMS,
		&run.TransactionCount,
		&run.InvoiceCount,
		&run.MatchedCount,
		&run.SuspectCount,
		&run.UnmatchedCount,
		&run.RefundCount,
		&run.RentCount,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Storage) ListRuns(limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, started_at, duration_ms, transaction_count, invoice_count,
	       matched_count, suspect_count, unmatched_count, refund_count, rent_count
	FROM reconciliation_runs
	ORDER BY started_at DESC
	LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		run := &RunRecord{}
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.DurationMS,
			&run.TransactionCount,
			&run.InvoiceCount,
			&run.MatchedCount,
			&run.SuspectCount,
			&run.UnmatchedCount,
			&run.RefundCount,
			&run.RentCount,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
