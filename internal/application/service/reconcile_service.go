// Package service wires the matching engine, run-history storage and
// exports into the reconciliation operation exposed to the CLI and
// HTTP API.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thepsychonaut421/financio-recon/internal/adapters/export"
	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

// ReconcileService runs reconciliation passes and records run history.
type ReconcileService struct {
	engine  *recon.Engine
	store   storage.Repository
	logger  *slog.Logger
	workers int
}

// RunResult is the outcome of one reconciliation pass.
type RunResult struct {
	RunID     string
	StartedAt time.Time
	Results   []*recon.MatchedTransaction
	Summary   export.Summary
}

// NewReconcileService creates a reconciliation service. store may be
// nil, in which case run history is not recorded. workers below 1 is
// treated as 1.
func NewReconcileService(store storage.Repository, logger *slog.Logger, workers int) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &ReconcileService{
		engine:  recon.NewEngine(),
		store:   store,
		logger:  logger,
		workers: workers,
	}
}

// Reconcile matches all transactions against the invoice collection.
//
// With more than one worker, transactions are evaluated concurrently.
// That is safe because the engine is stateless and the invoice
// collection is read-only for the duration of the pass; results are
// written by index so input order is preserved either way.
func (s *ReconcileService) Reconcile(
	ctx context.Context,
	transactions []*recon.BankTransaction,
	invoices []*recon.Invoice,
) (*RunResult, error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	s.logger.Info("starting reconciliation run",
		"run_id", runID,
		"transactions", len(transactions),
		"invoices", len(invoices),
		"workers", s.workers,
	)

	results, err := s.match(ctx, transactions, invoices)
	if err != nil {
		s.logger.Error("reconciliation run failed", "run_id", runID, "error", err)
		return nil, err
	}

	summary := export.Summarize(results)
	duration := time.Since(startedAt)

	s.logger.Info("reconciliation run complete",
		"run_id", runID,
		"matched", summary.Matched,
		"suspect", summary.Suspect,
		"unmatched", summary.Unmatched,
		"refunds", summary.Refunds,
		"rent_payments", summary.RentPayments,
		"duration", duration,
	)

	if s.store != nil {
		record := &storage.RunRecord{
			ID:               runID,
			StartedAt:        startedAt.UTC(),
			DurationMS:       duration.Milliseconds(),
			TransactionCount: len(transactions),
			InvoiceCount:     len(invoices),
			MatchedCount:     summary.Matched,
			SuspectCount:     summary.Suspect,
			UnmatchedCount:   summary.Unmatched,
			RefundCount:      summary.Refunds,
			RentCount:        summary.RentPayments,
		}
		if err := s.store.SaveRun(record); err != nil {
			// Run history is bookkeeping about bookkeeping; losing it
			// does not invalidate the results.
			s.logger.Warn("failed to record run history", "run_id", runID, "error", err)
		}
	}

	return &RunResult{
		RunID:     runID,
		StartedAt: startedAt,
		Results:   results,
		Summary:   summary,
	}, nil
}

// match evaluates transactions sequentially or fanned out across
// workers, depending on configuration.
func (s *ReconcileService) match(
	ctx context.Context,
	transactions []*recon.BankTransaction,
	invoices []*recon.Invoice,
) ([]*recon.MatchedTransaction, error) {
	if s.workers == 1 {
		return s.engine.Match(transactions, invoices)
	}

	results := make([]*recon.MatchedTransaction, len(transactions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, tx := range transactions {
		i, tx := i, tx
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matched, err := s.engine.MatchOne(tx, invoices)
			if err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
			results[i] = matched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
