package recon

import (
	"errors"
	"fmt"
	"math"
)

// ErrPrecondition marks a malformed transaction reaching the engine:
// an unset date or a non-finite amount. That is an upstream contract
// violation, not a data-quality case the engine papers over.
var ErrPrecondition = errors.New("transaction precondition violated")

// Engine is the reconciliation engine. It is stateless and safe for
// concurrent use; the only requirement is that the invoice collection
// is not mutated during a matching pass.
type Engine struct{}

// NewEngine creates a reconciliation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Match evaluates every transaction against the invoice collection
// and returns one MatchedTransaction per input, in input order.
//
// The whole call fails on the first malformed transaction; partial
// results are never returned. Invoices lacking a gross total or date
// are silently skipped during scoring.
//
// Complexity is O(transactions x invoices) with no indexing, which is
// practical for hundreds of invoices per run, not millions.
func (e *Engine) Match(transactions []*BankTransaction, invoices []*Invoice) ([]*MatchedTransaction, error) {
	results := make([]*MatchedTransaction, 0, len(transactions))
	for i, tx := range transactions {
		matched, err := e.MatchOne(tx, invoices)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		results = append(results, matched)
	}
	return results, nil
}

// MatchOne evaluates a single transaction. Evaluations are independent
// given an immutable invoice collection, so callers may fan out
// MatchOne across goroutines as long as they reassemble results in
// input order themselves.
func (e *Engine) MatchOne(tx *BankTransaction, invoices []*Invoice) (*MatchedTransaction, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	return classify(tx, invoices), nil
}

// validateTransaction enforces the upstream contract from the data
// model: a valid calendar date and a finite amount. Defaulting an
// invalid date would make it silently match everything or nothing.
func validateTransaction(tx *BankTransaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", ErrPrecondition)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: transaction %q has no valid date", ErrPrecondition, tx.ID)
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return fmt.Errorf("%w: transaction %q has non-finite amount", ErrPrecondition, tx.ID)
	}
	return nil
}
