// Package recon implements the transaction-to-invoice matching engine.
//
// The engine decides which bank transactions pay which invoices and
// flags ambiguous or special cases (refunds, rent) for human review.
// It is a pure function of its inputs: no I/O, no persistence, no
// shared state between calls. Input validation of transactions is
// enforced at the Match boundary; incomplete invoices are tolerated
// and simply skipped during scoring.
//
// Example usage:
//
//	engine := recon.NewEngine()
//	results, err := engine.Match(transactions, invoices)
//	for _, r := range results {
//		fmt.Println(r.Transaction.ID, r.Status)
//	}
package recon

import "time"

// MatchStatus classifies the outcome for a single bank transaction.
type MatchStatus string

const (
	// StatusMatched means a high-confidence invoice match (>= 0.80).
	StatusMatched MatchStatus = "matched"

	// StatusSuspect means a moderate-confidence candidate (0.40-0.80)
	// that always requires manual confirmation downstream. The engine
	// never promotes a suspect to matched on its own.
	StatusSuspect MatchStatus = "suspect"

	// StatusUnmatched means no invoice association could be made.
	StatusUnmatched MatchStatus = "unmatched"

	// StatusRefund marks an incoming amount recognized as a refund.
	StatusRefund MatchStatus = "refund"

	// StatusRentPayment marks an outgoing amount recognized as rent
	// when no significant invoice match exists.
	StatusRentPayment MatchStatus = "rent_payment"
)

// BankTransaction is one row of a normalized bank statement.
// Amounts are signed: negative = debit/payment, positive = credit.
// Dates and amounts must be valid before reaching the engine;
// normalization of bank export formats is an upstream concern.
type BankTransaction struct {
	ID               string
	Date             time.Time
	Description      string
	Amount           float64
	Currency         string
	RecipientOrPayer string
}

// Invoice is a previously extracted invoice record. All fields are
// optional: extraction may fail per field. An invoice without a gross
// total or date cannot be scored and is skipped, never rejected.
type Invoice struct {
	InvoiceNumber string
	Date          time.Time // zero value when unknown
	SupplierName  string
	GrossTotal    *float64 // full amount including tax; nil when unknown
}

// Usable reports whether the invoice carries enough data to be scored.
func (inv *Invoice) Usable() bool {
	return inv != nil && inv.GrossTotal != nil && !inv.Date.IsZero()
}

// MatchedTransaction is the engine's verdict for one transaction.
// It is created once and never re-evaluated.
type MatchedTransaction struct {
	Transaction    *BankTransaction
	MatchedInvoice *Invoice // nil when no invoice is associated
	Status         MatchStatus
	Confidence     *float64 // in [0,1]; nil for refund/rent outcomes
}

// confidence returns a pointer to v for optional confidence fields.
func confidence(v float64) *float64 {
	return &v
}
