// Package export renders reconciliation results for downstream
// bookkeeping tools, as CSV rows or a JSON report.
package export

import (
	"time"

	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
)

// Summary aggregates per-status counts for one run.
type Summary struct {
	Total        int `json:"total"`
	Matched      int `json:"matched"`
	Suspect      int `json:"suspect"`
	Unmatched    int `json:"unmatched"`
	Refunds      int `json:"refunds"`
	RentPayments int `json:"rent_payments"`
}

// Row is one flattened result record.
type Row struct {
	TransactionID string   `json:"transaction_id"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency,omitempty"`
	Status        string   `json:"status"`
	Confidence    *float64 `json:"confidence,omitempty"`
	InvoiceNumber string   `json:"invoice_number,omitempty"`
	Supplier      string   `json:"supplier,omitempty"`
	InvoiceTotal  *float64 `json:"invoice_total,omitempty"`
}

// Report is the top-level structure of the JSON output.
type Report struct {
	RunID     string  `json:"run_id"`
	CreatedAt string  `json:"created_at"`
	Summary   Summary `json:"summary"`
	Results   []Row   `json:"results"`
}

// Summarize tallies per-status counts.
func Summarize(results []*recon.MatchedTransaction) Summary {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case recon.StatusMatched:
			summary.Matched++
		case recon.StatusSuspect:
			summary.Suspect++
		case recon.StatusUnmatched:
			summary.Unmatched++
		case recon.StatusRefund:
			summary.Refunds++
		case recon.StatusRentPayment:
			summary.RentPayments++
		}
	}
	return summary
}

// BuildReport assembles the JSON report structure for one run.
func BuildReport(runID string, createdAt time.Time, results []*recon.MatchedTransaction) *Report {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, buildRow(r))
	}
	return &Report{
		RunID:     runID,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		Summary:   Summarize(results),
		Results:   rows,
	}
}

func buildRow(r *recon.MatchedTransaction) Row {
	row := Row{
		TransactionID: r.Transaction.ID,
		Date:          r.Transaction.Date.Format(time.DateOnly),
		Description:   r.Transaction.Description,
		Amount:        r.Transaction.Amount,
		Currency:      r.Transaction.Currency,
		Status:        string(r.Status),
		Confidence:    r.Confidence,
	}
	if inv := r.MatchedInvoice; inv != nil {
		row.InvoiceNumber = inv.InvoiceNumber
		row.Supplier = inv.SupplierName
		row.InvoiceTotal = inv.GrossTotal
	}
	return row
}
