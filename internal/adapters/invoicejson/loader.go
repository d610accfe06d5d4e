// Package invoicejson loads previously extracted invoice records.
//
// The records are the output of an external extraction step (AI/OCR
// over PDFs), so any field may be missing. Missing fields are
// tolerated: the matching engine skips invoices it cannot score.
package invoicejson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
)

// dateLayouts mirrors the statement reader: extraction emits ISO
// dates, older exports used the German form.
var dateLayouts = []string{"2006-01-02", "02.01.2006"}

// invoiceRecord is the on-disk shape of one extracted invoice.
type invoiceRecord struct {
	InvoiceNumber string   `json:"invoice_number"`
	Date          string   `json:"date"`
	SupplierName  string   `json:"supplier_name"`
	GrossTotal    *float64 `json:"gross_total"`
}

// LoadFile reads and parses an invoice records JSON file.
func LoadFile(path string) ([]*recon.Invoice, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open invoice file %s: %w", path, err)
	}
	defer file.Close()

	invoices, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return invoices, nil
}

// Load parses a JSON array of invoice records from r.
func Load(r io.Reader) ([]*recon.Invoice, error) {
	var records []invoiceRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode invoice records: %w", err)
	}

	invoices := make([]*recon.Invoice, 0, len(records))
	for _, rec := range records {
		invoices = append(invoices, &recon.Invoice{
			InvoiceNumber: rec.InvoiceNumber,
			Date:          parseOptionalDate(rec.Date),
			SupplierName:  rec.SupplierName,
			GrossTotal:    rec.GrossTotal,
		})
	}
	return invoices, nil
}

// parseOptionalDate returns the zero time for absent or unparseable
// dates. An invoice without a date is unusable for scoring but never
// an error.
func parseOptionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
