package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"transaction_id", "date", "description", "amount", "currency",
	"status", "confidence", "invoice_number", "supplier", "invoice_total",
}

// WriteCSV writes the report's result rows as CSV.
func WriteCSV(w io.Writer, report *Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Results {
		record := []string{
			row.TransactionID,
			row.Date,
			row.Description,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.Currency,
			row.Status,
			formatOptional(row.Confidence),
			row.InvoiceNumber,
			row.Supplier,
			formatOptional(row.InvoiceTotal),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the full report, indented for human inspection.
func WriteJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// formatOptional renders an optional decimal; absent values become
// empty CSV cells rather than zeroes.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
