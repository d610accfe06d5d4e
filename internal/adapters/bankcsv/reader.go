// Package bankcsv reads bank statement CSV exports and normalizes
// them into engine-ready transactions.
//
// German bank exports write amounts as "1.234,56" and dates as
// "18.01.2025"; both forms are normalized here so the matching engine
// only ever sees valid dates and finite signed amounts.
package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
)

// Column aliases accepted in the header row, lowercased.
var columnAliases = map[string]string{
	"id":                 "id",
	"referenz":           "id",
	"date":               "date",
	"datum":              "date",
	"buchungstag":        "date",
	"description":        "description",
	"beschreibung":       "description",
	"verwendungszweck":   "description",
	"amount":             "amount",
	"betrag":             "amount",
	"currency":           "currency",
	"waehrung":           "currency",
	"währung":            "currency",
	"recipient":          "recipient",
	"empfaenger":         "recipient",
	"empfänger":          "recipient",
	"recipient_or_payer": "recipient",
}

var dateLayouts = []string{
	"2006-01-02", // ISO
	"02.01.2006", // German
}

// ParseFile reads and parses a bank statement CSV file.
func ParseFile(path string) ([]*recon.BankTransaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank statement file %s: %w", path, err)
	}
	defer file.Close()

	transactions, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return transactions, nil
}

// Parse reads a bank statement CSV from r. The first row must be a
// header containing at least id, date, description and amount columns
// (German aliases accepted).
func Parse(r io.Reader) ([]*recon.BankTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []*recon.BankTransaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		line++

		tx, err := buildTransaction(columns, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// mapColumns resolves header names to canonical column indexes.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			columns[canonical] = i
		}
	}
	for _, required := range []string{"id", "date", "description", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q in header", required)
		}
	}
	return columns, nil
}

func buildTransaction(columns map[string]int, record []string) (*recon.BankTransaction, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := ParseDate(field("date"))
	if err != nil {
		return nil, err
	}

	amount, err := ParseAmount(field("amount"))
	if err != nil {
		return nil, err
	}

	return &recon.BankTransaction{
		ID:               field("id"),
		Date:             date,
		Description:      field("description"),
		Amount:           amount,
		Currency:         field("currency"),
		RecipientOrPayer: field("recipient"),
	}, nil
}

// ParseDate parses an ISO (2025-01-18) or German (18.01.2025) date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", s)
}

// ParseAmount parses a signed decimal amount in plain ("1234.56") or
// German ("1.234,56") notation.
func ParseAmount(s string) (float64, error) {
	normalized := s
	if strings.Contains(s, ",") {
		// German notation: dots are thousands separators, the comma
		// is the decimal mark.
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	}

	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse amount %q: %w", s, err)
	}
	return amount, nil
}
