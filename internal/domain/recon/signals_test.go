package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func gross(v float64) *float64 {
	return &v
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractSignals_AmountTolerance(t *testing.T) {
	tests := []struct {
		name     string
		txAmount float64
		gross    float64
		want     bool
	}{
		{"exact", -100.00, 100.00, true},
		{"within one cent", -100.01, 100.00, true},
		{"just over one cent", -100.02, 100.00, false},
		{"absolute value is compared", -49.995, 50.00, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &BankTransaction{ID: "tx1", Date: date(2024, 3, 10), Amount: tt.txAmount}
			inv := &Invoice{Date: date(2024, 3, 10), GrossTotal: gross(tt.gross)}
			assert.Equal(t, tt.want, extractSignals(tx, inv).AmountMatches)
		})
	}
}

func TestExtractSignals_DateTolerance(t *testing.T) {
	inv := &Invoice{Date: date(2024, 3, 10), GrossTotal: gross(10)}

	tests := []struct {
		name   string
		txDate time.Time
		want   bool
	}{
		{"same day", date(2024, 3, 10), true},
		{"three days after", date(2024, 3, 13), true},
		{"three days before", date(2024, 3, 7), true},
		{"four days after", date(2024, 3, 14), false},
		{"time of day is ignored", time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &BankTransaction{ID: "tx1", Date: tt.txDate, Amount: -1}
			assert.Equal(t, tt.want, extractSignals(tx, inv).DateMatches)
		})
	}
}

func TestExtractSignals_SupplierSubstring(t *testing.T) {
	tx := &BankTransaction{
		ID:               "tx1",
		Date:             date(2024, 3, 10),
		Amount:           -50,
		Description:      "Lastschrift MÜLLER GmbH Bestellung 42",
		RecipientOrPayer: "Acme AG",
	}

	t.Run("case insensitive with diacritic folding", func(t *testing.T) {
		inv := &Invoice{SupplierName: "Muller GmbH", Date: date(2024, 3, 10), GrossTotal: gross(50)}
		assert.True(t, extractSignals(tx, inv).SupplierInHaystack)
	})

	t.Run("recipient field is part of the haystack", func(t *testing.T) {
		inv := &Invoice{SupplierName: "acme", Date: date(2024, 3, 10), GrossTotal: gross(50)}
		assert.True(t, extractSignals(tx, inv).SupplierInHaystack)
	})

	t.Run("empty supplier never matches", func(t *testing.T) {
		inv := &Invoice{SupplierName: "", Date: date(2024, 3, 10), GrossTotal: gross(50)}
		assert.False(t, extractSignals(tx, inv).SupplierInHaystack)
	})

	t.Run("tokens shorter than three runes are rejected", func(t *testing.T) {
		inv := &Invoice{SupplierName: "ag", Date: date(2024, 3, 10), GrossTotal: gross(50)}
		assert.False(t, extractSignals(tx, inv).SupplierInHaystack)
	})
}

func TestExtractSignals_InvoiceNumber(t *testing.T) {
	tx := &BankTransaction{
		ID:          "tx1",
		Date:        date(2024, 3, 10),
		Amount:      -150,
		Description: "re123 Zahlung",
	}

	inv := &Invoice{InvoiceNumber: "RE123", Date: date(2024, 3, 8), GrossTotal: gross(150)}
	assert.True(t, extractSignals(tx, inv).InvoiceNrInHaystack)

	inv = &Invoice{InvoiceNumber: "RE999", Date: date(2024, 3, 8), GrossTotal: gross(150)}
	assert.False(t, extractSignals(tx, inv).InvoiceNrInHaystack)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ruckzahlung bestellung", normalizeText("  Rückzahlung Bestellung "))
	assert.Equal(t, "cafe", normalizeText("Café"))
}
