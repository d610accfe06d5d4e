package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
)

func sampleResults() []*recon.MatchedTransaction {
	total := 150.0
	conf := 0.95
	zero := 0.0
	return []*recon.MatchedTransaction{
		{
			Transaction: &recon.BankTransaction{
				ID:          "tx1",
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
				Description: "RE123 Zahlung",
				Amount:      -150.00,
				Currency:    "EUR",
			},
			MatchedInvoice: &recon.Invoice{
				InvoiceNumber: "RE123",
				SupplierName:  "Acme GmbH",
				GrossTotal:    &total,
				Date:          time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			},
			Status:     recon.StatusMatched,
			Confidence: &conf,
		},
		{
			Transaction: &recon.BankTransaction{
				ID:          "tx2",
				Date:        time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
				Description: "Rückzahlung",
				Amount:      25.00,
			},
			Status: recon.StatusRefund,
		},
		{
			Transaction: &recon.BankTransaction{
				ID:          "tx3",
				Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
				Description: "Kaffee",
				Amount:      -10.00,
			},
			Status:     recon.StatusUnmatched,
			Confidence: &zero,
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResults())

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Matched)
	assert.Equal(t, 1, summary.Refunds)
	assert.Equal(t, 1, summary.Unmatched)
	assert.Zero(t, summary.Suspect)
	assert.Zero(t, summary.RentPayments)
}

func TestWriteCSV(t *testing.T) {
	report := BuildReport("run-1", time.Now(), sampleResults())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.Contains(t, lines[1], "tx1,2024-03-10,RE123 Zahlung,-150.00,EUR,matched,0.95,RE123,Acme GmbH,150.00")

	// Refund rows carry no confidence and no invoice columns.
	assert.Contains(t, lines[2], "refund,,,")
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	report := BuildReport("run-1", time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC), sampleResults())

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, "2024-03-12T09:00:00Z", decoded.CreatedAt)
	require.Len(t, decoded.Results, 3)
	assert.Equal(t, "matched", decoded.Results[0].Status)
	require.NotNil(t, decoded.Results[0].Confidence)
	assert.InDelta(t, 0.95, *decoded.Results[0].Confidence, 1e-9)
	assert.Nil(t, decoded.Results[1].Confidence)
}
