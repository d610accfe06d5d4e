package invoicejson

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FullRecords(t *testing.T) {
	input := `[
		{"invoice_number": "RE123", "date": "2024-03-08", "supplier_name": "Acme GmbH", "gross_total": 150.0},
		{"invoice_number": "RE124", "date": "08.03.2024", "supplier_name": "Müller AG", "gross_total": 99.9}
	]`

	invoices, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.Equal(t, "RE123", invoices[0].InvoiceNumber)
	require.NotNil(t, invoices[0].GrossTotal)
	assert.InDelta(t, 150.0, *invoices[0].GrossTotal, 1e-9)
	assert.True(t, invoices[0].Usable())

	// German date form is accepted too.
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), invoices[1].Date)
}

func TestLoad_MissingFieldsAreTolerated(t *testing.T) {
	input := `[
		{"invoice_number": "RE1"},
		{"supplier_name": "Acme GmbH", "gross_total": 10.0},
		{"invoice_number": "RE2", "date": "not a date", "gross_total": 20.0}
	]`

	invoices, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, invoices, 3)

	for _, inv := range invoices {
		assert.False(t, inv.Usable())
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader("{not json"))
	assert.Error(t, err)
}
