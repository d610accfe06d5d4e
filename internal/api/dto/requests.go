// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"fmt"
	"time"

	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
)

// ReconcileRequest is the payload of POST /api/v1/reconcile:
// normalized transactions and extracted invoice records, inline.
type ReconcileRequest struct {
	Transactions []TransactionRequest `json:"transactions" binding:"required"`
	Invoices     []InvoiceRequest     `json:"invoices"`
}

// TransactionRequest is one normalized bank transaction. Dates are
// ISO (YYYY-MM-DD); amounts are signed decimals, negative for debits.
type TransactionRequest struct {
	ID               string  `json:"id"`
	Date             string  `json:"date" binding:"required"`
	Description      string  `json:"description"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	RecipientOrPayer string  `json:"recipient_or_payer"`
}

// InvoiceRequest is one extracted invoice record; every field may be
// absent.
type InvoiceRequest struct {
	InvoiceNumber string   `json:"invoice_number"`
	Date          string   `json:"date"`
	SupplierName  string   `json:"supplier_name"`
	GrossTotal    *float64 `json:"gross_total"`
}

// ToDomain converts the request into engine inputs. A transaction
// with an unparseable date fails the conversion: the engine contract
// demands valid dates and the API is the enforcement boundary.
func (r *ReconcileRequest) ToDomain() ([]*recon.BankTransaction, []*recon.Invoice, error) {
	transactions := make([]*recon.BankTransaction, 0, len(r.Transactions))
	for i, tx := range r.Transactions {
		date, err := time.Parse(time.DateOnly, tx.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("transactions[%d]: invalid date %q (want YYYY-MM-DD)", i, tx.Date)
		}
		transactions = append(transactions, &recon.BankTransaction{
			ID:               tx.ID,
			Date:             date,
			Description:      tx.Description,
			Amount:           tx.Amount,
			Currency:         tx.Currency,
			RecipientOrPayer: tx.RecipientOrPayer,
		})
	}

	invoices := make([]*recon.Invoice, 0, len(r.Invoices))
	for _, inv := range r.Invoices {
		var date time.Time
		if inv.Date != "" {
			// Invoice dates are optional; an unparseable one leaves
			// the invoice unusable rather than failing the request.
			if parsed, err := time.Parse(time.DateOnly, inv.Date); err == nil {
				date = parsed
			}
		}
		invoices = append(invoices, &recon.Invoice{
			InvoiceNumber: inv.InvoiceNumber,
			Date:          date,
			SupplierName:  inv.SupplierName,
			GrossTotal:    inv.GrossTotal,
		})
	}

	return transactions, invoices, nil
}
