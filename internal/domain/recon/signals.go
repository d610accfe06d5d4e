package recon

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matching tolerances. These are part of the engine contract, not
// runtime options.
const (
	// AmountTolerance is the absolute tolerance for amount equality.
	// Invoice currency is assumed to equal transaction currency.
	AmountTolerance = 0.01

	// DateToleranceDays is the maximum day distance between a
	// transaction and the invoice it settles.
	DateToleranceDays = 3

	// minTokenLength guards substring matching against false
	// positives on very short supplier names or invoice numbers.
	minTokenLength = 3
)

// Signals holds the four boolean match signals computed for one
// (transaction, invoice) pair.
type Signals struct {
	AmountMatches       bool
	DateMatches         bool
	SupplierInHaystack  bool
	InvoiceNrInHaystack bool
}

// foldCase strips diacritics and lowercases, producing a canonical
// key for substring comparison ("Müller GmbH" -> "muller gmbh").
var foldCase = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText builds a canonical comparison key: trimmed,
// diacritic-folded, lowercased.
func normalizeText(s string) string {
	folded, _, err := transform.String(foldCase, s)
	if err != nil {
		// Fold failure leaves the input usable as-is.
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// haystack concatenates the transaction's free-text fields into the
// single normalized string searched for keyword and token signals.
func haystack(tx *BankTransaction) string {
	return normalizeText(tx.Description + " " + tx.RecipientOrPayer)
}

// containsToken reports whether needle occurs in the normalized
// haystack. Tokens shorter than minTokenLength never match.
func containsToken(hay, needle string) bool {
	key := normalizeText(needle)
	if len([]rune(key)) < minTokenLength {
		return false
	}
	return strings.Contains(hay, key)
}

// daysBetween returns the absolute calendar-day distance between two
// dates, ignoring time-of-day and timezone offsets.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	diff := da.Sub(db).Hours() / 24
	return int(math.Abs(diff))
}

// extractSignals computes the four match signals for one transaction
// against one invoice. The invoice must be Usable.
func extractSignals(tx *BankTransaction, inv *Invoice) Signals {
	hay := haystack(tx)
	return extractSignalsWithHaystack(tx, inv, hay)
}

// extractSignalsWithHaystack is the allocation-friendly variant used
// by the matcher loop, which computes the haystack once per
// transaction instead of once per invoice.
func extractSignalsWithHaystack(tx *BankTransaction, inv *Invoice, hay string) Signals {
	return Signals{
		AmountMatches:       math.Abs(math.Abs(tx.Amount)-*inv.GrossTotal) <= AmountTolerance,
		DateMatches:         daysBetween(tx.Date, inv.Date) <= DateToleranceDays,
		SupplierInHaystack:  inv.SupplierName != "" && containsToken(hay, inv.SupplierName),
		InvoiceNrInHaystack: inv.InvoiceNumber != "" && containsToken(hay, inv.InvoiceNumber),
	}
}
