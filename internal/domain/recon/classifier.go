package recon

import "strings"

// Keyword sets used for special-case detection. Both German and
// English bank wordings occur in the statements this engine sees.
var (
	refundKeywords = []string{"rückzahlung", "refund"}
	rentKeywords   = []string{"miete", "rent"}
)

// containsAnyKeyword reports whether the normalized haystack contains
// any of the given keywords. Keywords pass through the same
// normalization as the haystack so "Rückzahlung" matches its folded
// form.
func containsAnyKeyword(hay string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(hay, normalizeText(kw)) {
			return true
		}
	}
	return false
}

// classify dispatches one transaction by amount sign and resolves its
// final status.
//
// Positive amounts never reach the invoice matcher: income is not
// reconciled against purchase invoices. This is a documented
// limitation of the design, not an oversight.
func classify(tx *BankTransaction, invoices []*Invoice) *MatchedTransaction {
	if tx.Amount > 0 {
		return classifyIncoming(tx)
	}
	return classifyOutgoing(tx, invoices)
}

// classifyIncoming handles credits: refunds are recognized by
// keyword, everything else stays unmatched.
func classifyIncoming(tx *BankTransaction) *MatchedTransaction {
	if containsAnyKeyword(haystack(tx), refundKeywords) {
		return &MatchedTransaction{
			Transaction: tx,
			Status:      StatusRefund,
		}
	}
	return &MatchedTransaction{
		Transaction: tx,
		Status:      StatusUnmatched,
		Confidence:  confidence(0),
	}
}

// classifyOutgoing handles debits: run the invoice matcher, then apply
// the rent override when no significant match was found.
func classifyOutgoing(tx *BankTransaction, invoices []*Invoice) *MatchedTransaction {
	outcome := matchInvoices(tx, invoices)

	// A match is significant only when it cleared the automatic-match
	// threshold. Suspects are kept for review but do not block the
	// rent override: discarding a weak invoice association in favor of
	// an explicit rent classification loses less information than the
	// other way around.
	if outcome.status != StatusMatched && containsAnyKeyword(haystack(tx), rentKeywords) {
		return &MatchedTransaction{
			Transaction: tx,
			Status:      StatusRentPayment,
		}
	}

	return &MatchedTransaction{
		Transaction:    tx,
		MatchedInvoice: outcome.invoice,
		Status:         outcome.status,
		Confidence:     confidence(outcome.confidence),
	}
}
