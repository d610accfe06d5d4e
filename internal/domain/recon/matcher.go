package recon

// Status thresholds for the best candidate score.
const (
	// MatchedThreshold is the minimum confidence for an automatic match.
	MatchedThreshold = 0.80

	// SuspectThreshold is the minimum confidence to keep a candidate
	// for manual review. Below it the candidate is discarded.
	SuspectThreshold = 0.40
)

// matchOutcome is the invoice matcher's verdict for one transaction.
type matchOutcome struct {
	status     MatchStatus
	invoice    *Invoice
	confidence float64
}

// matchInvoices scans the full invoice collection for the best
// candidate settling tx. The collection is read-only and never reduced
// across calls: one invoice may back more than one transaction, and
// deduplication (if wanted) belongs in a reservation layer owned by
// the caller.
//
// Ties keep the first invoice encountered in iteration order. That is
// a deliberate determinism rule: callers supply invoices in a stable
// order and get a stable result.
func matchInvoices(tx *BankTransaction, invoices []*Invoice) matchOutcome {
	hay := haystack(tx)

	var best *Invoice
	bestScore := 0.0

	for _, inv := range invoices {
		if !inv.Usable() {
			continue
		}
		score := scoreSignals(extractSignalsWithHaystack(tx, inv, hay))
		if score > bestScore {
			best = inv
			bestScore = score
		}
	}

	switch {
	case bestScore >= MatchedThreshold:
		return matchOutcome{status: StatusMatched, invoice: best, confidence: bestScore}
	case bestScore >= SuspectThreshold:
		return matchOutcome{status: StatusSuspect, invoice: best, confidence: bestScore}
	default:
		// Candidates below the suspect floor are noise, not evidence.
		return matchOutcome{status: StatusUnmatched, invoice: nil, confidence: 0}
	}
}
