package recon

// Confidence levels assigned by the scoring cascade. An invoice number
// found in the transaction text combined with a matching amount is the
// strongest evidence; a matching date alone is the weakest.
const (
	scoreNumberAndAmount    = 0.95
	scoreAmountDateSupplier = 0.85
	scoreAmountDate         = 0.75
	scoreAmountSupplier     = 0.70
	scoreAmountOnly         = 0.50
	scoreSupplierDate       = 0.40
	scoreSupplierOnly       = 0.30
	scoreDateOnly           = 0.10
	scoreNone               = 0.0
)

// scoreSignals maps the four match signals to a confidence in [0,1].
// The rules form a strict priority cascade: the first rule that
// applies wins, rules are never combined additively.
func scoreSignals(s Signals) float64 {
	var score float64
	switch {
	case s.InvoiceNrInHaystack && s.AmountMatches:
		score = scoreNumberAndAmount
	case s.AmountMatches && s.DateMatches && s.SupplierInHaystack:
		score = scoreAmountDateSupplier
	case s.AmountMatches && s.DateMatches:
		score = scoreAmountDate
	case s.AmountMatches && s.SupplierInHaystack:
		score = scoreAmountSupplier
	case s.AmountMatches:
		score = scoreAmountOnly
	case s.SupplierInHaystack && s.DateMatches:
		score = scoreSupplierDate
	case s.SupplierInHaystack:
		score = scoreSupplierOnly
	case s.DateMatches:
		score = scoreDateOnly
	default:
		score = scoreNone
	}

	// Contractual clamp: no rule may push confidence above 1.0.
	if score > 1.0 {
		score = 1.0
	}
	return score
}
