package cli

import (
	"fmt"
	"io"

	"github.com/thepsychonaut421/financio-recon/internal/application/service"
)

// PrintSummary writes a human-readable run summary.
func PrintSummary(w io.Writer, result *service.RunResult) {
	s := result.Summary
	fmt.Fprintf(w, "run %s: %d transactions\n", result.RunID, s.Total)
	fmt.Fprintf(w, "  matched:       %d\n", s.Matched)
	fmt.Fprintf(w, "  suspect:       %d (needs review)\n", s.Suspect)
	fmt.Fprintf(w, "  unmatched:     %d\n", s.Unmatched)
	fmt.Fprintf(w, "  refunds:       %d\n", s.Refunds)
	fmt.Fprintf(w, "  rent payments: %d\n", s.RentPayments)
}
