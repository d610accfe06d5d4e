package dto

import (
	"time"

	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RunResponse represents a stored run summary in API responses.
type RunResponse struct {
	ID               string `json:"id"`
	StartedAt        string `json:"started_at"`
	DurationMS       int64  `json:"duration_ms"`
	TransactionCount int    `json:"transaction_count"`
	InvoiceCount     int    `json:"invoice_count"`
	MatchedCount     int    `json:"matched_count"`
	SuspectCount     int    `json:"suspect_count"`
	UnmatchedCount   int    `json:"unmatched_count"`
	RefundCount      int    `json:"refund_count"`
	RentCount        int    `json:"rent_count"`
}

// FromRunRecord converts a storage record to its API shape.
func FromRunRecord(run *storage.RunRecord) RunResponse {
	return RunResponse{
		ID:               run.ID,
		StartedAt:        run.StartedAt.UTC().Format(time.RFC3339),
		DurationMS:       run.DurationMS,
		TransactionCount: run.TransactionCount,
		InvoiceCount:     run.InvoiceCount,
		MatchedCount:     run.MatchedCount,
		SuspectCount:     run.SuspectCount,
		UnmatchedCount:   run.UnmatchedCount,
		RefundCount:      run.RefundCount,
		RentCount:        run.RentCount,
	}
}
