package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thepsychonaut421/financio-recon/internal/adapters/export"
	"github.com/thepsychonaut421/financio-recon/internal/api/dto"
	"github.com/thepsychonaut421/financio-recon/internal/application/service"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*Server, storage.Repository) {
	t.Helper()

	store, err := storage.NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := service.NewReconcileService(store, nil, 1)
	cfg := Config{Port: 0, AllowedOrigins: []string{"http://localhost:3000"}}
	return NewServer(cfg, svc, store, nil), store
}

func TestServer_Health(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestServer_Reconcile(t *testing.T) {
	server, store := newTestServer(t)

	body := `{
		"transactions": [
			{"id": "tx1", "date": "2024-03-10", "description": "RE123 Zahlung", "amount": -150.0},
			{"id": "tx2", "date": "2024-03-11", "description": "Rückzahlung Bestellung", "amount": 25.0}
		],
		"invoices": [
			{"invoice_number": "RE123", "date": "2024-03-08", "supplier_name": "Acme GmbH", "gross_total": 150.0}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report export.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Matched)
	assert.Equal(t, 1, report.Summary.Refunds)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "matched", report.Results[0].Status)
	assert.Equal(t, "RE123", report.Results[0].InvoiceNumber)

	// The run summary was persisted and is visible via the API.
	run, err := store.GetRun(report.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.TransactionCount)
}

func TestServer_Reconcile_InvalidDate(t *testing.T) {
	server, _ := newTestServer(t)

	body := `{"transactions": [{"id": "tx1", "date": "10.03.2024", "amount": -1.0}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
}

func TestServer_Reconcile_MalformedBody(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Runs(t *testing.T) {
	server, store := newTestServer(t)

	require.NoError(t, store.SaveRun(&storage.RunRecord{
		ID:               "run-1",
		StartedAt:        time.Now().UTC(),
		TransactionCount: 5,
	}))

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var runs []dto.RunResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "run-1", runs[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-1", nil)
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var run dto.RunResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
		assert.Equal(t, 5, run.TransactionCount)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/missing", nil)
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
