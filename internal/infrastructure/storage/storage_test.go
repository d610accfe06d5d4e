package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorage_SaveAndGetRun(t *testing.T) {
	store := createTempStorage(t)

	run := &RunRecord{
		ID:               "run-123",
		StartedAt:        time.Now().UTC().Truncate(time.Second),
		DurationMS:       42,
		TransactionCount: 10,
		InvoiceCount:     7,
		MatchedCount:     4,
		SuspectCount:     2,
		UnmatchedCount:   2,
		RefundCount:      1,
		RentCount:        1,
	}
	require.NoError(t, store.SaveRun(run))

	got, err := store.GetRun("run-123")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.TransactionCount, got.TransactionCount)
	assert.Equal(t, run.MatchedCount, got.MatchedCount)
	assert.Equal(t, run.RentCount, got.RentCount)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
}

func TestStorage_GetRun_NotFound(t *testing.T) {
	store := createTempStorage(t)

	_, err := store.GetRun("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_ListRuns_NewestFirst(t *testing.T) {
	store := createTempStorage(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveRun(&RunRecord{
			ID:        []string{"run-a", "run-b", "run-c"}[i],
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
}

func TestStorage_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrations again without error.
	store, err = NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
