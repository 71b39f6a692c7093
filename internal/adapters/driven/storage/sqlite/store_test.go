package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucikit/ucictl/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &domain.RunRecord{
		ID:        "run-1",
		StartedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Config:    "network",
		SpecName:  "lan baseline",
		Changed:   true,
		Commands:  []string{"uci set network.lan.proto=static"},
	}
	second := &domain.RunRecord{
		ID:        "run-2",
		StartedAt: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC),
		Config:    "wireless",
		DryRun:    true,
		Error:     "store invocation failed",
	}

	require.NoError(t, store.Record(ctx, first))
	require.NoError(t, store.Record(ctx, second))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "run-2", records[0].ID)
	assert.True(t, records[0].DryRun)
	assert.Equal(t, "store invocation failed", records[0].Error)
	assert.Empty(t, records[0].Commands)

	assert.Equal(t, "run-1", records[1].ID)
	assert.Equal(t, "lan baseline", records[1].SpecName)
	assert.True(t, records[1].Changed)
	assert.Equal(t, []string{"uci set network.lan.proto=static"}, records[1].Commands)
	assert.True(t, records[1].StartedAt.Equal(first.StartedAt))
}

func TestStore_RecentRespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &domain.RunRecord{
			ID:        fmt.Sprintf("run-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Config:    "network",
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-4", records[0].ID)
	assert.Equal(t, "run-3", records[1].ID)
}

func TestStore_Prune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &domain.RunRecord{
			ID:        fmt.Sprintf("run-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Config:    "network",
		}))
	}

	require.NoError(t, store.Prune(ctx, 2))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-4", records[0].ID)
}

func TestStore_RecordNilRejected(t *testing.T) {
	store := newTestStore(t)
	err := store.Record(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStore_ReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, &domain.RunRecord{
		ID:        "run-1",
		StartedAt: time.Now().UTC(),
		Config:    "network",
	}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
