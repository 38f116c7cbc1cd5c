package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHistoryStore_AppendAndRecent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	history := store.SearchHistoryStore()
	advance := fixedClock(store, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	for _, q := range []string{"hair", "shoes", "hair"} {
		require.NoError(t, history.Append(ctx, q, 100))
		advance(time.Second)
	}

	entries, err := history.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "hair", entries[0].Query)
	assert.Equal(t, "shoes", entries[1].Query)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 2, 0, time.UTC), entries[0].SearchedAt)
	assert.Greater(t, entries[0].ID, entries[1].ID)

	limited, err := history.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSearchHistoryStore_Prunes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	history := store.SearchHistoryStore()

	for i := range 8 {
		require.NoError(t, history.Append(ctx, fmt.Sprintf("q%d", i), 5))
	}

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM search_history").Scan(&count))
	assert.Equal(t, 5, count)

	entries, err := history.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "q7", entries[0].Query)
	assert.Equal(t, "q3", entries[4].Query)
}

func TestSearchHistoryStore_NoPruneWhenKeepDisabled(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	history := store.SearchHistoryStore()

	for range 3 {
		require.NoError(t, history.Append(ctx, "q", 0))
	}

	entries, err := history.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
