package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// createCollection inserts a collection with the store clock.
func createCollection(t *testing.T, store *Store, id, name string) {
	t.Helper()
	now := store.now()
	err := store.CollectionStore().Create(context.Background(), &domain.Collection{
		ID:        id,
		Name:      name,
		Color:     "#ff8800",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func itemIDs(items []domain.Item) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// ==================== Favorites ====================

func TestFavoriteStore_AddListRemove(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	favs := store.FavoriteStore()
	seedItems(t, store, 1, 2, 3)

	require.NoError(t, favs.Add(ctx, 3))
	require.NoError(t, favs.Add(ctx, 1))

	items, err := favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, itemIDs(items))

	ok, err := favs.Contains(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, favs.Remove(ctx, 3))
	ok, err = favs.Contains(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavoriteStore_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	favs := store.FavoriteStore()
	advance := fixedClock(store, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	seedItems(t, store, 1)

	require.NoError(t, favs.Add(ctx, 1))
	advance(time.Hour)
	require.NoError(t, favs.Add(ctx, 1))

	var count int
	var createdAt string
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*), MIN(created_at) FROM favorites").Scan(&count, &createdAt))
	assert.Equal(t, 1, count)
	assert.Equal(t, "2026-05-01T00:00:00.000000Z", createdAt)

	require.NoError(t, favs.Remove(ctx, 1))
	require.NoError(t, favs.Remove(ctx, 1))
	require.NoError(t, favs.Remove(ctx, 404))
}

func TestFavoriteStore_UnknownItem(t *testing.T) {
	store := setupTestStore(t)

	err := store.FavoriteStore().Add(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ==================== Collections ====================

func TestCollectionStore_Lifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	cols := store.CollectionStore()
	advance := fixedClock(store, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	createCollection(t, store, "c1", "Outfits")
	advance(time.Minute)
	createCollection(t, store, "c2", "Outfits")

	advance(time.Minute)
	require.NoError(t, cols.Rename(ctx, "c1", "Hair"))
	require.NoError(t, cols.UpdateColor(ctx, "c1", "#000000"))

	c, err := cols.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Hair", c.Name)
	assert.Equal(t, "#000000", c.Color)
	assert.True(t, c.UpdatedAt.After(c.CreatedAt))

	list, err := cols.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "c2", list[1].ID)

	require.NoError(t, cols.Delete(ctx, "c1"))
	_, err = cols.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectionStore_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	cols := store.CollectionStore()
	seedItems(t, store, 1)

	assert.ErrorIs(t, cols.Rename(ctx, "missing", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, cols.UpdateColor(ctx, "missing", "#fff"), domain.ErrNotFound)
	assert.ErrorIs(t, cols.Delete(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, cols.AddItem(ctx, "missing", 1), domain.ErrNotFound)
	assert.ErrorIs(t, cols.RemoveItem(ctx, "missing", 1), domain.ErrNotFound)

	_, err := cols.Items(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	createCollection(t, store, "c1", "Outfits")
	assert.ErrorIs(t, cols.AddItem(ctx, "c1", 404), domain.ErrNotFound)
}

func TestCollectionStore_CreateInvalid(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.CollectionStore().Create(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.CollectionStore().Create(ctx, &domain.Collection{}), domain.ErrInvalidInput)

	createCollection(t, store, "dup", "A")
	err := store.CollectionStore().Create(ctx, &domain.Collection{ID: "dup", Name: "B", Color: "#fff"})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestCollectionStore_Membership(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	cols := store.CollectionStore()
	seedItems(t, store, 1, 2, 3)
	createCollection(t, store, "c1", "Outfits")

	require.NoError(t, cols.AddItem(ctx, "c1", 3))
	require.NoError(t, cols.AddItem(ctx, "c1", 1))
	require.NoError(t, cols.AddItem(ctx, "c1", 3))

	items, err := cols.Items(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, itemIDs(items))

	c, err := cols.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount)

	require.NoError(t, cols.RemoveItem(ctx, "c1", 3))
	require.NoError(t, cols.RemoveItem(ctx, "c1", 3))

	items, err = cols.Items(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, itemIDs(items))
}

func TestCollectionStore_DeleteCascades(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	cols := store.CollectionStore()
	seedItems(t, store, 1)
	createCollection(t, store, "c1", "Outfits")
	require.NoError(t, cols.AddItem(ctx, "c1", 1))

	require.NoError(t, cols.Delete(ctx, "c1"))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM collection_items").Scan(&count))
	assert.Zero(t, count)

	// Items survive the collection.
	_, err := store.ItemStore().Get(ctx, 1)
	assert.NoError(t, err)
}

func TestCollectionStore_ForItems(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	cols := store.CollectionStore()
	advance := fixedClock(store, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	seedItems(t, store, 1, 2, 3)

	createCollection(t, store, "c1", "First")
	advance(time.Second)
	createCollection(t, store, "c2", "Second")

	require.NoError(t, cols.AddItem(ctx, "c2", 1))
	require.NoError(t, cols.AddItem(ctx, "c1", 1))
	require.NoError(t, cols.AddItem(ctx, "c2", 2))

	byItem, err := cols.ForItems(ctx, []int64{1, 2, 3, 404})
	require.NoError(t, err)
	require.Len(t, byItem, 4)

	require.Len(t, byItem[1], 2)
	assert.Equal(t, "c1", byItem[1][0].ID)
	assert.Equal(t, "c2", byItem[1][1].ID)
	assert.Equal(t, 2, byItem[1][1].ItemCount)
	require.Len(t, byItem[2], 1)
	assert.NotNil(t, byItem[3])
	assert.Empty(t, byItem[3])
	assert.Empty(t, byItem[404])

	single, err := cols.ForItem(ctx, 2)
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "c2", single[0].ID)
}

// ==================== Tags ====================

func TestTagStore_SetReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	tags := store.TagStore()
	seedItems(t, store, 1, 2)

	require.NoError(t, tags.SetItemTags(ctx, 1, []string{"cute", "avatar"}))
	require.NoError(t, tags.SetItemTags(ctx, 2, []string{"avatar"}))

	got, err := tags.ItemTags(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"avatar", "cute"}, got)

	require.NoError(t, tags.SetItemTags(ctx, 1, []string{"outfit"}))
	got, err = tags.ItemTags(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"outfit"}, got)

	all, err := tags.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"avatar", "outfit"}, all)

	// "cute" is no longer referenced and has been pruned.
	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM tags WHERE name = 'cute'").Scan(&count))
	assert.Zero(t, count)
}

func TestTagStore_ClearAndUnknown(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	tags := store.TagStore()
	seedItems(t, store, 1)

	require.NoError(t, tags.SetItemTags(ctx, 1, []string{"a"}))
	require.NoError(t, tags.SetItemTags(ctx, 1, nil))

	got, err := tags.ItemTags(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.ErrorIs(t, tags.SetItemTags(ctx, 404, []string{"a"}), domain.ErrNotFound)
}

func TestTagStore_ForItems(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	tags := store.TagStore()
	seedItems(t, store, 1, 2)

	require.NoError(t, tags.SetItemTags(ctx, 1, []string{"b", "a"}))

	byItem, err := tags.ForItems(ctx, []int64{1, 2, 404})
	require.NoError(t, err)
	require.Len(t, byItem, 3)
	assert.Equal(t, []string{"a", "b"}, byItem[1])
	assert.NotNil(t, byItem[2])
	assert.Empty(t, byItem[2])
	assert.Empty(t, byItem[404])
}
