package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

func TestServer_handleCacheItems(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	t.Run("caches and reads back", func(t *testing.T) {
		wish := 12
		r := record(1, "Rusk", 1500)
		r.WishListsCount = &wish

		_, out, err := server.handleCacheItems(ctx, nil, CacheItemsInput{Items: []ItemRecord{r, record(2, "Manuka", 0)}})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)

		_, got, err := server.handleGetItem(ctx, nil, ItemIDInput{ItemID: 1})
		require.NoError(t, err)
		assert.Equal(t, "Rusk", got.Item.Name)
		assert.Equal(t, 1500, got.Item.Price)
		assert.Equal(t, "https://img.example.com/Rusk.png", got.Item.ThumbnailURL)
		require.NotNil(t, got.Item.WishListsCount)
		assert.Equal(t, 12, *got.Item.WishListsCount)
		assert.NotEmpty(t, got.Item.LastCachedAt)
	})

	t.Run("invalid item rejects the batch", func(t *testing.T) {
		_, _, err := server.handleCacheItems(ctx, nil, CacheItemsInput{Items: []ItemRecord{record(3, "Ok", 1), {ID: 4}}})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = server.handleGetItem(ctx, nil, ItemIDInput{ItemID: 3})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get items skips unknown ids", func(t *testing.T) {
		_, out, err := server.handleGetItems(ctx, nil, ItemIDsInput{ItemIDs: []int64{2, 99, 1}})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)
	})
}

func TestServer_FavoriteTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	_, _, err := server.handleCacheItems(ctx, nil, CacheItemsInput{Items: []ItemRecord{record(1, "A", 0), record(2, "B", 0)}})
	require.NoError(t, err)

	for range 2 {
		_, out, err := server.handleAddFavorite(ctx, nil, ItemIDInput{ItemID: 2})
		require.NoError(t, err)
		assert.True(t, out.OK)
	}
	_, _, err = server.handleAddFavorite(ctx, nil, ItemIDInput{ItemID: 1})
	require.NoError(t, err)

	_, favs, err := server.handleGetFavorites(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.Equal(t, 2, favs.Count)
	assert.Equal(t, int64(2), favs.Items[0].ID)
	assert.Equal(t, int64(1), favs.Items[1].ID)

	_, is, err := server.handleIsFavorite(ctx, nil, ItemIDInput{ItemID: 2})
	require.NoError(t, err)
	assert.True(t, is.IsFavorite)

	_, _, err = server.handleRemoveFavorite(ctx, nil, ItemIDInput{ItemID: 2})
	require.NoError(t, err)
	_, is, err = server.handleIsFavorite(ctx, nil, ItemIDInput{ItemID: 2})
	require.NoError(t, err)
	assert.False(t, is.IsFavorite)

	_, _, err = server.handleAddFavorite(ctx, nil, ItemIDInput{ItemID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_CollectionTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	_, _, err := server.handleCacheItems(ctx, nil, CacheItemsInput{Items: []ItemRecord{record(1, "A", 0), record(2, "B", 0)}})
	require.NoError(t, err)

	_, created, err := server.handleCreateCollection(ctx, nil, CreateCollectionInput{Name: "Wishlist", Color: "#ff8800"})
	require.NoError(t, err)
	id := created.Collection.ID
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, created.Collection.CreatedAt)

	_, _, err = server.handleAddToCollection(ctx, nil, MembershipInput{CollectionID: id, ItemID: 2})
	require.NoError(t, err)
	_, _, err = server.handleAddToCollection(ctx, nil, MembershipInput{CollectionID: id, ItemID: 1})
	require.NoError(t, err)

	_, items, err := server.handleGetCollectionItems(ctx, nil, CollectionIDInput{CollectionID: id})
	require.NoError(t, err)
	require.Equal(t, 2, items.Count)
	assert.Equal(t, int64(2), items.Items[0].ID)

	_, _, err = server.handleRenameCollection(ctx, nil, RenameCollectionInput{CollectionID: id, Name: "Wants"})
	require.NoError(t, err)
	_, _, err = server.handleUpdateCollectionColor(ctx, nil, CollectionColorInput{CollectionID: id, Color: "#00ff00"})
	require.NoError(t, err)

	_, list, err := server.handleGetCollections(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Wants", list.Collections[0].Name)
	assert.Equal(t, "#00ff00", list.Collections[0].Color)
	assert.Equal(t, 2, list.Collections[0].ItemCount)

	_, of, err := server.handleGetItemCollections(ctx, nil, ItemIDInput{ItemID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, of.Count)
	assert.Equal(t, id, of.Collections[0].ID)

	_, batch, err := server.handleGetItemCollectionsBatch(ctx, nil, ItemIDsInput{ItemIDs: []int64{1, 3}})
	require.NoError(t, err)
	assert.Len(t, batch.Collections["1"], 1)
	assert.Empty(t, batch.Collections["3"])

	_, _, err = server.handleRemoveFromCollection(ctx, nil, MembershipInput{CollectionID: id, ItemID: 2})
	require.NoError(t, err)
	_, _, err = server.handleDeleteCollection(ctx, nil, CollectionIDInput{CollectionID: id})
	require.NoError(t, err)

	_, _, err = server.handleGetCollectionItems(ctx, nil, CollectionIDInput{CollectionID: id})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = server.handleCreateCollection(ctx, nil, CreateCollectionInput{Name: "Bad", Color: "orange"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_TagTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	_, _, err := server.handleCacheItems(ctx, nil, CacheItemsInput{Items: []ItemRecord{record(1, "A", 0), record(2, "B", 0)}})
	require.NoError(t, err)

	_, _, err = server.handleSetItemTags(ctx, nil, SetTagsInput{ItemID: 1, Tags: []string{" Rare ", "blue", "rare"}})
	require.NoError(t, err)

	_, tags, err := server.handleGetItemTags(ctx, nil, ItemIDInput{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "rare"}, tags.Tags)

	_, all, err := server.handleGetAllUserTags(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "rare"}, all.Tags)

	_, batch, err := server.handleGetItemTagsBatch(ctx, nil, ItemIDsInput{ItemIDs: []int64{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "rare"}, batch.Tags["1"])
	assert.Equal(t, []string{}, batch.Tags["2"])

	_, _, err = server.handleSetItemTags(ctx, nil, SetTagsInput{ItemID: 1, Tags: nil})
	require.NoError(t, err)
	_, tags, err = server.handleGetItemTags(ctx, nil, ItemIDInput{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags.Tags)
}

func TestServer_HistoryTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	for _, q := range []string{"hair", "hat", "hair"} {
		_, _, err := server.handleSaveSearchHistory(ctx, nil, SaveSearchInput{Query: q})
		require.NoError(t, err)
	}

	_, _, err := server.handleSaveSearchHistory(ctx, nil, SaveSearchInput{Query: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, hist, err := server.handleGetSearchHistory(ctx, nil, LimitInput{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 2, hist.Count)
	assert.Equal(t, "hair", hist.Entries[0].Query)
	assert.Equal(t, "hat", hist.Entries[1].Query)
	assert.NotEmpty(t, hist.Entries[0].SearchedAt)

	_, stats, err := server.handleGetSearchHistoryStats(ctx, nil, LimitInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSearches)
	assert.Equal(t, 2, stats.UniqueQueries)
	require.NotEmpty(t, stats.TopQueries)
	assert.Equal(t, domain.QueryCount{Query: "hair", Count: 2}, stats.TopQueries[0])
}

func TestServer_PopularTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	_, check, err := server.handleCheckAvatarsNeedUpdate(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.True(t, check.NeedsUpdate)

	_, out, err := server.handleUpdatePopularAvatars(ctx, nil, CacheItemsInput{
		Items: []ItemRecord{record(10, "Top", 0), record(11, "Second", 500)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, check, err = server.handleCheckAvatarsNeedUpdate(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.False(t, check.NeedsUpdate)

	_, popular, err := server.handleGetPopularAvatars(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.Equal(t, 2, popular.Count)
	assert.Equal(t, 1, popular.Items[0].Rank)
	assert.Equal(t, int64(10), popular.Items[0].Item.ID)
	assert.Equal(t, 2, popular.Items[1].Rank)
	assert.NotEmpty(t, popular.Items[0].ExpiresAt)
}

func TestServer_PendingUpdateTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	_, _, err := server.handleTakePendingUpdate(ctx, nil, EmptyInput{})
	require.ErrorIs(t, err, domain.ErrNoPendingUpdate)
	assert.EqualError(t, err, "There is no pending update")

	body := "bug fixes"
	_, _, err = server.handleSetPendingUpdate(ctx, nil, UpdateRecord{Version: "1.2.0", Body: &body})
	require.NoError(t, err)

	_, got, err := server.handleTakePendingUpdate(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", got.Version)
	require.NotNil(t, got.Body)
	assert.Equal(t, "bug fixes", *got.Body)

	_, _, err = server.handleTakePendingUpdate(ctx, nil, EmptyInput{})
	assert.ErrorIs(t, err, domain.ErrNoPendingUpdate)
}

func TestServer_StatsTools(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	_, _, err := server.handleCacheItems(ctx, nil, CacheItemsInput{Items: []ItemRecord{
		record(1, "A", 0), record(2, "B", 800), record(3, "C", 800),
	}})
	require.NoError(t, err)
	_, _, err = server.handleAddFavorite(ctx, nil, ItemIDInput{ItemID: 1})
	require.NoError(t, err)
	_, _, err = server.handleSetItemTags(ctx, nil, SetTagsInput{ItemID: 1, Tags: []string{"cute"}})
	require.NoError(t, err)

	_, dash, err := server.handleGetDashboardStats(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{TotalItems: 3, TotalFavorites: 1, TotalTags: 1}, dash)

	_, cats, err := server.handleGetCategoryDistribution(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{{Category: "Avatar", Count: 3}}, cats.Categories)

	_, prices, err := server.handleGetPriceDistribution(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.Len(t, prices.Prices, len(domain.PriceBuckets))
	assert.Equal(t, 1, prices.Prices[0].Count)
	assert.Equal(t, 2, prices.Prices[2].Count)

	_, tags, err := server.handleGetTopTags(ctx, nil, LimitInput{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{{Tag: "cute", Count: 1}}, tags.Tags)

	_, shops, err := server.handleGetTopShops(ctx, nil, LimitInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, shops.Shops, 2)

	_, _, err = server.handleGetTopShops(ctx, nil, LimitInput{Limit: domain.MaxTopLimit + 1})
	assert.ErrorIs(t, err, domain.ErrQuery)

	_, monthly, err := server.handleGetMonthlyFavorites(ctx, nil, MonthsInput{Months: 3})
	require.NoError(t, err)
	require.Len(t, monthly.Months, 3)
	assert.Equal(t, 1, monthly.Months[2].Count)

	_, all, err := server.handleGetAllStatistics(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, dash, all.Dashboard)
	assert.Equal(t, []domain.QueryCount{}, all.SearchHistory.TopQueries)
	assert.Equal(t, 0, all.SearchHistory.Recent.Count)
}
