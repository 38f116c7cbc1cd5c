package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/boothcache/internal/core/services"
)

// newTestPorts wires real services over a temp-dir store.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()

	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	settings := services.NewSettingsService(memory.NewConfigStore())

	return &Ports{
		Items:       services.NewItemService(store.ItemStore(), nil),
		Favorites:   services.NewFavoriteService(store.FavoriteStore(), nil),
		Collections: services.NewCollectionService(store.CollectionStore(), nil),
		Tags:        services.NewTagService(store.TagStore(), nil),
		History:     services.NewSearchHistoryService(store.SearchHistoryStore(), settings, nil),
		Popular:     services.NewPopularService(store.PopularStore(), settings, nil),
		Stats:       services.NewStatsService(store.StatsStore(), settings, nil),
		Updates:     &services.PendingUpdate{},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	server, err := NewServer(newTestPorts(t))
	require.NoError(t, err)
	return server
}

func record(id int64, name string, price int) ItemRecord {
	return ItemRecord{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: "Avatar",
		ShopName: "Shop " + name,
		Images:   []string{"https://img.example.com/" + name + ".png"},
	}
}
