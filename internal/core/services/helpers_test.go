package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// recordingMetrics counts calls for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	cached    int
	changes   []string
	searches  int
	snapshots []int
	errors    []string
}

func (m *recordingMetrics) RecordItemsCached(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached += count
}

func (m *recordingMetrics) RecordCurationChange(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = append(m.changes, kind)
}

func (m *recordingMetrics) RecordSearchSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
}

func (m *recordingMetrics) RecordSnapshotRefresh(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, count)
}

func (m *recordingMetrics) RecordError(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, op)
}

// testEnv bundles a temp-dir store with services wired the way main does.
type testEnv struct {
	store    *sqlite.Store
	config   *memory.ConfigStore
	metrics  *recordingMetrics
	settings *SettingsService

	items       *ItemService
	favorites   *FavoriteService
	collections *CollectionService
	tags        *TagService
	history     *SearchHistoryService
	popular     *PopularService
	stats       *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	config := memory.NewConfigStore()
	metrics := &recordingMetrics{}
	settings := NewSettingsService(config)

	return &testEnv{
		store:       store,
		config:      config,
		metrics:     metrics,
		settings:    settings,
		items:       NewItemService(store.ItemStore(), metrics),
		favorites:   NewFavoriteService(store.FavoriteStore(), metrics),
		collections: NewCollectionService(store.CollectionStore(), metrics),
		tags:        NewTagService(store.TagStore(), metrics),
		history:     NewSearchHistoryService(store.SearchHistoryStore(), settings, metrics),
		popular:     NewPopularService(store.PopularStore(), settings, metrics),
		stats:       NewStatsService(store.StatsStore(), settings, metrics),
	}
}

func item(id int64, name string) domain.Item {
	return domain.Item{
		ID:       id,
		Name:     name,
		Price:    1000,
		Category: "Avatar",
		ShopName: "Shop",
		Images:   []string{"https://img.example.com/" + name + ".png"},
	}
}
