package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/sqlite"
	svc "github.com/custodia-labs/boothcache/internal/core/services"
)

// setupTestServices wires real services over a temp-dir store and restores
// the package state afterwards.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)

	settings := svc.NewSettingsService(memory.NewConfigStore())
	s := &Services{
		Items:       svc.NewItemService(store.ItemStore(), nil),
		Favorites:   svc.NewFavoriteService(store.FavoriteStore(), nil),
		Collections: svc.NewCollectionService(store.CollectionStore(), nil),
		Tags:        svc.NewTagService(store.TagStore(), nil),
		History:     svc.NewSearchHistoryService(store.SearchHistoryStore(), settings, nil),
		Popular:     svc.NewPopularService(store.PopularStore(), settings, nil),
		Stats:       svc.NewStatsService(store.StatsStore(), settings, nil),
		Settings:    settings,
		Updates:     &svc.PendingUpdate{},
	}

	SetServices(s)
	t.Cleanup(func() {
		SetServices(nil)
		assert.NoError(t, store.Close())
	})
	return s
}

// execute runs the root command with args and stdin, returning its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	dataDir = ""
	verbose = false
	outputJSON = false
	itemsFile = ""
	popularFile = ""
	historyLimit = 0
	collectionColor = "#7C3AED"
	mcpHTTPAddr = ""
	mcpMetricsAddr = ""
}

const threeItems = `[
  {"id": 1, "name": "Rusk", "price": 1500, "category_name": "Avatar", "shop_name": "Studio A"},
  {"id": 2, "name": "Manuka", "price": 0, "category_name": "Avatar", "shop_name": "Studio B"},
  {"id": 3, "name": "Hat", "price": 300, "category_name": "", "shop_name": "Studio A"}
]`

func TestRootCmd_RegistersCommandGroups(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{
		"items", "favorites", "collections", "tags", "history",
		"popular", "stats", "settings", "version", "mcp",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_ServicesNotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "", "favorites", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRootCmd_BootstrapUsesDataDir(t *testing.T) {
	SetServices(nil)
	dir := t.TempDir()
	var gotDir string
	closed := false

	SetBootstrap(func(d string) (*Services, io.Closer, error) {
		gotDir = d
		store, err := sqlite.NewStore(d)
		if err != nil {
			return nil, nil, err
		}
		settings := svc.NewSettingsService(memory.NewConfigStore())
		return &Services{
				Favorites: svc.NewFavoriteService(store.FavoriteStore(), nil),
				Settings:  settings,
			}, closerFunc(func() error {
				closed = true
				return store.Close()
			}), nil
	})
	defer SetBootstrap(nil)

	out, err := execute(t, "", "--data-dir", dir, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, dir, gotDir)
	assert.Contains(t, out, "No items.")

	require.NoError(t, Shutdown())
	assert.True(t, closed)
	assert.Nil(t, services)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	SetServices(nil)
	SetBootstrap(func(string) (*Services, io.Closer, error) {
		return nil, nil, errors.New("storage i/o failure")
	})
	defer SetBootstrap(nil)

	_, err := execute(t, "", "favorites", "list")
	require.Error(t, err)
	assert.Equal(t, "storage i/o failure", err.Error())
}

func TestShutdown_NothingOpened(t *testing.T) {
	assert.NoError(t, Shutdown())
}
