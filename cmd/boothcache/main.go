// Command boothcache is the local catalog cache for marketplace items.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/config/file"
	metricsprom "github.com/custodia-labs/boothcache/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/boothcache/internal/adapters/driving/cli"
	"github.com/custodia-labs/boothcache/internal/core/services"
	"github.com/custodia-labs/boothcache/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(wire)

	err := cli.Execute()
	if cerr := cli.Shutdown(); cerr != nil {
		logger.Error("closing store: %v", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// wire opens the stores under dataDir and builds every service.
func wire(dataDir string) (*cli.Services, io.Closer, error) {
	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database: %s", store.Path())
	logger.Debug("config: %s", configStore.Path())

	registry := prometheus.NewRegistry()
	metrics := metricsprom.NewCollector(registry)

	settings := services.NewSettingsService(configStore)

	return &cli.Services{
		Items:       services.NewItemService(store.ItemStore(), metrics),
		Favorites:   services.NewFavoriteService(store.FavoriteStore(), metrics),
		Collections: services.NewCollectionService(store.CollectionStore(), metrics),
		Tags:        services.NewTagService(store.TagStore(), metrics),
		History:     services.NewSearchHistoryService(store.SearchHistoryStore(), settings, metrics),
		Popular:     services.NewPopularService(store.PopularStore(), settings, metrics),
		Stats:       services.NewStatsService(store.StatsStore(), settings, metrics),
		Settings:    settings,
		Updates:     &services.PendingUpdate{},
		ConfigFile:  configStore,
		Gatherer:    registry,
	}, store, nil
}
