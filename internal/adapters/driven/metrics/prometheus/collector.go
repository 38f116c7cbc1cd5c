// Package prometheus records cache metrics with the Prometheus client and
// serves them for scraping.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// Ensure Collector implements the interface.
var _ driven.Metrics = (*Collector)(nil)

// Collector records cache metrics into Prometheus counters.
type Collector struct {
	itemsCached     prometheus.Counter
	curationChanges *prometheus.CounterVec
	searchesSaved   prometheus.Counter
	snapshotRefresh prometheus.Counter
	snapshotSize    prometheus.Gauge
	operationErrors *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		itemsCached: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boothcache_items_cached_total",
			Help: "Total number of item records written by the cache.",
		}),
		curationChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boothcache_curation_changes_total",
			Help: "Favorite, collection and tag mutations by kind.",
		}, []string{"kind"}),
		searchesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boothcache_searches_saved_total",
			Help: "Total number of search history entries appended.",
		}),
		snapshotRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boothcache_popular_snapshot_refreshes_total",
			Help: "Total number of committed popular snapshot generations.",
		}),
		snapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boothcache_popular_snapshot_items",
			Help: "Number of items in the last committed popular snapshot.",
		}),
		operationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boothcache_operation_errors_total",
			Help: "Failed operations by name.",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		c.itemsCached,
		c.curationChanges,
		c.searchesSaved,
		c.snapshotRefresh,
		c.snapshotSize,
		c.operationErrors,
	)

	return c
}

// RecordItemsCached records a committed cache batch.
func (c *Collector) RecordItemsCached(count int) {
	c.itemsCached.Add(float64(count))
}

// RecordCurationChange records a favorite, collection or tag mutation.
func (c *Collector) RecordCurationChange(kind string) {
	c.curationChanges.WithLabelValues(kind).Inc()
}

// RecordSearchSaved records an appended search history entry.
func (c *Collector) RecordSearchSaved() {
	c.searchesSaved.Inc()
}

// RecordSnapshotRefresh records a committed popular snapshot generation.
func (c *Collector) RecordSnapshotRefresh(count int) {
	c.snapshotRefresh.Inc()
	c.snapshotSize.Set(float64(count))
}

// RecordError records a failed operation.
func (c *Collector) RecordError(operation string) {
	c.operationErrors.WithLabelValues(operation).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewMux serves gatherer on /metrics.
func NewMux(gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
