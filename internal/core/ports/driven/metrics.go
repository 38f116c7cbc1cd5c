package driven

// Metrics records operational counters for the cache.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// RecordItemsCached records a committed cache batch.
	RecordItemsCached(count int)

	// RecordCurationChange records a favorite, collection or tag mutation.
	RecordCurationChange(kind string)

	// RecordSearchSaved records an appended search history entry.
	RecordSearchSaved()

	// RecordSnapshotRefresh records a committed popular snapshot generation.
	RecordSnapshotRefresh(count int)

	// RecordError records a failed operation.
	RecordError(operation string)
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

// RecordItemsCached implements Metrics.
func (NopMetrics) RecordItemsCached(int) {}

// RecordCurationChange implements Metrics.
func (NopMetrics) RecordCurationChange(string) {}

// RecordSearchSaved implements Metrics.
func (NopMetrics) RecordSearchSaved() {}

// RecordSnapshotRefresh implements Metrics.
func (NopMetrics) RecordSnapshotRefresh(int) {}

// RecordError implements Metrics.
func (NopMetrics) RecordError(string) {}
