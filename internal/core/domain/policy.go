package domain

import "time"

// Policy holds the tunable retention and refresh settings.
type Policy struct {
	// HistoryMaxEntries is how many search history entries are kept.
	HistoryMaxEntries int

	// PopularRefreshInterval is how long a popular snapshot stays fresh.
	PopularRefreshInterval time.Duration

	// StatsTopLimit is the default size of top-N aggregations.
	StatsTopLimit int

	// StatsMonthlyWindow is the default number of months for monthly favorites.
	StatsMonthlyWindow int
}

// Upper bounds accepted for aggregation parameters.
const (
	MaxTopLimit      = 100
	MaxMonthlyWindow = 120
)

// DefaultPolicy returns the built-in policy.
func DefaultPolicy() Policy {
	return Policy{
		HistoryMaxEntries:      100,
		PopularRefreshInterval: 24 * time.Hour,
		StatsTopLimit:          10,
		StatsMonthlyWindow:     12,
	}
}
