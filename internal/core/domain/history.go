package domain

import "time"

// SearchHistoryEntry is one recorded search query.
type SearchHistoryEntry struct {
	ID         int64     `json:"id"`
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searched_at"`
}

// QueryCount is how often a query was searched.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// SearchHistoryStats summarises the search history log.
type SearchHistoryStats struct {
	TotalSearches int                  `json:"total_searches"`
	UniqueQueries int                  `json:"unique_queries"`
	TopQueries    []QueryCount         `json:"top_queries"`
	Recent        []SearchHistoryEntry `json:"recent"`
}
