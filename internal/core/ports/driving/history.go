package driving

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// SearchHistoryService records and reports past searches.
type SearchHistoryService interface {
	// SaveSearchHistory appends a query, pruning by the retention policy.
	SaveSearchHistory(ctx context.Context, query string) error

	// GetSearchHistory returns up to limit entries, newest first.
	GetSearchHistory(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error)
}
