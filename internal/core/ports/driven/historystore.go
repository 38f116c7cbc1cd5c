package driven

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// SearchHistoryStore persists the search history log.
type SearchHistoryStore interface {
	// Append records a query and prunes the log to the most recent keep
	// entries in the same transaction. keep <= 0 disables pruning.
	Append(ctx context.Context, query string, keep int) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error)
}
