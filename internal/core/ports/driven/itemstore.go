package driven

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// ItemStore persists cached catalog items.
type ItemStore interface {
	// CacheItems upserts items by ID in a single transaction.
	// Records are applied in order, so a later duplicate wins.
	// Returns the number of records applied.
	CacheItems(ctx context.Context, items []domain.Item) (int, error)

	// Get retrieves an item by ID.
	// Returns domain.ErrNotFound if the item is not cached.
	Get(ctx context.Context, id int64) (*domain.Item, error)

	// GetMany retrieves the cached items among ids, in the order given.
	// Unknown IDs are skipped.
	GetMany(ctx context.Context, ids []int64) ([]domain.Item, error)
}
