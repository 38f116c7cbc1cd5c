package driving

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// ItemService caches externally fetched catalog items.
type ItemService interface {
	// CacheItems validates and upserts a batch of items atomically.
	// Returns the number of items cached.
	CacheItems(ctx context.Context, items []domain.Item) (int, error)

	// GetItem retrieves a cached item by ID.
	GetItem(ctx context.Context, id int64) (*domain.Item, error)

	// GetItems retrieves the cached items among ids.
	GetItems(ctx context.Context, ids []int64) ([]domain.Item, error)
}
