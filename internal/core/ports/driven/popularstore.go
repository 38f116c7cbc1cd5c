package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// PopularStore persists the popular items snapshot.
type PopularStore interface {
	// Replace atomically swaps the snapshot for a new generation built from
	// items in rank order. The items are also upserted into the item cache.
	Replace(ctx context.Context, items []domain.Item, fetchedAt, expiresAt time.Time) error

	// List returns the last committed generation in rank order.
	List(ctx context.Context) ([]domain.PopularItem, error)

	// Info returns the metadata of the last committed generation,
	// or nil if no generation has been written.
	Info(ctx context.Context) (*domain.SnapshotInfo, error)
}
