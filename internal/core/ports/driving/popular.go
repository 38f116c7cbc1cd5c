package driving

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// PopularService maintains the popular items snapshot.
type PopularService interface {
	// CheckAvatarsNeedUpdate returns true when the snapshot is absent or stale.
	CheckAvatarsNeedUpdate(ctx context.Context) (bool, error)

	// UpdatePopularAvatars replaces the snapshot with items in rank order.
	UpdatePopularAvatars(ctx context.Context, items []domain.Item) error

	// GetPopularAvatars returns the current snapshot in rank order.
	GetPopularAvatars(ctx context.Context) ([]domain.PopularItem, error)
}
