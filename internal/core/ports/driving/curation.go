package driving

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// FavoriteService manages favorited items.
type FavoriteService interface {
	// AddFavorite marks an item as favorite. Idempotent.
	AddFavorite(ctx context.Context, itemID int64) error

	// RemoveFavorite clears the favorite flag. Idempotent.
	RemoveFavorite(ctx context.Context, itemID int64) error

	// GetFavorites returns favorited items in insertion order.
	GetFavorites(ctx context.Context) ([]domain.Item, error)

	// IsFavorite reports whether an item is a favorite.
	IsFavorite(ctx context.Context, itemID int64) (bool, error)
}

// CollectionService manages collections and their membership.
type CollectionService interface {
	CreateCollection(ctx context.Context, name, color string) (*domain.Collection, error)
	RenameCollection(ctx context.Context, id, name string) error
	UpdateCollectionColor(ctx context.Context, id, color string) error
	DeleteCollection(ctx context.Context, id string) error
	AddToCollection(ctx context.Context, collectionID string, itemID int64) error
	RemoveFromCollection(ctx context.Context, collectionID string, itemID int64) error
	GetCollections(ctx context.Context) ([]domain.Collection, error)
	GetCollectionItems(ctx context.Context, collectionID string) ([]domain.Item, error)
	GetItemCollections(ctx context.Context, itemID int64) ([]domain.Collection, error)

	// GetAllItemCollectionsBatch returns the collections of many items at once.
	GetAllItemCollectionsBatch(ctx context.Context, itemIDs []int64) (map[int64][]domain.Collection, error)
}

// TagService manages free-form item tags.
type TagService interface {
	// SetItemTags replaces the tag set of an item. Tags are normalised first.
	SetItemTags(ctx context.Context, itemID int64, tags []string) error

	// GetItemTags returns the tags of an item.
	GetItemTags(ctx context.Context, itemID int64) ([]string, error)

	// GetAllUserTags returns every tag in use.
	GetAllUserTags(ctx context.Context) ([]string, error)

	// GetAllItemTagsBatch returns the tags of many items at once.
	GetAllItemTagsBatch(ctx context.Context, itemIDs []int64) (map[int64][]string, error)
}
