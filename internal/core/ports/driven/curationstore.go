package driven

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// FavoriteStore persists the favorite flag of items.
type FavoriteStore interface {
	// Add marks an item as favorite. Adding twice keeps the first timestamp.
	// Returns domain.ErrNotFound if the item is not cached.
	Add(ctx context.Context, itemID int64) error

	// Remove clears the favorite flag. Removing a non-favorite is a no-op.
	Remove(ctx context.Context, itemID int64) error

	// List returns favorited items in insertion order.
	List(ctx context.Context) ([]domain.Item, error)

	// Contains reports whether an item is a favorite.
	Contains(ctx context.Context, itemID int64) (bool, error)
}

// CollectionStore persists collections and their membership.
type CollectionStore interface {
	// Create inserts a new collection.
	Create(ctx context.Context, collection *domain.Collection) error

	// Get retrieves a collection by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Collection, error)

	// Rename changes the collection name.
	Rename(ctx context.Context, id, name string) error

	// UpdateColor changes the collection colour.
	UpdateColor(ctx context.Context, id, color string) error

	// Delete removes a collection and its membership rows. Items are kept.
	Delete(ctx context.Context, id string) error

	// AddItem appends an item to a collection. Adding twice is a no-op.
	AddItem(ctx context.Context, collectionID string, itemID int64) error

	// RemoveItem removes an item from a collection. Removing twice is a no-op.
	RemoveItem(ctx context.Context, collectionID string, itemID int64) error

	// List returns all collections in creation order.
	List(ctx context.Context) ([]domain.Collection, error)

	// Items returns the items of a collection in insertion order.
	Items(ctx context.Context, collectionID string) ([]domain.Item, error)

	// ForItem returns the collections containing an item.
	ForItem(ctx context.Context, itemID int64) ([]domain.Collection, error)

	// ForItems returns the collections of every requested item using a bounded
	// number of queries. Every requested ID is present in the result.
	ForItems(ctx context.Context, itemIDs []int64) (map[int64][]domain.Collection, error)
}

// TagStore persists free-form item tags.
// Tags are expected to be normalised by the caller.
type TagStore interface {
	// SetItemTags replaces the full tag set of an item in one transaction.
	// Returns domain.ErrNotFound if the item is not cached.
	SetItemTags(ctx context.Context, itemID int64, tags []string) error

	// ItemTags returns the tags of an item, sorted.
	ItemTags(ctx context.Context, itemID int64) ([]string, error)

	// All returns every tag attached to at least one item, sorted.
	All(ctx context.Context) ([]string, error)

	// ForItems returns the tags of every requested item using a bounded
	// number of queries. Every requested ID is present in the result.
	ForItems(ctx context.Context, itemIDs []int64) (map[int64][]string, error)
}
