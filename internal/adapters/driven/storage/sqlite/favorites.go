package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// favoriteStore implements driven.FavoriteStore.
type favoriteStore struct {
	store *Store
}

var _ driven.FavoriteStore = (*favoriteStore)(nil)

// Add marks an item as favorite. Adding twice keeps the first timestamp.
func (s *favoriteStore) Add(ctx context.Context, itemID int64) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO favorites (item_id, created_at) VALUES (?, ?)
			ON CONFLICT(item_id) DO NOTHING
		`, itemID, formatTime(s.store.now()))
		if err != nil {
			return fmt.Errorf("adding favorite: %w", mapError(err))
		}
		return nil
	})
}

// Remove clears the favorite flag. Removing a non-favorite is a no-op.
func (s *favoriteStore) Remove(ctx context.Context, itemID int64) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE item_id = ?", itemID); err != nil {
			return fmt.Errorf("removing favorite: %w", err)
		}
		return nil
	})
}

// List returns favorited items in insertion order.
func (s *favoriteStore) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM favorites f
		JOIN items i ON i.id = f.item_id
		ORDER BY f.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	return scanItems(rows)
}

// Contains reports whether an item is a favorite.
func (s *favoriteStore) Contains(ctx context.Context, itemID int64) (bool, error) {
	ok, err := exists(ctx, s.store.db, "SELECT 1 FROM favorites WHERE item_id = ?", itemID)
	if err != nil {
		return false, fmt.Errorf("checking favorite: %w", err)
	}
	return ok, nil
}
