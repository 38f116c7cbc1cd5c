package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// collectionColumns selects a collection with its item count, aliased as c.
// Must match the scan order in scanCollection.
const collectionColumns = `c.id, c.name, c.color, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM collection_items ci WHERE ci.collection_id = c.id)`

// collectionStore implements driven.CollectionStore.
type collectionStore struct {
	store *Store
}

var _ driven.CollectionStore = (*collectionStore)(nil)

// Create inserts a new collection.
func (s *collectionStore) Create(ctx context.Context, c *domain.Collection) error {
	if c == nil || c.ID == "" {
		return domain.ErrInvalidInput
	}

	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO collections (id, name, color, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.Color, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
		if err != nil {
			return fmt.Errorf("creating collection: %w", mapError(err))
		}
		return nil
	})
}

// Get retrieves a collection by ID.
func (s *collectionStore) Get(ctx context.Context, id string) (*domain.Collection, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections c WHERE c.id = ?`, id)

	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("collection %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning collection: %w", err)
	}
	return c, nil
}

// Rename changes the collection name.
func (s *collectionStore) Rename(ctx context.Context, id, name string) error {
	return s.update(ctx, id, "name", name)
}

// UpdateColor changes the collection colour.
func (s *collectionStore) UpdateColor(ctx context.Context, id, color string) error {
	return s.update(ctx, id, "color", color)
}

// update sets a single mutable column. column is never user input.
func (s *collectionStore) update(ctx context.Context, id, column, value string) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE collections SET `+column+` = ?, updated_at = ? WHERE id = ?`,
			value, formatTime(s.store.now()), id)
		if err != nil {
			return fmt.Errorf("updating collection %s: %w", column, mapError(err))
		}
		return requireAffected(res, "collection "+id)
	})
}

// Delete removes a collection. Membership rows cascade; items are kept.
func (s *collectionStore) Delete(ctx context.Context, id string) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM collections WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting collection: %w", mapError(err))
		}
		return requireAffected(res, "collection "+id)
	})
}

// AddItem appends an item to a collection. Adding twice is a no-op.
func (s *collectionStore) AddItem(ctx context.Context, collectionID string, itemID int64) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		if err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO collection_items (collection_id, item_id, position, added_at)
			VALUES (?, ?,
				(SELECT COALESCE(MAX(position), 0) + 1 FROM collection_items WHERE collection_id = ?),
				?)
			ON CONFLICT(collection_id, item_id) DO NOTHING
		`, collectionID, itemID, collectionID, formatTime(s.store.now()))
		if err != nil {
			return fmt.Errorf("adding item to collection: %w", mapError(err))
		}
		return nil
	})
}

// RemoveItem removes an item from a collection. Removing twice is a no-op.
func (s *collectionStore) RemoveItem(ctx context.Context, collectionID string, itemID int64) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		if err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"DELETE FROM collection_items WHERE collection_id = ? AND item_id = ?",
			collectionID, itemID)
		if err != nil {
			return fmt.Errorf("removing item from collection: %w", err)
		}
		return nil
	})
}

// List returns all collections in creation order.
func (s *collectionStore) List(ctx context.Context) ([]domain.Collection, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collections c ORDER BY c.created_at ASC, c.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	collections := []domain.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		collections = append(collections, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}
	return collections, nil
}

// Items returns the items of a collection in insertion order.
func (s *collectionStore) Items(ctx context.Context, collectionID string) ([]domain.Item, error) {
	if err := requireCollection(ctx, s.store.db, collectionID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM collection_items ci
		JOIN items i ON i.id = ci.item_id
		WHERE ci.collection_id = ?
		ORDER BY ci.position ASC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("querying collection items: %w", err)
	}
	return scanItems(rows)
}

// ForItem returns the collections containing an item, in creation order.
func (s *collectionStore) ForItem(ctx context.Context, itemID int64) ([]domain.Collection, error) {
	byItem, err := s.ForItems(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	return byItem[itemID], nil
}

// ForItems returns the collections of every requested item with one query
// per maxBatchIDs IDs.
func (s *collectionStore) ForItems(ctx context.Context, itemIDs []int64) (map[int64][]domain.Collection, error) {
	ids := uniqueIDs(itemIDs)
	result := make(map[int64][]domain.Collection, len(ids))
	for _, id := range ids {
		result[id] = []domain.Collection{}
	}

	for _, chunk := range chunkIDs(ids) {
		placeholders, args := inClause(chunk)
		rows, err := s.store.db.QueryContext(ctx, `
			SELECT ci.item_id, `+collectionColumns+`
			FROM collection_items ci
			JOIN collections c ON c.id = ci.collection_id
			WHERE ci.item_id IN (`+placeholders+`)
			ORDER BY ci.item_id, c.created_at ASC, c.rowid ASC
		`, args...)
		if err != nil {
			return nil, fmt.Errorf("querying item collections: %w", err)
		}

		if err := scanItemCollections(rows, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// scanItemCollections reads (item_id, collection...) rows into result and closes rows.
func scanItemCollections(rows *sql.Rows, result map[int64][]domain.Collection) error {
	defer rows.Close()

	for rows.Next() {
		var itemID int64
		var c domain.Collection
		var createdAt, updatedAt string
		if err := rows.Scan(&itemID, &c.ID, &c.Name, &c.Color,
			&createdAt, &updatedAt, &c.ItemCount); err != nil {
			return fmt.Errorf("scanning item collection: %w", err)
		}
		if err := setCollectionTimes(&c, createdAt, updatedAt); err != nil {
			return err
		}
		result[itemID] = append(result[itemID], c)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating item collections: %w", err)
	}
	return nil
}

// scanCollection scans a sql.Row (or sql.Rows via its Scan method) into a domain.Collection.
func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection
	var createdAt, updatedAt string

	if err := scanner.Scan(&c.ID, &c.Name, &c.Color, &createdAt, &updatedAt, &c.ItemCount); err != nil {
		return nil, err
	}
	if err := setCollectionTimes(&c, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func setCollectionTimes(c *domain.Collection, createdAt, updatedAt string) error {
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return err
	}
	return nil
}

// requireAffected returns domain.ErrNotFound when a statement matched no rows.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
