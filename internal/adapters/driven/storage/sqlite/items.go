package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// itemColumns is the ordered list of item columns, aliased as i.
// Must match the scan order in scanItem.
const itemColumns = `i.id, i.name, i.price, i.category, i.shop_name, i.shop_url, i.url,
	i.thumbnail_url, i.images, i.wish_lists_count, i.last_cached_at`

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// CacheItems upserts items by ID in a single transaction.
func (s *itemStore) CacheItems(ctx context.Context, items []domain.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	err := s.store.withTx(ctx, func(tx *sql.Tx) error {
		return upsertItems(ctx, tx, items, s.store.now())
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Get retrieves an item by ID.
func (s *itemStore) Get(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	return item, nil
}

// GetMany retrieves the cached items among ids, in the order given.
func (s *itemStore) GetMany(ctx context.Context, ids []int64) ([]domain.Item, error) {
	ids = uniqueIDs(ids)
	byID := make(map[int64]domain.Item, len(ids))

	for _, chunk := range chunkIDs(ids) {
		placeholders, args := inClause(chunk)
		rows, err := s.store.db.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items i WHERE i.id IN (`+placeholders+`)`, args...)
		if err != nil {
			return nil, fmt.Errorf("querying items: %w", err)
		}
		items, err := scanItems(rows)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			byID[item.ID] = item
		}
	}

	result := make([]domain.Item, 0, len(byID))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

// upsertItems writes items in order within tx. A later duplicate overwrites
// an earlier one. A missing wish list count keeps the previously cached value.
func upsertItems(ctx context.Context, tx *sql.Tx, items []domain.Item, now time.Time) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, name, price, category, shop_name, shop_url, url,
			thumbnail_url, images, wish_lists_count, first_cached_at, last_cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			category = excluded.category,
			shop_name = excluded.shop_name,
			shop_url = excluded.shop_url,
			url = excluded.url,
			thumbnail_url = excluded.thumbnail_url,
			images = excluded.images,
			wish_lists_count = COALESCE(excluded.wish_lists_count, items.wish_lists_count),
			last_cached_at = excluded.last_cached_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	cachedAt := formatTime(now)
	for i := range items {
		item := &items[i]

		images := item.Images
		if images == nil {
			images = []string{}
		}
		imagesJSON, err := json.Marshal(images)
		if err != nil {
			return fmt.Errorf("marshalling images: %w", err)
		}

		var wishCount sql.NullInt64
		if item.WishListsCount != nil {
			wishCount = sql.NullInt64{Int64: int64(*item.WishListsCount), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, item.ID, item.Name, item.Price, item.Category,
			item.ShopName, item.ShopURL, item.URL, item.Thumbnail(), string(imagesJSON),
			wishCount, cachedAt, cachedAt); err != nil {
			return fmt.Errorf("caching item %d: %w", item.ID, mapError(err))
		}
	}
	return nil
}

// scanItem scans a sql.Row (or sql.Rows via its Scan method) into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var item domain.Item
	var imagesJSON, cachedAt string
	var wishCount sql.NullInt64

	if err := scanner.Scan(&item.ID, &item.Name, &item.Price, &item.Category,
		&item.ShopName, &item.ShopURL, &item.URL, &item.ThumbnailURL,
		&imagesJSON, &wishCount, &cachedAt); err != nil {
		return nil, err
	}

	if imagesJSON != "" {
		if err := json.Unmarshal([]byte(imagesJSON), &item.Images); err != nil {
			return nil, fmt.Errorf("unmarshalling images: %w", err)
		}
	}
	if wishCount.Valid {
		n := int(wishCount.Int64)
		item.WishListsCount = &n
	}

	t, err := parseTime(cachedAt)
	if err != nil {
		return nil, err
	}
	item.LastCachedAt = t

	return &item, nil
}

// scanItems drains rows into items and closes them.
func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}
