package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// tagStore implements driven.TagStore.
type tagStore struct {
	store *Store
}

var _ driven.TagStore = (*tagStore)(nil)

// SetItemTags replaces the full tag set of an item in one transaction.
// Only the difference between the stored and requested sets is written.
func (s *tagStore) SetItemTags(ctx context.Context, itemID int64, tags []string) error {
	want := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag != "" {
			want[tag] = struct{}{}
		}
	}

	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}

		current, err := itemTags(ctx, tx, itemID)
		if err != nil {
			return err
		}
		have := make(map[string]struct{}, len(current))
		for _, tag := range current {
			have[tag] = struct{}{}
		}

		for tag := range have {
			if _, ok := want[tag]; ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM item_tags
				WHERE item_id = ? AND tag_id = (SELECT id FROM tags WHERE name = ?)
			`, itemID, tag); err != nil {
				return fmt.Errorf("removing tag %q: %w", tag, err)
			}
		}

		now := formatTime(s.store.now())
		for tag := range want {
			if _, ok := have[tag]; ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tags (name, created_at) VALUES (?, ?)
				ON CONFLICT(name) DO NOTHING
			`, tag, now); err != nil {
				return fmt.Errorf("creating tag %q: %w", tag, mapError(err))
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO item_tags (item_id, tag_id, created_at)
				SELECT ?, id, ? FROM tags WHERE name = ?
				ON CONFLICT(item_id, tag_id) DO NOTHING
			`, itemID, now, tag); err != nil {
				return fmt.Errorf("attaching tag %q: %w", tag, mapError(err))
			}
		}

		// Tags no longer attached to any item are dropped.
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM tags WHERE id NOT IN (SELECT tag_id FROM item_tags)
		`); err != nil {
			return fmt.Errorf("pruning unused tags: %w", err)
		}
		return nil
	})
}

// ItemTags returns the tags of an item, sorted.
func (s *tagStore) ItemTags(ctx context.Context, itemID int64) ([]string, error) {
	return itemTags(ctx, s.store.db, itemID)
}

// All returns every tag attached to at least one item, sorted.
func (s *tagStore) All(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT DISTINCT t.name
		FROM tags t
		JOIN item_tags it ON it.tag_id = t.id
		ORDER BY t.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	return scanStrings(rows)
}

// ForItems returns the tags of every requested item with one query per
// maxBatchIDs IDs.
func (s *tagStore) ForItems(ctx context.Context, itemIDs []int64) (map[int64][]string, error) {
	ids := uniqueIDs(itemIDs)
	result := make(map[int64][]string, len(ids))
	for _, id := range ids {
		result[id] = []string{}
	}

	for _, chunk := range chunkIDs(ids) {
		placeholders, args := inClause(chunk)
		rows, err := s.store.db.QueryContext(ctx, `
			SELECT it.item_id, t.name
			FROM item_tags it
			JOIN tags t ON t.id = it.tag_id
			WHERE it.item_id IN (`+placeholders+`)
			ORDER BY it.item_id, t.name ASC
		`, args...)
		if err != nil {
			return nil, fmt.Errorf("querying item tags: %w", err)
		}

		if err := scanItemTags(rows, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// itemTags returns the sorted tags of one item.
func itemTags(ctx context.Context, q queryer, itemID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name
		FROM item_tags it
		JOIN tags t ON t.id = it.tag_id
		WHERE it.item_id = ?
		ORDER BY t.name ASC
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying item tags: %w", err)
	}
	return scanStrings(rows)
}

// scanItemTags reads (item_id, tag) rows into result and closes rows.
func scanItemTags(rows *sql.Rows, result map[int64][]string) error {
	defer rows.Close()

	for rows.Next() {
		var itemID int64
		var tag string
		if err := rows.Scan(&itemID, &tag); err != nil {
			return fmt.Errorf("scanning item tag: %w", err)
		}
		result[itemID] = append(result[itemID], tag)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating item tags: %w", err)
	}
	return nil
}

// scanStrings drains single-column rows and closes them.
func scanStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating values: %w", err)
	}
	return values, nil
}
