package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// popularStore implements driven.PopularStore.
type popularStore struct {
	store *Store
}

var _ driven.PopularStore = (*popularStore)(nil)

// Replace swaps the snapshot for a new generation in one transaction.
// Readers keep seeing the previous generation until commit.
func (s *popularStore) Replace(ctx context.Context, items []domain.Item, fetchedAt, expiresAt time.Time) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := upsertItems(ctx, tx, items, s.store.now()); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM popular_items"); err != nil {
			return fmt.Errorf("clearing popular items: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO popular_items (rank, item_id, fetched_at, expires_at)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing statement: %w", err)
		}
		defer stmt.Close()

		fetched, expires := formatTime(fetchedAt), formatTime(expiresAt)
		for i := range items {
			if _, err := stmt.ExecContext(ctx, i+1, items[i].ID, fetched, expires); err != nil {
				return fmt.Errorf("inserting popular item %d: %w", items[i].ID, mapError(err))
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO popular_snapshot (id, generation, fetched_at, item_count)
			VALUES (1, 1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				generation = popular_snapshot.generation + 1,
				fetched_at = excluded.fetched_at,
				item_count = excluded.item_count
		`, fetched, len(items)); err != nil {
			return fmt.Errorf("updating snapshot metadata: %w", err)
		}
		return nil
	})
}

// List returns the last committed generation in rank order.
// A single statement is used so the result never mixes generations.
func (s *popularStore) List(ctx context.Context) ([]domain.PopularItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT p.rank, p.fetched_at, p.expires_at, `+itemColumns+`
		FROM popular_items p
		JOIN items i ON i.id = p.item_id
		ORDER BY p.rank ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying popular items: %w", err)
	}
	defer rows.Close()

	popular := []domain.PopularItem{}
	for rows.Next() {
		var p domain.PopularItem
		var fetchedAt, expiresAt string
		row := prefixScanner{rows: rows, prefix: []any{&p.Rank, &fetchedAt, &expiresAt}}
		item, err := scanItem(row)
		if err != nil {
			return nil, fmt.Errorf("scanning popular item: %w", err)
		}
		p.Item = *item
		if p.FetchedAt, err = parseTime(fetchedAt); err != nil {
			return nil, err
		}
		if p.ExpiresAt, err = parseTime(expiresAt); err != nil {
			return nil, err
		}
		popular = append(popular, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating popular items: %w", err)
	}
	return popular, nil
}

// Info returns the metadata of the last committed generation, or nil.
func (s *popularStore) Info(ctx context.Context) (*domain.SnapshotInfo, error) {
	var info domain.SnapshotInfo
	var fetchedAt string
	err := s.store.db.QueryRowContext(ctx, `
		SELECT generation, fetched_at, item_count FROM popular_snapshot WHERE id = 1
	`).Scan(&info.Generation, &fetchedAt, &info.ItemCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot metadata: %w", err)
	}

	if info.FetchedAt, err = parseTime(fetchedAt); err != nil {
		return nil, err
	}
	return &info, nil
}

// prefixScanner scans leading columns into prefix before handing the
// remaining destinations to the wrapped rows.
type prefixScanner struct {
	rows   *sql.Rows
	prefix []any
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append(p.prefix, dest...)...)
}
