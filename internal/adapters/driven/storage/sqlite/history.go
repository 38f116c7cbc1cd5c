package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// searchHistoryStore implements driven.SearchHistoryStore.
type searchHistoryStore struct {
	store *Store
}

var _ driven.SearchHistoryStore = (*searchHistoryStore)(nil)

// Append records a query and prunes the log to the most recent keep entries.
func (s *searchHistoryStore) Append(ctx context.Context, query string, keep int) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO search_history (query, searched_at) VALUES (?, ?)",
			query, formatTime(s.store.now())); err != nil {
			return fmt.Errorf("saving search history: %w", mapError(err))
		}

		if keep <= 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM search_history
			WHERE id NOT IN (
				SELECT id FROM search_history ORDER BY id DESC LIMIT ?
			)
		`, keep); err != nil {
			return fmt.Errorf("pruning search history: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit entries, newest first.
func (s *searchHistoryStore) Recent(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
	return recentSearches(ctx, s.store.db, limit)
}

// recentSearches returns up to limit entries, newest first.
func recentSearches(ctx context.Context, q queryer, limit int) ([]domain.SearchHistoryEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, query, searched_at
		FROM search_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	entries := []domain.SearchHistoryEntry{}
	for rows.Next() {
		var e domain.SearchHistoryEntry
		var searchedAt string
		if err := rows.Scan(&e.ID, &e.Query, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning search history: %w", err)
		}
		if e.SearchedAt, err = parseTime(searchedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search history: %w", err)
	}
	return entries, nil
}
