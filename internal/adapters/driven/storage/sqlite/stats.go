package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
)

// statsStore implements driven.StatsStore.
type statsStore struct {
	store *Store
}

var _ driven.StatsStore = (*statsStore)(nil)

// Dashboard returns summary counts.
func (s *statsStore) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return dashboard(ctx, s.store.db)
}

// CategoryDistribution counts cached items per category.
func (s *statsStore) CategoryDistribution(ctx context.Context) ([]domain.CategoryCount, error) {
	return categoryDistribution(ctx, s.store.db)
}

// PriceDistribution counts cached items per price bucket.
func (s *statsStore) PriceDistribution(ctx context.Context) ([]domain.PriceRange, error) {
	return priceDistribution(ctx, s.store.db)
}

// TopTags returns the most used tags.
func (s *statsStore) TopTags(ctx context.Context, limit int) ([]domain.TagCount, error) {
	return topTags(ctx, s.store.db, limit)
}

// TopShops returns the shops with the most cached items.
func (s *statsStore) TopShops(ctx context.Context, limit int) ([]domain.ShopCount, error) {
	return topShops(ctx, s.store.db, limit)
}

// MonthlyFavorites counts favorites per month over the trailing window.
func (s *statsStore) MonthlyFavorites(ctx context.Context, opts domain.StatsOptions) ([]domain.MonthlyCount, error) {
	return monthlyFavorites(ctx, s.store.db, opts)
}

// SearchHistoryStats summarises the search log.
func (s *statsStore) SearchHistoryStats(ctx context.Context, limit int) (*domain.SearchHistoryStats, error) {
	return searchHistoryStats(ctx, s.store.db, limit)
}

// All runs every aggregation inside one read transaction so the sections
// agree with each other.
func (s *statsStore) All(ctx context.Context, opts domain.StatsOptions) (*domain.AllStatistics, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	all := &domain.AllStatistics{}

	dash, err := dashboard(ctx, tx)
	if err != nil {
		return nil, err
	}
	all.Dashboard = *dash

	if all.Categories, err = categoryDistribution(ctx, tx); err != nil {
		return nil, err
	}
	if all.Prices, err = priceDistribution(ctx, tx); err != nil {
		return nil, err
	}
	if all.TopTags, err = topTags(ctx, tx, opts.TopLimit); err != nil {
		return nil, err
	}
	if all.TopShops, err = topShops(ctx, tx, opts.TopLimit); err != nil {
		return nil, err
	}
	if all.MonthlyFavorites, err = monthlyFavorites(ctx, tx, opts); err != nil {
		return nil, err
	}

	history, err := searchHistoryStats(ctx, tx, opts.TopLimit)
	if err != nil {
		return nil, err
	}
	all.SearchHistory = *history

	return all, nil
}

// ==================== Aggregations ====================

func dashboard(ctx context.Context, q queryer) (*domain.DashboardStats, error) {
	var d domain.DashboardStats
	err := q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM items),
			(SELECT COUNT(*) FROM favorites),
			(SELECT COUNT(*) FROM collections),
			(SELECT COUNT(*) FROM search_history),
			(SELECT COUNT(DISTINCT tag_id) FROM item_tags)
	`).Scan(&d.TotalItems, &d.TotalFavorites, &d.TotalCollections, &d.TotalSearches, &d.TotalTags)
	if err != nil {
		return nil, fmt.Errorf("querying dashboard stats: %w", err)
	}
	return &d, nil
}

func categoryDistribution(ctx context.Context, q queryer) ([]domain.CategoryCount, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT
			CASE WHEN TRIM(category) = '' THEN ? ELSE category END AS label,
			COUNT(*) AS cnt
		FROM items
		GROUP BY label
		ORDER BY cnt DESC, label ASC
	`, domain.UncategorizedLabel)
	if err != nil {
		return nil, fmt.Errorf("querying category distribution: %w", err)
	}
	defer rows.Close()

	counts := []domain.CategoryCount{}
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}
	return counts, nil
}

// priceDistribution groups by exact price in SQL and folds the groups into
// the fixed buckets, so every bucket is present even when empty.
func priceDistribution(ctx context.Context, q queryer) ([]domain.PriceRange, error) {
	ranges := make([]domain.PriceRange, len(domain.PriceBuckets))
	for i, b := range domain.PriceBuckets {
		ranges[i].Label = b.Label
	}

	rows, err := q.QueryContext(ctx, "SELECT price, COUNT(*) FROM items GROUP BY price")
	if err != nil {
		return nil, fmt.Errorf("querying price distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var price, count int
		if err := rows.Scan(&price, &count); err != nil {
			return nil, fmt.Errorf("scanning price count: %w", err)
		}
		ranges[domain.PriceBucketIndex(price)].Count += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price counts: %w", err)
	}
	return ranges, nil
}

func topTags(ctx context.Context, q queryer, limit int) ([]domain.TagCount, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name, COUNT(*) AS cnt
		FROM item_tags it
		JOIN tags t ON t.id = it.tag_id
		GROUP BY t.name
		ORDER BY cnt DESC, t.name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top tags: %w", err)
	}
	defer rows.Close()

	counts := []domain.TagCount{}
	for rows.Next() {
		var c domain.TagCount
		if err := rows.Scan(&c.Tag, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag counts: %w", err)
	}
	return counts, nil
}

func topShops(ctx context.Context, q queryer, limit int) ([]domain.ShopCount, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT shop_name, COUNT(*) AS cnt
		FROM items
		WHERE TRIM(shop_name) != ''
		GROUP BY shop_name
		ORDER BY cnt DESC, shop_name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top shops: %w", err)
	}
	defer rows.Close()

	counts := []domain.ShopCount{}
	for rows.Next() {
		var c domain.ShopCount
		if err := rows.Scan(&c.ShopName, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning shop count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shop counts: %w", err)
	}
	return counts, nil
}

// monthlyFavorites relies on the fixed-width time layout: the first seven
// characters of created_at are the YYYY-MM key.
func monthlyFavorites(ctx context.Context, q queryer, opts domain.StatsOptions) ([]domain.MonthlyCount, error) {
	keys := domain.MonthKeys(opts.Now, opts.Months)
	counts := make([]domain.MonthlyCount, len(keys))
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		counts[i].Month = k
		index[k] = i
	}
	if len(keys) == 0 {
		return counts, nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT substr(created_at, 1, 7) AS month, COUNT(*)
		FROM favorites
		WHERE created_at >= ?
		GROUP BY month
	`, formatTime(domain.WindowStart(opts.Now, opts.Months)))
	if err != nil {
		return nil, fmt.Errorf("querying monthly favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month string
		var count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("scanning monthly count: %w", err)
		}
		// Favorites dated after now fall outside the window.
		if i, ok := index[month]; ok {
			counts[i].Count = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly counts: %w", err)
	}
	return counts, nil
}

func searchHistoryStats(ctx context.Context, q queryer, limit int) (*domain.SearchHistoryStats, error) {
	stats := &domain.SearchHistoryStats{}
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT query) FROM search_history",
	).Scan(&stats.TotalSearches, &stats.UniqueQueries)
	if err != nil {
		return nil, fmt.Errorf("querying search totals: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT query, COUNT(*) AS cnt
		FROM search_history
		GROUP BY query
		ORDER BY cnt DESC, query ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top queries: %w", err)
	}
	defer rows.Close()

	stats.TopQueries = []domain.QueryCount{}
	for rows.Next() {
		var c domain.QueryCount
		if err := rows.Scan(&c.Query, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning query count: %w", err)
		}
		stats.TopQueries = append(stats.TopQueries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query counts: %w", err)
	}

	if stats.Recent, err = recentSearches(ctx, q, limit); err != nil {
		return nil, err
	}
	return stats, nil
}
