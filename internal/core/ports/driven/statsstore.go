package driven

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// StatsStore runs read-only aggregation queries.
type StatsStore interface {
	// Dashboard returns summary counts.
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)

	// CategoryDistribution counts cached items per category.
	CategoryDistribution(ctx context.Context) ([]domain.CategoryCount, error)

	// PriceDistribution counts cached items per price bucket.
	PriceDistribution(ctx context.Context) ([]domain.PriceRange, error)

	// TopTags returns the most used tags, count descending then tag ascending.
	TopTags(ctx context.Context, limit int) ([]domain.TagCount, error)

	// TopShops returns the shops with the most cached items,
	// count descending then name ascending.
	TopShops(ctx context.Context, limit int) ([]domain.ShopCount, error)

	// MonthlyFavorites counts favorites per month over the trailing window
	// ending at opts.Now, zero-filled.
	MonthlyFavorites(ctx context.Context, opts domain.StatsOptions) ([]domain.MonthlyCount, error)

	// SearchHistoryStats summarises the search log.
	SearchHistoryStats(ctx context.Context, limit int) (*domain.SearchHistoryStats, error)

	// All runs every aggregation inside one read transaction.
	All(ctx context.Context, opts domain.StatsOptions) (*domain.AllStatistics, error)
}
