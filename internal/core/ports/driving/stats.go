package driving

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// StatsService serves dashboard aggregations.
// A zero limit or months selects the policy default.
type StatsService interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	GetCategoryDistribution(ctx context.Context) ([]domain.CategoryCount, error)
	GetPriceDistribution(ctx context.Context) ([]domain.PriceRange, error)
	GetTopTags(ctx context.Context, limit int) ([]domain.TagCount, error)
	GetTopShops(ctx context.Context, limit int) ([]domain.ShopCount, error)
	GetMonthlyFavorites(ctx context.Context, months int) ([]domain.MonthlyCount, error)
	GetSearchHistoryStats(ctx context.Context, limit int) (*domain.SearchHistoryStats, error)

	// GetAllStatistics composes every aggregation. It fails as a whole if
	// any part fails.
	GetAllStatistics(ctx context.Context) (*domain.AllStatistics, error)
}
