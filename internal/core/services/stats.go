package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/logger"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService serves read-only dashboard aggregations.
type StatsService struct {
	store   driven.StatsStore
	policy  driving.PolicyProvider
	metrics driven.Metrics
	now     func() time.Time
}

// NewStatsService creates a new statistics service.
func NewStatsService(store driven.StatsStore, policy driving.PolicyProvider, metrics driven.Metrics) *StatsService {
	return &StatsService{
		store:   store,
		policy:  policy,
		metrics: orNop(metrics),
		now:     time.Now,
	}
}

// GetDashboardStats returns summary counts.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.store.Dashboard(ctx)
}

// GetCategoryDistribution counts cached items per category.
func (s *StatsService) GetCategoryDistribution(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.store.CategoryDistribution(ctx)
}

// GetPriceDistribution counts cached items per fixed price bucket.
func (s *StatsService) GetPriceDistribution(ctx context.Context) ([]domain.PriceRange, error) {
	return s.store.PriceDistribution(ctx)
}

// GetTopTags returns the most used tags.
func (s *StatsService) GetTopTags(ctx context.Context, limit int) ([]domain.TagCount, error) {
	limit, err := s.topLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.store.TopTags(ctx, limit)
}

// GetTopShops returns the shops with the most cached items.
func (s *StatsService) GetTopShops(ctx context.Context, limit int) ([]domain.ShopCount, error) {
	limit, err := s.topLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.store.TopShops(ctx, limit)
}

// GetMonthlyFavorites counts favorites per month over the trailing window.
func (s *StatsService) GetMonthlyFavorites(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	months, err := s.monthlyWindow(months)
	if err != nil {
		return nil, err
	}
	return s.store.MonthlyFavorites(ctx, domain.StatsOptions{Months: months, Now: s.now()})
}

// GetSearchHistoryStats summarises the search log.
func (s *StatsService) GetSearchHistoryStats(ctx context.Context, limit int) (*domain.SearchHistoryStats, error) {
	limit, err := s.topLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.store.SearchHistoryStats(ctx, limit)
}

// GetAllStatistics composes every aggregation using the policy defaults.
// Any failing part fails the whole call.
func (s *StatsService) GetAllStatistics(ctx context.Context) (*domain.AllStatistics, error) {
	defer logger.Since("all statistics", time.Now())

	policy := s.policy.Policy()
	stats, err := s.store.All(ctx, domain.StatsOptions{
		TopLimit: policy.StatsTopLimit,
		Months:   policy.StatsMonthlyWindow,
		Now:      s.now(),
	})
	if err != nil {
		s.metrics.RecordError("get_all_statistics")
		return nil, err
	}
	return stats, nil
}

// topLimit applies the default for limit <= 0 and rejects oversized limits.
func (s *StatsService) topLimit(limit int) (int, error) {
	if limit <= 0 {
		return s.policy.Policy().StatsTopLimit, nil
	}
	if limit > domain.MaxTopLimit {
		return 0, fmt.Errorf("%w: limit %d exceeds %d", domain.ErrQuery, limit, domain.MaxTopLimit)
	}
	return limit, nil
}

// monthlyWindow applies the default for months <= 0 and rejects oversized windows.
func (s *StatsService) monthlyWindow(months int) (int, error) {
	if months <= 0 {
		return s.policy.Policy().StatsMonthlyWindow, nil
	}
	if months > domain.MaxMonthlyWindow {
		return 0, fmt.Errorf("%w: months %d exceeds %d", domain.ErrQuery, months, domain.MaxMonthlyWindow)
	}
	return months, nil
}
