package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// MonthsInput selects the trailing window for monthly favorites.
type MonthsInput struct {
	Months int `json:"months,omitempty" jsonschema:"number of calendar months, zero selects the configured default"`
}

// CategoriesOutput wraps the category distribution.
type CategoriesOutput struct {
	Categories []domain.CategoryCount `json:"categories"`
}

// PricesOutput wraps the price histogram.
type PricesOutput struct {
	Prices []domain.PriceRange `json:"prices"`
}

// TopTagsOutput wraps the most used tags.
type TopTagsOutput struct {
	Tags []domain.TagCount `json:"tags"`
}

// TopShopsOutput wraps the shops with most cached items.
type TopShopsOutput struct {
	Shops []domain.ShopCount `json:"shops"`
}

// MonthlyOutput wraps favorites per month, oldest first.
type MonthlyOutput struct {
	Months []domain.MonthlyCount `json:"months"`
}

// SearchStatsOutput summarises the search history log.
type SearchStatsOutput struct {
	TotalSearches int                 `json:"total_searches"`
	UniqueQueries int                 `json:"unique_queries"`
	TopQueries    []domain.QueryCount `json:"top_queries"`
	Recent        HistoryOutput       `json:"recent"`
}

// AllStatisticsOutput composes every aggregation.
type AllStatisticsOutput struct {
	Dashboard        domain.DashboardStats  `json:"dashboard"`
	Categories       []domain.CategoryCount `json:"categories"`
	Prices           []domain.PriceRange    `json:"prices"`
	TopTags          []domain.TagCount      `json:"top_tags"`
	TopShops         []domain.ShopCount     `json:"top_shops"`
	MonthlyFavorites []domain.MonthlyCount  `json:"monthly_favorites"`
	SearchHistory    SearchStatsOutput      `json:"search_history"`
}

func (s *Server) registerStatsTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_dashboard_stats",
		Description: "Total items, favorites, collections, searches and tags",
	}, s.handleGetDashboardStats)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_category_distribution",
		Description: "Cached items per category",
	}, s.handleGetCategoryDistribution)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_price_distribution",
		Description: "Cached items per price range",
	}, s.handleGetPriceDistribution)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_top_tags",
		Description: "Most used tags",
	}, s.handleGetTopTags)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_top_shops",
		Description: "Shops with the most cached items",
	}, s.handleGetTopShops)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_monthly_favorites",
		Description: "Favorites added per calendar month",
	}, s.handleGetMonthlyFavorites)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_search_history_stats",
		Description: "Search counts, most frequent queries and recent searches",
	}, s.handleGetSearchHistoryStats)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_all_statistics",
		Description: "Every dashboard aggregation in one consistent read",
	}, s.handleGetAllStatistics)
}

func (s *Server) handleGetDashboardStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, domain.DashboardStats, error) {
	stats, err := s.ports.Stats.GetDashboardStats(ctx)
	if err != nil {
		return nil, domain.DashboardStats{}, err
	}
	return nil, *stats, nil
}

func (s *Server) handleGetCategoryDistribution(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	cats, err := s.ports.Stats.GetCategoryDistribution(ctx)
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	return nil, CategoriesOutput{Categories: orEmpty(cats)}, nil
}

func (s *Server) handleGetPriceDistribution(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PricesOutput, error) {
	prices, err := s.ports.Stats.GetPriceDistribution(ctx)
	if err != nil {
		return nil, PricesOutput{}, err
	}
	return nil, PricesOutput{Prices: orEmpty(prices)}, nil
}

func (s *Server) handleGetTopTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, TopTagsOutput, error) {
	tags, err := s.ports.Stats.GetTopTags(ctx, input.Limit)
	if err != nil {
		return nil, TopTagsOutput{}, err
	}
	return nil, TopTagsOutput{Tags: orEmpty(tags)}, nil
}

func (s *Server) handleGetTopShops(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, TopShopsOutput, error) {
	shops, err := s.ports.Stats.GetTopShops(ctx, input.Limit)
	if err != nil {
		return nil, TopShopsOutput{}, err
	}
	return nil, TopShopsOutput{Shops: orEmpty(shops)}, nil
}

func (s *Server) handleGetMonthlyFavorites(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MonthsInput,
) (*mcp.CallToolResult, MonthlyOutput, error) {
	months, err := s.ports.Stats.GetMonthlyFavorites(ctx, input.Months)
	if err != nil {
		return nil, MonthlyOutput{}, err
	}
	return nil, MonthlyOutput{Months: orEmpty(months)}, nil
}

func (s *Server) handleGetSearchHistoryStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, SearchStatsOutput, error) {
	stats, err := s.ports.Stats.GetSearchHistoryStats(ctx, input.Limit)
	if err != nil {
		return nil, SearchStatsOutput{}, err
	}
	return nil, searchStatsOutput(*stats), nil
}

func (s *Server) handleGetAllStatistics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, AllStatisticsOutput, error) {
	all, err := s.ports.Stats.GetAllStatistics(ctx)
	if err != nil {
		return nil, AllStatisticsOutput{}, err
	}
	return nil, allStatisticsOutput(all), nil
}

func allStatisticsOutput(all *domain.AllStatistics) AllStatisticsOutput {
	return AllStatisticsOutput{
		Dashboard:        all.Dashboard,
		Categories:       orEmpty(all.Categories),
		Prices:           orEmpty(all.Prices),
		TopTags:          orEmpty(all.TopTags),
		TopShops:         orEmpty(all.TopShops),
		MonthlyFavorites: orEmpty(all.MonthlyFavorites),
		SearchHistory:    searchStatsOutput(all.SearchHistory),
	}
}

func searchStatsOutput(stats domain.SearchHistoryStats) SearchStatsOutput {
	return SearchStatsOutput{
		TotalSearches: stats.TotalSearches,
		UniqueQueries: stats.UniqueQueries,
		TopQueries:    orEmpty(stats.TopQueries),
		Recent:        historyOutput(stats.Recent),
	}
}

// orEmpty keeps empty aggregations serialised as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
