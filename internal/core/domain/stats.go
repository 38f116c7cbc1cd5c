package domain

import "time"

// UncategorizedLabel is reported for items without a category.
const UncategorizedLabel = "Uncategorized"

// monthLayout formats a calendar month bucket.
const monthLayout = "2006-01"

// DashboardStats holds the summary counts shown at the top of the dashboard.
type DashboardStats struct {
	TotalItems       int `json:"total_items"`
	TotalFavorites   int `json:"total_favorites"`
	TotalCollections int `json:"total_collections"`
	TotalSearches    int `json:"total_searches"`
	TotalTags        int `json:"total_tags"`
}

// CategoryCount is the number of cached items in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceRange is a histogram bucket over item prices.
type PriceRange struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TagCount is the number of items carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ShopCount is the number of cached items sold by a shop.
type ShopCount struct {
	ShopName string `json:"shop_name"`
	Count    int    `json:"count"`
}

// MonthlyCount is the number of favorites created in a calendar month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// AllStatistics composes every aggregation into one payload.
type AllStatistics struct {
	Dashboard        DashboardStats     `json:"dashboard"`
	Categories       []CategoryCount    `json:"categories"`
	Prices           []PriceRange       `json:"prices"`
	TopTags          []TagCount         `json:"top_tags"`
	TopShops         []ShopCount        `json:"top_shops"`
	MonthlyFavorites []MonthlyCount     `json:"monthly_favorites"`
	SearchHistory    SearchHistoryStats `json:"search_history"`
}

// StatsOptions parameterises aggregation queries.
type StatsOptions struct {
	// TopLimit caps top tags, top shops and top queries.
	TopLimit int

	// Months is the trailing window for monthly favorites.
	Months int

	// Now anchors the monthly window.
	Now time.Time
}

// PriceBucket is a closed price range. Max < 0 means unbounded.
type PriceBucket struct {
	Label string
	Min   int
	Max   int
}

// PriceBuckets are the fixed histogram buckets, in display order.
var PriceBuckets = []PriceBucket{
	{Label: "Free", Min: 0, Max: 0},
	{Label: "1-500", Min: 1, Max: 500},
	{Label: "501-1000", Min: 501, Max: 1000},
	{Label: "1001-3000", Min: 1001, Max: 3000},
	{Label: "3001-5000", Min: 3001, Max: 5000},
	{Label: "5001-10000", Min: 5001, Max: 10000},
	{Label: "10001+", Min: 10001, Max: -1},
}

// PriceBucketIndex returns the index into PriceBuckets for price.
// Negative prices fall into the first bucket.
func PriceBucketIndex(price int) int {
	for i, b := range PriceBuckets {
		if price <= b.Max || b.Max < 0 {
			return i
		}
	}
	return len(PriceBuckets) - 1
}

// MonthKeys returns the trailing months calendar months ending with the
// month containing now, oldest first, formatted as YYYY-MM in UTC.
func MonthKeys(now time.Time, months int) []string {
	if months <= 0 {
		return nil
	}
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, months)
	for i := range months {
		keys[i] = first.AddDate(0, i-months+1, 0).Format(monthLayout)
	}
	return keys
}

// WindowStart returns the first instant of the oldest month in the window.
func WindowStart(now time.Time, months int) time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1-months, 0)
}
