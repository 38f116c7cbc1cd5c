package mcp

import (
	"context"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// ItemRecord is the wire form of a cached catalog item.
type ItemRecord struct {
	ID             int64    `json:"id" jsonschema:"marketplace item id, greater than zero"`
	Name           string   `json:"name" jsonschema:"display name"`
	Price          int      `json:"price" jsonschema:"price in yen, zero means free"`
	Category       string   `json:"category_name,omitempty" jsonschema:"marketplace category"`
	ShopName       string   `json:"shop_name,omitempty" jsonschema:"name of the selling shop"`
	ShopURL        string   `json:"shop_url,omitempty"`
	URL            string   `json:"url,omitempty"`
	ThumbnailURL   string   `json:"thumbnail_url,omitempty"`
	Images         []string `json:"images,omitempty"`
	WishListsCount *int     `json:"wish_lists_count,omitempty" jsonschema:"wish list count when fetched"`
	LastCachedAt   string   `json:"last_cached_at,omitempty" jsonschema:"RFC 3339 time of the last cache write"`
}

// CacheItemsInput is the input schema for the cache_items tool.
type CacheItemsInput struct {
	Items []ItemRecord `json:"items" jsonschema:"items to insert or refresh"`
}

// CountOutput reports how many records an operation touched.
type CountOutput struct {
	Count int `json:"count"`
}

// ItemIDInput identifies one item.
type ItemIDInput struct {
	ItemID int64 `json:"item_id" jsonschema:"marketplace item id"`
}

// ItemIDsInput identifies many items.
type ItemIDsInput struct {
	ItemIDs []int64 `json:"item_ids" jsonschema:"marketplace item ids"`
}

// ItemOutput wraps a single item.
type ItemOutput struct {
	Item ItemRecord `json:"item"`
}

// ItemsOutput wraps a list of items.
type ItemsOutput struct {
	Items []ItemRecord `json:"items"`
	Count int          `json:"count"`
}

// FavoriteOutput reports the favorite flag of an item.
type FavoriteOutput struct {
	ItemID     int64 `json:"item_id"`
	IsFavorite bool  `json:"is_favorite"`
}

// OKOutput acknowledges a mutation.
type OKOutput struct {
	OK bool `json:"ok"`
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cache_items",
		Description: "Insert or refresh catalog items in the local cache. The batch is atomic.",
	}, s.handleCacheItems)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Get one cached item by id",
	}, s.handleGetItem)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_items",
		Description: "Get the cached items among the given ids",
	}, s.handleGetItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_favorite",
		Description: "Mark a cached item as favorite. Repeating is a no-op.",
	}, s.handleAddFavorite)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_favorite",
		Description: "Clear the favorite flag of an item. Repeating is a no-op.",
	}, s.handleRemoveFavorite)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_favorites",
		Description: "List favorite items, oldest first",
	}, s.handleGetFavorites)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "is_favorite",
		Description: "Report whether an item is a favorite",
	}, s.handleIsFavorite)

	s.registerCurationTools()
	s.registerHistoryTools()
	s.registerStatsTools()
}

func (s *Server) handleCacheItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CacheItemsInput,
) (*mcp.CallToolResult, CountOutput, error) {
	items := make([]domain.Item, len(input.Items))
	for i := range input.Items {
		items[i] = fromRecord(input.Items[i])
	}

	n, err := s.ports.Items.CacheItems(ctx, items)
	if err != nil {
		return nil, CountOutput{}, err
	}
	return nil, CountOutput{Count: n}, nil
}

func (s *Server) handleGetItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	item, err := s.ports.Items.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, ItemOutput{Item: toRecord(*item)}, nil
}

func (s *Server) handleGetItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDsInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	items, err := s.ports.Items.GetItems(ctx, input.ItemIDs)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	return nil, itemsOutput(items), nil
}

func (s *Server) handleAddFavorite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Favorites.AddFavorite(ctx, input.ItemID); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleRemoveFavorite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Favorites.RemoveFavorite(ctx, input.ItemID); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleGetFavorites(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	items, err := s.ports.Favorites.GetFavorites(ctx)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	return nil, itemsOutput(items), nil
}

func (s *Server) handleIsFavorite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, FavoriteOutput, error) {
	fav, err := s.ports.Favorites.IsFavorite(ctx, input.ItemID)
	if err != nil {
		return nil, FavoriteOutput{}, err
	}
	return nil, FavoriteOutput{ItemID: input.ItemID, IsFavorite: fav}, nil
}

// toRecord converts a domain item to its wire form.
func toRecord(item domain.Item) ItemRecord {
	return ItemRecord{
		ID:             item.ID,
		Name:           item.Name,
		Price:          item.Price,
		Category:       item.Category,
		ShopName:       item.ShopName,
		ShopURL:        item.ShopURL,
		URL:            item.URL,
		ThumbnailURL:   item.Thumbnail(),
		Images:         item.Images,
		WishListsCount: item.WishListsCount,
		LastCachedAt:   formatTime(item.LastCachedAt),
	}
}

// fromRecord converts a wire item to the domain type. LastCachedAt is
// assigned by the cache and ignored here.
func fromRecord(r ItemRecord) domain.Item {
	return domain.Item{
		ID:             r.ID,
		Name:           r.Name,
		Price:          r.Price,
		Category:       r.Category,
		ShopName:       r.ShopName,
		ShopURL:        r.ShopURL,
		URL:            r.URL,
		ThumbnailURL:   r.ThumbnailURL,
		Images:         r.Images,
		WishListsCount: r.WishListsCount,
	}
}

func itemsOutput(items []domain.Item) ItemsOutput {
	out := ItemsOutput{
		Items: make([]ItemRecord, len(items)),
		Count: len(items),
	}
	for i := range items {
		out.Items[i] = toRecord(items[i])
	}
	return out
}

// formatTime renders t as RFC 3339, or empty for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// idKey renders an item id as a JSON object key.
func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
