package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// SaveSearchInput is the input schema for save_search_history.
type SaveSearchInput struct {
	Query string `json:"query" jsonschema:"the search query, must not be blank"`
}

// LimitInput caps the number of returned rows. Zero selects the default.
type LimitInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of rows, zero selects the configured default"`
}

// HistoryEntryRecord is the wire form of a search history entry.
type HistoryEntryRecord struct {
	ID         int64  `json:"id"`
	Query      string `json:"query"`
	SearchedAt string `json:"searched_at"`
}

// HistoryOutput wraps search history entries, newest first.
type HistoryOutput struct {
	Entries []HistoryEntryRecord `json:"entries"`
	Count   int                  `json:"count"`
}

// NeedsUpdateOutput reports whether the popular snapshot needs a refresh.
type NeedsUpdateOutput struct {
	NeedsUpdate bool `json:"needs_update"`
}

// PopularRecord is one ranked row of the popular snapshot.
type PopularRecord struct {
	Rank      int        `json:"rank"`
	Item      ItemRecord `json:"item"`
	FetchedAt string     `json:"fetched_at"`
	ExpiresAt string     `json:"expires_at"`
}

// PopularOutput wraps the popular snapshot in rank order.
type PopularOutput struct {
	Items []PopularRecord `json:"items"`
	Count int             `json:"count"`
}

// UpdateRecord is the wire form of a staged application update.
type UpdateRecord struct {
	Version string  `json:"version"`
	Body    *string `json:"body,omitempty"`
}

func (s *Server) registerHistoryTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_search_history",
		Description: "Append a search query to the history log",
	}, s.handleSaveSearchHistory)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_search_history",
		Description: "List recent searches, newest first",
	}, s.handleGetSearchHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_avatars_need_update",
		Description: "Report whether the popular items snapshot is absent or stale",
	}, s.handleCheckAvatarsNeedUpdate)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_popular_avatars",
		Description: "Replace the popular items snapshot. Items are ranked in the given order.",
	}, s.handleUpdatePopularAvatars)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_popular_avatars",
		Description: "List the popular items snapshot in rank order",
	}, s.handleGetPopularAvatars)

	if s.ports.Updates == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_pending_update",
		Description: "Stage an application update, replacing any staged one",
	}, s.handleSetPendingUpdate)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "take_pending_update",
		Description: "Take the staged application update. Fails when nothing is staged.",
	}, s.handleTakePendingUpdate)
}

func (s *Server) handleSaveSearchHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveSearchInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.History.SaveSearchHistory(ctx, input.Query); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleGetSearchHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	entries, err := s.ports.History.GetSearchHistory(ctx, input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	return nil, historyOutput(entries), nil
}

func (s *Server) handleCheckAvatarsNeedUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, NeedsUpdateOutput, error) {
	needs, err := s.ports.Popular.CheckAvatarsNeedUpdate(ctx)
	if err != nil {
		return nil, NeedsUpdateOutput{}, err
	}
	return nil, NeedsUpdateOutput{NeedsUpdate: needs}, nil
}

func (s *Server) handleUpdatePopularAvatars(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CacheItemsInput,
) (*mcp.CallToolResult, CountOutput, error) {
	items := make([]domain.Item, len(input.Items))
	for i := range input.Items {
		items[i] = fromRecord(input.Items[i])
	}

	if err := s.ports.Popular.UpdatePopularAvatars(ctx, items); err != nil {
		return nil, CountOutput{}, err
	}
	return nil, CountOutput{Count: len(items)}, nil
}

func (s *Server) handleGetPopularAvatars(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PopularOutput, error) {
	rows, err := s.ports.Popular.GetPopularAvatars(ctx)
	if err != nil {
		return nil, PopularOutput{}, err
	}

	out := PopularOutput{
		Items: make([]PopularRecord, len(rows)),
		Count: len(rows),
	}
	for i, row := range rows {
		out.Items[i] = PopularRecord{
			Rank:      row.Rank,
			Item:      toRecord(row.Item),
			FetchedAt: formatTime(row.FetchedAt),
			ExpiresAt: formatTime(row.ExpiresAt),
		}
	}
	return nil, out, nil
}

func (s *Server) handleSetPendingUpdate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input UpdateRecord,
) (*mcp.CallToolResult, OKOutput, error) {
	s.ports.Updates.Set(domain.UpdateInfo{Version: input.Version, Body: input.Body})
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleTakePendingUpdate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, UpdateRecord, error) {
	info, err := s.ports.Updates.TakeOrErr()
	if err != nil {
		return nil, UpdateRecord{}, err
	}
	return nil, UpdateRecord{Version: info.Version, Body: info.Body}, nil
}

func historyOutput(entries []domain.SearchHistoryEntry) HistoryOutput {
	out := HistoryOutput{
		Entries: make([]HistoryEntryRecord, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		out.Entries[i] = HistoryEntryRecord{
			ID:         e.ID,
			Query:      e.Query,
			SearchedAt: formatTime(e.SearchedAt),
		}
	}
	return out
}
