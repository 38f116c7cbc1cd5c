package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

// CollectionRecord is the wire form of a collection.
type CollectionRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ItemCount int    `json:"item_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateCollectionInput is the input schema for create_collection.
type CreateCollectionInput struct {
	Name  string `json:"name" jsonschema:"collection name, up to 100 characters"`
	Color string `json:"color" jsonschema:"hex colour such as #ff8800"`
}

// RenameCollectionInput is the input schema for rename_collection.
type RenameCollectionInput struct {
	CollectionID string `json:"collection_id"`
	Name         string `json:"name"`
}

// CollectionColorInput is the input schema for update_collection_color.
type CollectionColorInput struct {
	CollectionID string `json:"collection_id"`
	Color        string `json:"color"`
}

// CollectionIDInput identifies one collection.
type CollectionIDInput struct {
	CollectionID string `json:"collection_id"`
}

// MembershipInput names a collection and an item.
type MembershipInput struct {
	CollectionID string `json:"collection_id"`
	ItemID       int64  `json:"item_id"`
}

// CollectionOutput wraps a single collection.
type CollectionOutput struct {
	Collection CollectionRecord `json:"collection"`
}

// CollectionsOutput wraps a list of collections.
type CollectionsOutput struct {
	Collections []CollectionRecord `json:"collections"`
	Count       int                `json:"count"`
}

// CollectionsBatchOutput maps item ids to their collections.
type CollectionsBatchOutput struct {
	Collections map[string][]CollectionRecord `json:"collections" jsonschema:"collections keyed by item id"`
}

// SetTagsInput is the input schema for set_item_tags.
type SetTagsInput struct {
	ItemID int64    `json:"item_id"`
	Tags   []string `json:"tags" jsonschema:"the complete new tag set, an empty list clears it"`
}

// TagsOutput wraps a list of tags.
type TagsOutput struct {
	Tags []string `json:"tags"`
}

// TagsBatchOutput maps item ids to their tags.
type TagsBatchOutput struct {
	Tags map[string][]string `json:"tags" jsonschema:"tags keyed by item id"`
}

func (s *Server) registerCurationTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_collection",
		Description: "Create a named, coloured collection",
	}, s.handleCreateCollection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rename_collection",
		Description: "Rename a collection",
	}, s.handleRenameCollection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_collection_color",
		Description: "Change the colour of a collection",
	}, s.handleUpdateCollectionColor)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_collection",
		Description: "Delete a collection and its memberships. Items are kept.",
	}, s.handleDeleteCollection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_to_collection",
		Description: "Add a cached item to a collection. Repeating is a no-op.",
	}, s.handleAddToCollection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_from_collection",
		Description: "Remove an item from a collection. Repeating is a no-op.",
	}, s.handleRemoveFromCollection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_collections",
		Description: "List all collections with their item counts",
	}, s.handleGetCollections)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_collection_items",
		Description: "List the items of a collection in insertion order",
	}, s.handleGetCollectionItems)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item_collections",
		Description: "List the collections containing an item",
	}, s.handleGetItemCollections)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_all_item_collections_batch",
		Description: "Get the collections of many items at once",
	}, s.handleGetItemCollectionsBatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_item_tags",
		Description: "Replace the tag set of an item. Tags are trimmed and lower-cased.",
	}, s.handleSetItemTags)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item_tags",
		Description: "List the tags of an item",
	}, s.handleGetItemTags)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_all_user_tags",
		Description: "List every tag in use",
	}, s.handleGetAllUserTags)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_all_item_tags_batch",
		Description: "Get the tags of many items at once",
	}, s.handleGetItemTagsBatch)
}

func (s *Server) handleCreateCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateCollectionInput,
) (*mcp.CallToolResult, CollectionOutput, error) {
	c, err := s.ports.Collections.CreateCollection(ctx, input.Name, input.Color)
	if err != nil {
		return nil, CollectionOutput{}, err
	}
	return nil, CollectionOutput{Collection: toCollectionRecord(*c)}, nil
}

func (s *Server) handleRenameCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenameCollectionInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Collections.RenameCollection(ctx, input.CollectionID, input.Name); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleUpdateCollectionColor(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionColorInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Collections.UpdateCollectionColor(ctx, input.CollectionID, input.Color); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleDeleteCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionIDInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Collections.DeleteCollection(ctx, input.CollectionID); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleAddToCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MembershipInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Collections.AddToCollection(ctx, input.CollectionID, input.ItemID); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleRemoveFromCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MembershipInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Collections.RemoveFromCollection(ctx, input.CollectionID, input.ItemID); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleGetCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	cs, err := s.ports.Collections.GetCollections(ctx)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, collectionsOutput(cs), nil
}

func (s *Server) handleGetCollectionItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionIDInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	items, err := s.ports.Collections.GetCollectionItems(ctx, input.CollectionID)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	return nil, itemsOutput(items), nil
}

func (s *Server) handleGetItemCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	cs, err := s.ports.Collections.GetItemCollections(ctx, input.ItemID)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, collectionsOutput(cs), nil
}

func (s *Server) handleGetItemCollectionsBatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDsInput,
) (*mcp.CallToolResult, CollectionsBatchOutput, error) {
	batch, err := s.ports.Collections.GetAllItemCollectionsBatch(ctx, input.ItemIDs)
	if err != nil {
		return nil, CollectionsBatchOutput{}, err
	}

	out := CollectionsBatchOutput{Collections: make(map[string][]CollectionRecord, len(batch))}
	for id, cs := range batch {
		out.Collections[idKey(id)] = collectionsOutput(cs).Collections
	}
	return nil, out, nil
}

func (s *Server) handleSetItemTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetTagsInput,
) (*mcp.CallToolResult, OKOutput, error) {
	if err := s.ports.Tags.SetItemTags(ctx, input.ItemID, input.Tags); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleGetItemTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDInput,
) (*mcp.CallToolResult, TagsOutput, error) {
	tags, err := s.ports.Tags.GetItemTags(ctx, input.ItemID)
	if err != nil {
		return nil, TagsOutput{}, err
	}
	return nil, TagsOutput{Tags: orEmpty(tags)}, nil
}

func (s *Server) handleGetAllUserTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, TagsOutput, error) {
	tags, err := s.ports.Tags.GetAllUserTags(ctx)
	if err != nil {
		return nil, TagsOutput{}, err
	}
	return nil, TagsOutput{Tags: orEmpty(tags)}, nil
}

func (s *Server) handleGetItemTagsBatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemIDsInput,
) (*mcp.CallToolResult, TagsBatchOutput, error) {
	batch, err := s.ports.Tags.GetAllItemTagsBatch(ctx, input.ItemIDs)
	if err != nil {
		return nil, TagsBatchOutput{}, err
	}

	out := TagsBatchOutput{Tags: make(map[string][]string, len(batch))}
	for id, tags := range batch {
		out.Tags[idKey(id)] = orEmpty(tags)
	}
	return nil, out, nil
}

func toCollectionRecord(c domain.Collection) CollectionRecord {
	return CollectionRecord{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		ItemCount: c.ItemCount,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func collectionsOutput(cs []domain.Collection) CollectionsOutput {
	out := CollectionsOutput{
		Collections: make([]CollectionRecord, len(cs)),
		Count:       len(cs),
	}
	for i := range cs {
		out.Collections[i] = toCollectionRecord(cs[i])
	}
	return out
}
