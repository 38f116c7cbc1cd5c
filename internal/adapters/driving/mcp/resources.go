package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for boothcache resources.
	uriScheme = "boothcache://"

	jsonMIME = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "All collections with their item counts",
		MIMEType:    jsonMIME,
	}, s.handleCollectionsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "statistics",
		Name:        "statistics",
		Description: "Every dashboard aggregation",
		MIMEType:    jsonMIME,
	}, s.handleStatisticsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "collections/{collectionId}/items",
		Name:        "collection-items",
		Description: "Items of a specific collection in insertion order",
		MIMEType:    jsonMIME,
	}, s.handleCollectionItemsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{itemId}",
		Name:        "item",
		Description: "A cached catalog item",
		MIMEType:    jsonMIME,
	}, s.handleItemResource)
}

func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cs, err := s.ports.Collections.GetCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return jsonResult(req.Params.URI, collectionsOutput(cs).Collections)
}

func (s *Server) handleStatisticsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	all, err := s.ports.Stats.GetAllStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing statistics: %w", err)
	}
	return jsonResult(req.Params.URI, allStatisticsOutput(all))
}

func (s *Server) handleCollectionItemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// boothcache://collections/{collectionId}/items
	collectionID := extractCollectionID(req.Params.URI)
	if collectionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	items, err := s.ports.Collections.GetCollectionItems(ctx, collectionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("listing collection items: %w", err)
	}
	return jsonResult(req.Params.URI, itemsOutput(items).Items)
}

func (s *Server) handleItemResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	itemID, ok := extractItemID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Items.GetItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return jsonResult(req.Params.URI, toRecord(*item))
}

// jsonResult renders v as a single JSON resource body.
func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}

// extractCollectionID extracts the collection ID from a URI like
// boothcache://collections/{collectionId}/items.
func extractCollectionID(uri string) string {
	const prefix = uriScheme + "collections/"
	const suffix = "/items"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractItemID extracts the item ID from a URI like boothcache://items/{itemId}.
func extractItemID(uri string) (int64, bool) {
	const prefix = uriScheme + "items/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
