package mcp

import (
	"fmt"

	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	Items       driving.ItemService
	Favorites   driving.FavoriteService
	Collections driving.CollectionService
	Tags        driving.TagService
	History     driving.SearchHistoryService
	Popular     driving.PopularService
	Stats       driving.StatsService

	// Updates is optional. The update tools are registered only when set.
	Updates driving.PendingUpdateCell
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	required := []struct {
		name string
		set  bool
	}{
		{"items", p.Items != nil},
		{"favorites", p.Favorites != nil},
		{"collections", p.Collections != nil},
		{"tags", p.Tags != nil},
		{"history", p.History != nil},
		{"popular", p.Popular != nil},
		{"stats", p.Stats != nil},
	}
	for _, r := range required {
		if !r.set {
			return fmt.Errorf("%w: %s", ErrMissingService, r.name)
		}
	}
	return nil
}
