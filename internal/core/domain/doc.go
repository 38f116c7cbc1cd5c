// Package domain defines the core business entities for boothcache.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: A cached catalog record fetched from the marketplace
//   - Collection: A user-named, ordered grouping of items
//   - SearchHistoryEntry: A past search query
//   - PopularItem: One ranked row of the popular items snapshot
//   - Policy: Retention and refresh settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
