// Package sqlite provides a unified SQLite-based implementation of the cache
// store interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ItemStore: cached catalog items
//   - FavoriteStore: favorite flags
//   - CollectionStore: collections and their membership
//   - TagStore: free-form item tags
//   - SearchHistoryStore: the bounded search log
//   - PopularStore: the popular items snapshot
//   - StatsStore: read-only aggregations
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files
// and is applied in its own transaction.
//
// # Data Location
//
// By default, the database is stored at ~/.boothcache/boothcache.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. Writes are serialised inside the
// store; reads run concurrently against the last committed state (WAL mode).
package sqlite
