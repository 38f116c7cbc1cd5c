// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ItemStore: Cached catalog items
//   - FavoriteStore, CollectionStore, TagStore: User curation state
//   - SearchHistoryStore: Search history log
//   - PopularStore: Popular items snapshot
//   - StatsStore: Read-only aggregation queries
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - Metrics: Operational counters. NopMetrics is used when disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
