package domain

import "time"

// PopularItem is one ranked row of the popular items snapshot.
type PopularItem struct {
	// Rank is the 1-based position within the snapshot generation.
	Rank int `json:"rank"`

	// Item is the cached item the row refers to.
	Item Item `json:"item"`

	// FetchedAt is when the generation was written.
	FetchedAt time.Time `json:"fetched_at"`

	// ExpiresAt is when the generation becomes stale.
	ExpiresAt time.Time `json:"expires_at"`
}

// SnapshotState describes the freshness of the popular items snapshot.
type SnapshotState string

// Snapshot states. Transitions are driven only by elapsed time.
const (
	SnapshotAbsent SnapshotState = "absent"
	SnapshotFresh  SnapshotState = "fresh"
	SnapshotStale  SnapshotState = "stale"
)

// SnapshotInfo is the metadata of the last committed generation.
type SnapshotInfo struct {
	Generation int64     `json:"generation"`
	FetchedAt  time.Time `json:"fetched_at"`
	ItemCount  int       `json:"item_count"`
}

// StateAt returns the snapshot state at now for the given refresh interval.
// A nil info means no generation has ever been written.
func (s *SnapshotInfo) StateAt(now time.Time, interval time.Duration) SnapshotState {
	if s == nil {
		return SnapshotAbsent
	}
	if now.Sub(s.FetchedAt) >= interval {
		return SnapshotStale
	}
	return SnapshotFresh
}
