package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/logger"
	"github.com/custodia-labs/boothcache/internal/validation"
)

// Ensure PopularService implements the interface.
var _ driving.PopularService = (*PopularService)(nil)

// PopularService maintains the popular items snapshot.
// Freshness is decided only by elapsed time against the refresh interval.
type PopularService struct {
	store     driven.PopularStore
	policy    driving.PolicyProvider
	validator *validation.Validator
	metrics   driven.Metrics
	now       func() time.Time
}

// NewPopularService creates a new popular snapshot service.
func NewPopularService(
	store driven.PopularStore,
	policy driving.PolicyProvider,
	metrics driven.Metrics,
) *PopularService {
	return &PopularService{
		store:     store,
		policy:    policy,
		validator: validation.New(),
		metrics:   orNop(metrics),
		now:       time.Now,
	}
}

// CheckAvatarsNeedUpdate returns true when no snapshot exists or the last
// one is older than the refresh interval.
func (s *PopularService) CheckAvatarsNeedUpdate(ctx context.Context) (bool, error) {
	state, err := s.State(ctx)
	if err != nil {
		return false, err
	}
	return state != domain.SnapshotFresh, nil
}

// State returns the current snapshot state.
func (s *PopularService) State(ctx context.Context) (domain.SnapshotState, error) {
	info, err := s.store.Info(ctx)
	if err != nil {
		return "", err
	}
	return info.StateAt(s.now(), s.policy.Policy().PopularRefreshInterval), nil
}

// UpdatePopularAvatars replaces the snapshot with items in rank order.
// Readers see either the previous generation or the new one.
func (s *PopularService) UpdatePopularAvatars(ctx context.Context, items []domain.Item) error {
	logger.Section("Popular Snapshot")

	for i := range items {
		if err := s.validator.Validate(items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	fetchedAt := s.now().UTC()
	expiresAt := fetchedAt.Add(s.policy.Policy().PopularRefreshInterval)
	if err := s.store.Replace(ctx, items, fetchedAt, expiresAt); err != nil {
		s.metrics.RecordError("update_popular_avatars")
		return err
	}

	logger.Debug("snapshot replaced with %d items, expires %s", len(items), expiresAt.Format(time.RFC3339))
	s.metrics.RecordSnapshotRefresh(len(items))
	return nil
}

// GetPopularAvatars returns the current snapshot in rank order.
func (s *PopularService) GetPopularAvatars(ctx context.Context) ([]domain.PopularItem, error) {
	return s.store.List(ctx)
}
