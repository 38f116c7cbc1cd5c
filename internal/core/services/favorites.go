package services

import (
	"context"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
)

// Ensure FavoriteService implements the interface.
var _ driving.FavoriteService = (*FavoriteService)(nil)

// FavoriteService manages favorited items.
type FavoriteService struct {
	store   driven.FavoriteStore
	metrics driven.Metrics
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(store driven.FavoriteStore, metrics driven.Metrics) *FavoriteService {
	return &FavoriteService{
		store:   store,
		metrics: orNop(metrics),
	}
}

// AddFavorite marks an item as favorite.
func (s *FavoriteService) AddFavorite(ctx context.Context, itemID int64) error {
	if err := s.store.Add(ctx, itemID); err != nil {
		s.metrics.RecordError("add_favorite")
		return err
	}
	s.metrics.RecordCurationChange("favorite_add")
	return nil
}

// RemoveFavorite clears the favorite flag.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, itemID int64) error {
	if err := s.store.Remove(ctx, itemID); err != nil {
		s.metrics.RecordError("remove_favorite")
		return err
	}
	s.metrics.RecordCurationChange("favorite_remove")
	return nil
}

// GetFavorites returns favorited items, oldest first.
func (s *FavoriteService) GetFavorites(ctx context.Context) ([]domain.Item, error) {
	return s.store.List(ctx)
}

// IsFavorite reports whether an item is a favorite.
func (s *FavoriteService) IsFavorite(ctx context.Context, itemID int64) (bool, error) {
	return s.store.Contains(ctx, itemID)
}
