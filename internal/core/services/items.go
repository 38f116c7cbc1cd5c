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

// Ensure ItemService implements the interface.
var _ driving.ItemService = (*ItemService)(nil)

// ItemService caches externally fetched catalog items.
type ItemService struct {
	store     driven.ItemStore
	validator *validation.Validator
	metrics   driven.Metrics
}

// NewItemService creates a new item service. A nil metrics disables recording.
func NewItemService(store driven.ItemStore, metrics driven.Metrics) *ItemService {
	return &ItemService{
		store:     store,
		validator: validation.New(),
		metrics:   orNop(metrics),
	}
}

// CacheItems validates every record before writing any of them, then
// upserts the batch in one transaction.
func (s *ItemService) CacheItems(ctx context.Context, items []domain.Item) (int, error) {
	defer logger.Since("cache items", time.Now())

	for i := range items {
		if err := s.validator.Validate(items[i]); err != nil {
			return 0, fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	n, err := s.store.CacheItems(ctx, items)
	if err != nil {
		s.metrics.RecordError("cache_items")
		return 0, err
	}

	logger.Debug("cached %d items", n)
	s.metrics.RecordItemsCached(n)
	return n, nil
}

// GetItem retrieves a cached item by ID.
func (s *ItemService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.store.Get(ctx, id)
}

// GetItems retrieves the cached items among ids, in the order given.
func (s *ItemService) GetItems(ctx context.Context, ids []int64) ([]domain.Item, error) {
	return s.store.GetMany(ctx, ids)
}

// orNop substitutes a no-op recorder for nil.
func orNop(m driven.Metrics) driven.Metrics {
	if m == nil {
		return driven.NopMetrics{}
	}
	return m
}
