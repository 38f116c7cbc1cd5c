package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/validation"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// Validation rules shared by create and edit.
const (
	collectionNameRule  = "required,max=100"
	collectionColorRule = "required,hexcolor"
)

// CollectionService manages collections and their membership.
type CollectionService struct {
	store     driven.CollectionStore
	validator *validation.Validator
	metrics   driven.Metrics

	now   func() time.Time
	newID func() string
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store driven.CollectionStore, metrics driven.Metrics) *CollectionService {
	return &CollectionService{
		store:     store,
		validator: validation.New(),
		metrics:   orNop(metrics),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// CreateCollection creates an empty collection with a fresh ID.
func (s *CollectionService) CreateCollection(ctx context.Context, name, color string) (*domain.Collection, error) {
	params := domain.CollectionParams{
		Name:  strings.TrimSpace(name),
		Color: strings.TrimSpace(color),
	}
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &domain.Collection{
		ID:        s.newID(),
		Name:      params.Name,
		Color:     params.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		s.metrics.RecordError("create_collection")
		return nil, err
	}

	s.metrics.RecordCurationChange("collection_create")
	return c, nil
}

// RenameCollection changes the name of a collection.
func (s *CollectionService) RenameCollection(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if err := s.validator.ValidateField("name", name, collectionNameRule); err != nil {
		return err
	}
	return s.record("rename_collection", "collection_rename", s.store.Rename(ctx, id, name))
}

// UpdateCollectionColor changes the colour of a collection.
func (s *CollectionService) UpdateCollectionColor(ctx context.Context, id, color string) error {
	color = strings.TrimSpace(color)
	if err := s.validator.ValidateField("color", color, collectionColorRule); err != nil {
		return err
	}
	return s.record("update_collection_color", "collection_color", s.store.UpdateColor(ctx, id, color))
}

// DeleteCollection removes a collection. Its items stay cached.
func (s *CollectionService) DeleteCollection(ctx context.Context, id string) error {
	return s.record("delete_collection", "collection_delete", s.store.Delete(ctx, id))
}

// AddToCollection appends an item to a collection.
func (s *CollectionService) AddToCollection(ctx context.Context, collectionID string, itemID int64) error {
	return s.record("add_to_collection", "collection_add_item", s.store.AddItem(ctx, collectionID, itemID))
}

// RemoveFromCollection removes an item from a collection.
func (s *CollectionService) RemoveFromCollection(ctx context.Context, collectionID string, itemID int64) error {
	return s.record("remove_from_collection", "collection_remove_item", s.store.RemoveItem(ctx, collectionID, itemID))
}

// GetCollections returns every collection in creation order.
func (s *CollectionService) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.store.List(ctx)
}

// GetCollectionItems returns the items of a collection in insertion order.
func (s *CollectionService) GetCollectionItems(ctx context.Context, collectionID string) ([]domain.Item, error) {
	return s.store.Items(ctx, collectionID)
}

// GetItemCollections returns the collections containing an item.
func (s *CollectionService) GetItemCollections(ctx context.Context, itemID int64) ([]domain.Collection, error) {
	return s.store.ForItem(ctx, itemID)
}

// GetAllItemCollectionsBatch returns the collections of many items at once.
func (s *CollectionService) GetAllItemCollectionsBatch(
	ctx context.Context,
	itemIDs []int64,
) (map[int64][]domain.Collection, error) {
	return s.store.ForItems(ctx, itemIDs)
}

// record counts the outcome of a mutation and passes err through.
func (s *CollectionService) record(op, change string, err error) error {
	if err != nil {
		s.metrics.RecordError(op)
		return err
	}
	s.metrics.RecordCurationChange(change)
	return nil
}
