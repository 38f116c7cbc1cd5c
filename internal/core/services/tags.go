package services

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/logger"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService manages free-form item tags.
type TagService struct {
	store   driven.TagStore
	metrics driven.Metrics
}

// NewTagService creates a new tag service.
func NewTagService(store driven.TagStore, metrics driven.Metrics) *TagService {
	return &TagService{
		store:   store,
		metrics: orNop(metrics),
	}
}

// SetItemTags replaces the tag set of an item with the normalised tags.
func (s *TagService) SetItemTags(ctx context.Context, itemID int64, tags []string) error {
	normalized := NormalizeTags(tags)
	logger.Debug("item %d: setting %d tags (%d given)", itemID, len(normalized), len(tags))

	if err := s.store.SetItemTags(ctx, itemID, normalized); err != nil {
		s.metrics.RecordError("set_item_tags")
		return err
	}
	s.metrics.RecordCurationChange("tags_set")
	return nil
}

// GetItemTags returns the sorted tags of an item.
func (s *TagService) GetItemTags(ctx context.Context, itemID int64) ([]string, error) {
	return s.store.ItemTags(ctx, itemID)
}

// GetAllUserTags returns every tag in use, sorted.
func (s *TagService) GetAllUserTags(ctx context.Context) ([]string, error) {
	return s.store.All(ctx)
}

// GetAllItemTagsBatch returns the tags of many items at once.
func (s *TagService) GetAllItemTagsBatch(ctx context.Context, itemIDs []int64) (map[int64][]string, error) {
	return s.store.ForItems(ctx, itemIDs)
}

// NormalizeTag folds a label to its canonical form: NFKC, lower case,
// surrounding whitespace removed and inner runs of whitespace collapsed.
// Full-width and half-width forms of the same label compare equal.
func NormalizeTag(tag string) string {
	tag = norm.NFKC.String(tag)
	tag = cases.Lower(language.Und).String(tag)
	return strings.Join(strings.Fields(tag), " ")
}

// NormalizeTags normalises every label, drops blanks and duplicates,
// and returns the result sorted.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		n := NormalizeTag(tag)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
