package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/logger"
)

// Ensure SearchHistoryService implements the interface.
var _ driving.SearchHistoryService = (*SearchHistoryService)(nil)

// SearchHistoryService records and reports past searches.
type SearchHistoryService struct {
	store   driven.SearchHistoryStore
	policy  driving.PolicyProvider
	metrics driven.Metrics
}

// NewSearchHistoryService creates a new search history service.
func NewSearchHistoryService(
	store driven.SearchHistoryStore,
	policy driving.PolicyProvider,
	metrics driven.Metrics,
) *SearchHistoryService {
	return &SearchHistoryService{
		store:   store,
		policy:  policy,
		metrics: orNop(metrics),
	}
}

// SaveSearchHistory appends a query and prunes the log to the configured
// maximum in the same transaction.
func (s *SearchHistoryService) SaveSearchHistory(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	keep := s.policy.Policy().HistoryMaxEntries
	if err := s.store.Append(ctx, query, keep); err != nil {
		s.metrics.RecordError("save_search_history")
		return err
	}

	logger.Debug("saved search %q (keeping %d)", query, keep)
	s.metrics.RecordSearchSaved()
	return nil
}

// GetSearchHistory returns up to limit entries, newest first.
// A limit of zero or less returns the whole retained log.
func (s *SearchHistoryService) GetSearchHistory(ctx context.Context, limit int) ([]domain.SearchHistoryEntry, error) {
	if limit <= 0 {
		limit = s.policy.Policy().HistoryMaxEntries
	}
	return s.store.Recent(ctx, limit)
}
