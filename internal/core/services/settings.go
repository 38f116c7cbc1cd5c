package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/boothcache/internal/core/domain"
	"github.com/custodia-labs/boothcache/internal/core/ports/driven"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyHistoryMaxEntries      = "history.max_entries"
	KeyPopularRefreshInterval = "popular.refresh_interval"
	KeyStatsTopLimit          = "stats.top_limit"
	KeyStatsMonthlyWindow     = "stats.monthly_window"
)

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	KeyHistoryMaxEntries,
	KeyPopularRefreshInterval,
	KeyStatsTopLimit,
	KeyStatsMonthlyWindow,
}

// SettingsService resolves the retention and refresh policy from config.
// The policy is read from the store on every call, so a reloaded config
// takes effect immediately.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Policy returns the effective policy. Missing or invalid values fall back
// to the defaults.
func (s *SettingsService) Policy() domain.Policy {
	defaults := domain.DefaultPolicy()

	return domain.Policy{
		HistoryMaxEntries:      s.getInt(KeyHistoryMaxEntries, defaults.HistoryMaxEntries, 1, 0),
		PopularRefreshInterval: s.getDuration(KeyPopularRefreshInterval, defaults.PopularRefreshInterval),
		StatsTopLimit:          s.getInt(KeyStatsTopLimit, defaults.StatsTopLimit, 1, domain.MaxTopLimit),
		StatsMonthlyWindow:     s.getInt(KeyStatsMonthlyWindow, defaults.StatsMonthlyWindow, 1, domain.MaxMonthlyWindow),
	}
}

// GetDefaults returns the built-in policy.
func (s *SettingsService) GetDefaults() domain.Policy {
	return domain.DefaultPolicy()
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyHistoryMaxEntries:
		return s.setInt(key, value, 1, 0)
	case KeyStatsTopLimit:
		return s.setInt(key, value, 1, domain.MaxTopLimit)
	case KeyStatsMonthlyWindow:
		return s.setInt(key, value, 1, domain.MaxMonthlyWindow)
	case KeyPopularRefreshInterval:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration such as 24h", domain.ErrInvalidInput, key)
		}
		if err := s.configStore.Set(key, d.String()); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown setting %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
	}
}

func (s *SettingsService) setInt(key, value string, minimum, maximum int) error {
	n, err := strconv.Atoi(value)
	if err != nil || !inRange(n, minimum, maximum) {
		return fmt.Errorf("%w: %s must be an integer %s", domain.ErrInvalidInput, key, rangeText(minimum, maximum))
	}
	if err := s.configStore.Set(key, n); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// getInt reads an integer, falling back to def when absent or out of range.
// maximum <= 0 means unbounded.
func (s *SettingsService) getInt(key string, def, minimum, maximum int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	n := s.configStore.GetInt(key)
	if !inRange(n, minimum, maximum) {
		logger.Warn("ignoring %s = %d, must be %s", key, n, rangeText(minimum, maximum))
		return def
	}
	return n
}

// getDuration reads a duration string, falling back to def when absent or invalid.
func (s *SettingsService) getDuration(key string, def time.Duration) time.Duration {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn("ignoring %s = %q, must be a positive duration", key, raw)
		return def
	}
	return d
}

func inRange(n, minimum, maximum int) bool {
	return n >= minimum && (maximum <= 0 || n <= maximum)
}

func rangeText(minimum, maximum int) string {
	if maximum <= 0 {
		return fmt.Sprintf(">= %d", minimum)
	}
	return fmt.Sprintf("between %d and %d", minimum, maximum)
}
