package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/boothcache/internal/core/domain"
)

func TestSettingsService_Defaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultPolicy(), service.Policy())
	assert.Equal(t, domain.DefaultPolicy(), service.GetDefaults())
	assert.Equal(t, []string{
		"history.max_entries",
		"popular.refresh_interval",
		"stats.top_limit",
		"stats.monthly_window",
	}, service.Keys())
}

func TestSettingsService_StoredValues(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"history.max_entries":      int64(500),
		"popular.refresh_interval": "6h",
		"stats.top_limit":          int64(25),
		"stats.monthly_window":     int64(24),
	})
	service := NewSettingsService(store)

	assert.Equal(t, domain.Policy{
		HistoryMaxEntries:      500,
		PopularRefreshInterval: 6 * time.Hour,
		StatsTopLimit:          25,
		StatsMonthlyWindow:     24,
	}, service.Policy())
}

func TestSettingsService_InvalidValuesFallBack(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"history.max_entries":      int64(0),
		"popular.refresh_interval": "soon",
		"stats.top_limit":          int64(1000),
		"stats.monthly_window":     "twelve",
	})
	service := NewSettingsService(store)

	assert.Equal(t, domain.DefaultPolicy(), service.Policy())
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("history.max_entries", " 50 "))
	require.NoError(t, service.Set("popular.refresh_interval", "90m"))
	require.NoError(t, service.Set("stats.top_limit", "100"))
	require.NoError(t, service.Set("stats.monthly_window", "1"))

	policy := service.Policy()
	assert.Equal(t, 50, policy.HistoryMaxEntries)
	assert.Equal(t, 90*time.Minute, policy.PopularRefreshInterval)
	assert.Equal(t, 100, policy.StatsTopLimit)
	assert.Equal(t, 1, policy.StatsMonthlyWindow)
	assert.Equal(t, "1h30m0s", store.GetString("popular.refresh_interval"))
}

func TestSettingsService_SetRejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
	}{
		{key: "history.max_entries", value: "0"},
		{key: "history.max_entries", value: "many"},
		{key: "stats.top_limit", value: "101"},
		{key: "stats.monthly_window", value: "121"},
		{key: "popular.refresh_interval", value: "-1h"},
		{key: "popular.refresh_interval", value: "daily"},
		{key: "unknown.key", value: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, domain.DefaultPolicy(), service.Policy())
}

func TestSettingsService_ReloadAppliesImmediately(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{"stats.top_limit": int64(5)})
	service := NewSettingsService(store)

	require.NoError(t, service.Set("stats.top_limit", "7"))
	assert.Equal(t, 7, service.Policy().StatsTopLimit)

	require.NoError(t, store.Load())
	assert.Equal(t, 5, service.Policy().StatsTopLimit)
}
