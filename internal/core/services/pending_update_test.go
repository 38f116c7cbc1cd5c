package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

func TestPendingUpdate_TakeClears(t *testing.T) {
	var cell PendingUpdate
	body := "bug fixes"

	_, ok := cell.Take()
	assert.False(t, ok)

	cell.Set(domain.UpdateInfo{Version: "1.2.0", Body: &body})
	peeked, ok := cell.Peek()
	require.True(t, ok)
	assert.Equal(t, "1.2.0", peeked.Version)

	info, err := cell.TakeOrErr()
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", info.Version)
	require.NotNil(t, info.Body)
	assert.Equal(t, "bug fixes", *info.Body)

	_, err = cell.TakeOrErr()
	assert.ErrorIs(t, err, domain.ErrNoPendingUpdate)
	assert.EqualError(t, err, "There is no pending update")
}

func TestPendingUpdate_SetReplaces(t *testing.T) {
	var cell PendingUpdate
	cell.Set(domain.UpdateInfo{Version: "1.0.0"})
	cell.Set(domain.UpdateInfo{Version: "2.0.0"})

	info, ok := cell.Take()
	require.True(t, ok)
	assert.Equal(t, "2.0.0", info.Version)
}

func TestPendingUpdate_SingleTaker(t *testing.T) {
	var cell PendingUpdate
	cell.Set(domain.UpdateInfo{Version: "3.0.0"})

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := cell.Take(); ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, taken)
}
