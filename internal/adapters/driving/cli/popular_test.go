package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

func TestPopularCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "popular", "check")
	require.NoError(t, err)
	assert.Equal(t, "update needed\n", out)

	out, err = execute(t, "", "popular", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshot.")

	out, err = execute(t, threeItems, "popular", "update")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot replaced with 3 items.")

	out, err = execute(t, "", "popular", "check", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"needs_update": false}`, out)

	out, err = execute(t, "", "popular", "list", "--json")
	require.NoError(t, err)
	var rows []domain.PopularItem
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "Rusk", rows[0].Item.Name)
	assert.Equal(t, 3, rows[2].Rank)

	out, err = execute(t, "", "popular", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "  1. Rusk (¥1500)")
	assert.Contains(t, out, "  2. Manuka (Free)")
}

func TestPopularCmd_InvalidItemKeepsSnapshot(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, threeItems, "popular", "update")
	require.NoError(t, err)

	_, err = execute(t, `[{"id": 5, "name": ""}]`, "popular", "update")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := execute(t, "", "popular", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Rusk")
}
