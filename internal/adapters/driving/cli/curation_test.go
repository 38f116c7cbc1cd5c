package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

func TestFavoritesCmd(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, threeItems, "items", "cache")
	require.NoError(t, err)

	for _, args := range [][]string{
		{"favorites", "add", "3"},
		{"favorites", "add", "1"},
		{"favorites", "add", "3"},
	} {
		_, err := execute(t, "", args...)
		require.NoError(t, err)
	}

	out, err := execute(t, "", "favorites", "list", "--json")
	require.NoError(t, err)
	var favs []domain.Item
	require.NoError(t, json.Unmarshal([]byte(out), &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, int64(3), favs[0].ID)
	assert.Equal(t, int64(1), favs[1].ID)

	out, err = execute(t, "", "favorites", "remove", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from favorites")

	_, err = execute(t, "", "favorites", "add", "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectionsCmd(t *testing.T) {
	s := setupTestServices(t)
	ctx := context.Background()
	_, err := execute(t, threeItems, "items", "cache")
	require.NoError(t, err)

	out, err := execute(t, "", "collections", "create", "Wishlist", "--color", "#ff8800", "--json")
	require.NoError(t, err)
	var created domain.Collection
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	id := created.ID
	require.NotEmpty(t, id)

	for _, args := range [][]string{
		{"collections", "add", id, "1"},
		{"collections", "add", id, "3"},
		{"collections", "rename", id, "Wants"},
		{"collections", "color", id, "#00ff00"},
	} {
		_, err := execute(t, "", args...)
		require.NoError(t, err, args)
	}

	out, err = execute(t, "", "collections", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Wants")
	assert.Contains(t, out, "#00ff00")
	assert.Contains(t, out, "2 items")

	out, err = execute(t, "", "collections", "items", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Rusk")
	assert.Contains(t, out, "Hat")

	out, err = execute(t, "", "collections", "of", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Wants")

	out, err = execute(t, "", "collections", "of", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2:\n  (none)")

	_, err = execute(t, "", "collections", "remove", id, "1")
	require.NoError(t, err)
	_, err = execute(t, "", "collections", "delete", id)
	require.NoError(t, err)

	cs, err := s.Collections.GetCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, cs)

	_, err = execute(t, "", "collections", "create", "Bad", "--color", "orange")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTagsCmd(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, threeItems, "items", "cache")
	require.NoError(t, err)

	out, err := execute(t, "", "tags", "set", "1", "Rare", " blue ", "rare")
	require.NoError(t, err)
	assert.Contains(t, out, "Item 1 tags: blue, rare")

	out, err = execute(t, "", "tags", "get", "1", "2", "--json")
	require.NoError(t, err)
	var batch map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	assert.Equal(t, []string{"blue", "rare"}, batch["1"])
	assert.Empty(t, batch["2"])

	out, err = execute(t, "", "tags", "all")
	require.NoError(t, err)
	assert.Equal(t, "blue\nrare\n", out)

	out, err = execute(t, "", "tags", "set", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")

	out, err = execute(t, "", "tags", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "No tags.")
}
