package catalog_test

import (
	"sync"
	"testing"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Normalise(t *testing.T) {
	e := catalog.Entry{ID: "  minecraft:oak_planks "}.Normalise()
	assert.Equal(t, "minecraft:oak_planks", e.ID)
	assert.Equal(t, "minecraft", e.Namespace)
	assert.Equal(t, "oak_planks", e.Name)

	e = catalog.Entry{ID: "create:shaft", Name: "Shaft", Namespace: "kinetics"}.Normalise()
	assert.Equal(t, "kinetics", e.Namespace)
	assert.Equal(t, "Shaft", e.Name)

	e = catalog.Entry{ID: "loose"}.Normalise()
	assert.Empty(t, e.Namespace)
	assert.Equal(t, "loose", e.Name)
}

func TestEntry_Facets(t *testing.T) {
	e := catalog.Entry{
		ID:            "minecraft:stick",
		Name:          "Stick",
		Namespace:     "minecraft",
		NamespaceName: "Minecraft",
		Tooltip:       []string{"line"},
		Tags:          []string{"c:rods"},
	}
	assert.Equal(t, []string{"Stick", "minecraft:stick", "minecraft", "Minecraft", "line", "c:rods"}, e.Facets())
}

func TestCatalog_AddPreservesOrder(t *testing.T) {
	c, err := catalog.New(
		catalog.Entry{ID: "a:one"},
		catalog.Entry{ID: "a:two"},
	)
	require.NoError(t, err)
	require.NoError(t, c.Add(catalog.Entry{ID: "b:three"}))

	snap := c.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "a:one", snap[0].ID)
	assert.Equal(t, "a:two", snap[1].ID)
	assert.Equal(t, "b:three", snap[2].ID)
	assert.Equal(t, 3, c.Len())

	e, ok := c.Get("a:two")
	assert.True(t, ok)
	assert.Equal(t, "two", e.Name)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCatalog_AddIsAllOrNothing(t *testing.T) {
	c, err := catalog.New(catalog.Entry{ID: "a:one"})
	require.NoError(t, err)

	err = c.Add(catalog.Entry{ID: "a:two"}, catalog.Entry{ID: "a:one"})
	assert.ErrorIs(t, err, catalog.ErrDuplicate)
	assert.Equal(t, 1, c.Len())

	err = c.Add(catalog.Entry{ID: "a:three"}, catalog.Entry{ID: "a:three"})
	assert.ErrorIs(t, err, catalog.ErrDuplicate)

	err = c.Add(catalog.Entry{ID: "a:four"}, catalog.Entry{ID: "  "})
	assert.ErrorIs(t, err, catalog.ErrEmptyID)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_SnapshotIsIsolated(t *testing.T) {
	c, err := catalog.New(catalog.Entry{ID: "a:one"})
	require.NoError(t, err)

	snap := c.Snapshot()
	require.NoError(t, c.Add(catalog.Entry{ID: "a:two"}))
	snap[0].Name = "changed"

	assert.Len(t, snap, 1)
	e, _ := c.Get("a:one")
	assert.Equal(t, "one", e.Name)
}

func TestCatalog_ConcurrentAddAndSnapshot(t *testing.T) {
	c, err := catalog.New()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Add(catalog.Entry{ID: string(rune('a'+i)) + ":" + string(rune('a'+j%26)) + string(rune('a'+j/26))})
				_ = c.Snapshot()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 800, c.Len())
}
