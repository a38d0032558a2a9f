package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/academy/internal/game/inventory"
)

func TestContent_CatalogLoads(t *testing.T) {
	c, err := inventory.LoadCatalog("../../../content/items.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, c.IDs())

	for _, id := range c.IDs() {
		it, err := c.New(id, 1)
		require.NoError(t, err, "catalog item %q", id)
		if it.Category == inventory.CategoryWand {
			_, ok := inventory.PowerExpression(it)
			assert.True(t, ok, "wand %q must declare power", id)
		}
	}

	starter, err := c.Starter()
	require.NoError(t, err)
	assert.Equal(t, 1, starter.Quantity("oak_wand"))
}

func TestCatalog_RejectsDuplicates(t *testing.T) {
	spec := inventory.ItemSpec{ID: "x", Name: "X", Category: inventory.CategoryMisc}
	_, err := inventory.NewCatalog([]inventory.ItemSpec{spec, spec})
	assert.Error(t, err)
}

func TestCatalog_New_UnknownItem(t *testing.T) {
	c, err := inventory.NewCatalog(nil)
	require.NoError(t, err)
	_, err = c.New("ghost", 1)
	assert.Error(t, err)
}

func TestLoadCatalog_RejectsUnknownStarterItem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - {id: moonstone, name: Moonstone, category: gem}
starter_kit:
  sunstone: 1
`), 0o600))
	_, err := inventory.LoadCatalog(path)
	assert.Error(t, err)
}

func TestCatalog_StarterKit(t *testing.T) {
	c, err := inventory.NewCatalog([]inventory.ItemSpec{
		{ID: "moonstone", Name: "Moonstone", Category: inventory.CategoryGem},
		{ID: "honey_cake", Name: "Honey Cake", Category: inventory.CategoryFood},
	})
	require.NoError(t, err)
	s, err := c.StarterKit(map[string]int{"moonstone": 2, "honey_cake": 1})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Quantity("moonstone"))
	assert.True(t, inventory.IsConsumable(mustItem(t, s, "honey_cake")))
}

func mustItem(t *testing.T, s inventory.State, id string) inventory.Item {
	t.Helper()
	it, ok := s.Item(id)
	require.True(t, ok, "missing %q", id)
	return it
}
