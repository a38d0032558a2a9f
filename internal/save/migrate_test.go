package save_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/student"
	"github.com/cory-johannsen/academy/internal/save"
)

const v1Blob = `{
  "version": 1,
  "gameTime": {"day": "Wednesday", "hour": 14},
  "inventory": {"items": [
    {"id": "moonpetal", "name": "Moonpetal", "category": "ingredient", "quantity": 2},
    {"id": "moonpetal", "name": "Moonpetal", "category": "ingredient", "quantity": 1},
    {"id": "oak_wand", "name": "Oak Wand", "category": "wand", "quantity": 1, "power": "1d6+1"},
    {"id": "odd.id", "name": "Odd", "category": "misc", "quantity": 1},
    {"id": "broken_vial", "name": "Broken Vial", "category": "misc", "quantity": 0}
  ]},
  "journal": ["Arrived at the academy."],
  "spells": ["lumos"],
  "location": "library",
  "settings": {"music": true}
}`

const v2Blob = `{
  "version": 2,
  "gameTime": {"day": "Friday", "hour": 19, "minute": 45, "dayCount": 11},
  "inventory": {
    "items": {"study_notes": {"id": "study_notes", "name": "Study Notes", "category": "scroll", "quantity": 2, "effect": {"kind": "study", "amount": 0, "termProgress": 5}}},
    "termProgress": 40
  },
  "journal": [{"id": "e1", "at": {"day": "Friday", "hour": 19, "minute": 0, "dayCount": 11}, "text": "Exams soon."}],
  "spells": [],
  "location": "common_room"
}`

func loadBlob(t *testing.T, blob string) save.SaveGame {
	t.Helper()
	store := newMemStore()
	store.blobs[save.SaveKey] = []byte(blob)
	g, ok, err := newManager(store).LoadGame(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	return g
}

func TestLoad_Version1(t *testing.T) {
	g := loadBlob(t, v1Blob)

	assert.Equal(t, save.SaveVersion, g.Version)
	assert.Equal(t, gametime.At(gametime.Wednesday, 14, 0), g.GameTime)
	assert.Equal(t, 3, g.Inventory.Quantity("moonpetal"), "duplicate stacks merge")
	assert.Equal(t, 1, g.Inventory.Quantity("oak_wand"))
	assert.Equal(t, 1, g.Inventory.Quantity("odd.id"))
	_, held := g.Inventory.Item("broken_vial")
	assert.False(t, held, "empty stacks are dropped")
	assert.Equal(t, 0, g.Inventory.TermProgress())
	assert.Equal(t, 0, g.Inventory.Gold())
	assert.Equal(t, student.DefaultPlayer(), g.Player)
	assert.True(t, g.Spells.Knows("lumos"))
	assert.Equal(t, "library", g.Location)

	entries := g.Journal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "legacy-1", entries[0].ID)
	assert.Equal(t, "Arrived at the academy.", entries[0].Text)
	assert.Equal(t, g.GameTime, entries[0].At)
}

func TestLoad_Version2(t *testing.T) {
	g := loadBlob(t, v2Blob)

	assert.Equal(t, gametime.Friday, g.GameTime.Day)
	assert.Equal(t, 11, g.GameTime.DayCount)
	assert.Equal(t, 40, g.Inventory.TermProgress(), "existing fields survive")
	assert.Equal(t, 2, g.Inventory.Quantity("study_notes"))
	assert.Equal(t, 0, g.Inventory.Gold())
	assert.Equal(t, student.DefaultPlayer(), g.Player)
	assert.Equal(t, 1, g.Journal.Len())
}

func TestMigrate_KeepsUnknownFields(t *testing.T) {
	out, err := save.Migrate([]byte(v1Blob))
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(out, "settings.music").Bool())
	assert.Equal(t, int64(save.SaveVersion), gjson.GetBytes(out, "version").Int())
	assert.True(t, gjson.GetBytes(out, `inventory.items.odd\.id`).Exists())
}

func TestDecode_UnmodelledKeysSurviveEncode(t *testing.T) {
	g, err := save.Decode([]byte(v1Blob))
	require.NoError(t, err)
	g.Location = "caves"

	out, err := save.Encode(g)
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(out, "settings.music").Bool())
	assert.Equal(t, "caves", gjson.GetBytes(out, "location").String())

	fresh, err := save.Encode(save.NewGame("", g.Inventory))
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(fresh, "settings").Exists())
}

func TestMigrate_CurrentVersionUnchanged(t *testing.T) {
	in := []byte(`{"version":3,"location":"x"}`)
	out, err := save.Migrate(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMigrate_Errors(t *testing.T) {
	_, err := save.Migrate([]byte(`{"version":4}`))
	assert.ErrorIs(t, err, save.ErrUnsupportedVersion)

	_, err = save.Migrate([]byte(`{"version":2.5}`))
	assert.ErrorIs(t, err, save.ErrCorrupt)

	_, err = save.Migrate([]byte(`{"version":1,"gameTime":{"day":"Monday","hour":3},"journal":[42]}`))
	assert.ErrorIs(t, err, save.ErrCorrupt)
}

func TestVersion(t *testing.T) {
	v, err := save.Version([]byte(`{"version":2}`))
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = save.Version([]byte(`[]`))
	assert.ErrorIs(t, err, save.ErrCorrupt)
}
