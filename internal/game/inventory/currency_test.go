package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/inventory"
)

func TestPurseOf(t *testing.T) {
	assert.Equal(t, inventory.Purse{Crowns: 10, Marks: 4, Pieces: 2}, inventory.PurseOf(1042))
	assert.Panics(t, func() { inventory.PurseOf(-1) })
}

func TestPurse_String(t *testing.T) {
	for total, want := range map[int]string{
		0:   "0 Gold",
		7:   "7 Gold",
		10:  "1 Mark",
		135: "1 Crown, 3 Marks, 5 Gold",
		200: "2 Crowns",
		301: "3 Crowns, 1 Gold",
	} {
		assert.Equal(t, want, inventory.PurseOf(total).String(), "%d", total)
	}
}

func TestProperty_PurseOf_KeepsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(0, 1_000_000).Draw(rt, "total")
		p := inventory.PurseOf(total)
		assert.Equal(rt, total, p.Total())
		assert.Less(rt, p.Marks, 10)
		assert.Less(rt, p.Pieces, 10)
	})
}
