package cave

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/academy/internal/game/dice"
)

// GoldRange is the inclusive span of gold a monster drops.
type GoldRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LootEntry is one possible item drop with its chance.
type LootEntry struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// LootDrop is a rolled item award.
type LootDrop struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// validateLoot checks the gold range and loot entries.
//
// Postcondition: Returns nil iff every gold and item constraint holds; an
// empty table is valid.
func validateLoot(gold GoldRange, loot []LootEntry) error {
	if gold.Min < 0 {
		return fmt.Errorf("gold min must be >= 0, got %d", gold.Min)
	}
	if gold.Min > gold.Max {
		return fmt.Errorf("gold min (%d) must be <= max (%d)", gold.Min, gold.Max)
	}
	for i, e := range loot {
		if e.ItemID == "" {
			return fmt.Errorf("loot[%d] must have a non-empty item id", i)
		}
		if e.Chance <= 0 || e.Chance > 1.0 {
			return fmt.Errorf("loot[%d] chance must be in (0, 1.0], got %f", i, e.Chance)
		}
		if e.MinQty < 1 {
			return fmt.Errorf("loot[%d] min_qty must be >= 1, got %d", i, e.MinQty)
		}
		if e.MinQty > e.MaxQty {
			return fmt.Errorf("loot[%d] min_qty (%d) must be <= max_qty (%d)", i, e.MinQty, e.MaxQty)
		}
	}
	return nil
}

// RollLoot walks the monster's loot entries in order and awards the first
// one whose chance, scaled by the moon, succeeds. Scaled chances are capped
// at 1.
//
// Postcondition: When ok, Quantity is in [MinQty, MaxQty] of the awarded entry.
func RollLoot(m CaveMonster, src dice.Source) (drop LootDrop, ok bool) {
	for _, e := range m.Loot {
		if !dice.Chance(src, math.Min(1, e.Chance*m.Moon.LootMult)) {
			continue
		}
		return LootDrop{ItemID: e.ItemID, Quantity: dice.Between(src, e.MinQty, e.MaxQty)}, true
	}
	return LootDrop{}, false
}

// RollGold draws from the monster's gold range and applies the moon's gold
// multiplier, rounding down.
//
// Postcondition: Result is in [floor(Min*mult), floor(Max*mult)].
func RollGold(m CaveMonster, src dice.Source) int {
	if m.Gold.Max == 0 {
		return 0
	}
	base := dice.Between(src, m.Gold.Min, m.Gold.Max)
	return int(math.Floor(float64(base) * m.Moon.GoldMult))
}
