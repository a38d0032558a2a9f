package cave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/cave"
	"github.com/cory-johannsen/academy/internal/game/dice"
	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/library"
	"github.com/cory-johannsen/academy/internal/game/student"
)

func wand(power string) cave.Attack {
	it, err := inventory.CreateItem(inventory.ItemSpec{
		ID: "wand", Name: "Wand", Category: inventory.CategoryWand, Quantity: 1, Power: power,
	})
	if err != nil {
		panic(err)
	}
	a, ok := cave.WandAttack(it)
	if !ok {
		panic("wand without power")
	}
	return a
}

func TestWandAttack_RequiresPower(t *testing.T) {
	it, err := inventory.CreateItem(inventory.ItemSpec{ID: "robe", Name: "Robe", Category: inventory.CategoryRobe, Quantity: 1})
	assert.NoError(t, err)
	_, ok := cave.WandAttack(it)
	assert.False(t, ok)
}

func TestSpellAttack(t *testing.T) {
	s := library.Spell{ID: "bolt", Name: "Bolt", School: library.SchoolElemental, Tier: 2, ManaCost: 4, Power: dice.MustParse("2d6")}
	a := cave.SpellAttack(s)
	assert.Equal(t, 2, a.Tier)
	assert.Equal(t, 4, a.ManaCost)

	assert.Panics(t, func() {
		cave.SpellAttack(library.Spell{ID: "lumos", Name: "Lumos", School: library.SchoolCharms, Tier: 1})
	})
}

func TestCalculatePlayerDamage_Formula(t *testing.T) {
	p := student.DefaultPlayer()
	p.Level = 5
	a := wand("1d6+1")
	a.Tier = 1

	// roll 1 + 1 modifier + (5-1)/2 level bonus + 1 tier
	assert.Equal(t, 5, cave.CalculatePlayerDamage(p, a, lowest))
	assert.Equal(t, 10, cave.CalculatePlayerDamage(p, a, highest))
}

func TestCalculatePlayerDamage_AtLeastOne(t *testing.T) {
	p := student.DefaultPlayer()
	a := wand("1d4-6")
	assert.Equal(t, 1, cave.CalculatePlayerDamage(p, a, lowest))
}

func TestCalculateMonsterDamage_NeverNegative(t *testing.T) {
	m := cave.CaveMonster{Attack: dice.MustParse("1d4-3")}
	assert.Equal(t, 0, cave.CalculateMonsterDamage(m, lowest))
	m.AttackBonus = 2
	assert.Equal(t, 3, cave.CalculateMonsterDamage(m, highest))
}

func TestDamage_WithinBounds(t *testing.T) {
	b := loadBestiary(t)
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		p := student.DefaultPlayer()
		p.Level = rapid.IntRange(1, 20).Draw(rt, "player_level")
		a := wand(rapid.SampledFrom([]string{"1d6+1", "2d8", "d4-2", "3d6+4"}).Draw(rt, "power"))
		a.Tier = rapid.IntRange(0, library.MaxTier).Draw(rt, "tier")

		lo, hi := cave.PlayerDamageBounds(p, a)
		got := cave.CalculatePlayerDamage(p, a, src)
		assert.GreaterOrEqual(rt, got, lo)
		assert.LessOrEqual(rt, got, hi)
		assert.GreaterOrEqual(rt, got, 1)

		phase := gametime.MoonPhase(rapid.IntRange(0, gametime.MoonPhaseCount-1).Draw(rt, "phase"))
		m := b.Spawn(rapid.IntRange(1, 20).Draw(rt, "cave_level"), phase, src)
		mlo, mhi := cave.MonsterDamageBounds(m)
		md := cave.CalculateMonsterDamage(m, src)
		assert.GreaterOrEqual(rt, md, mlo)
		assert.LessOrEqual(rt, md, mhi)
	})
}

func TestDamageRolls_LoggedByRoller(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewSeededSource(11), zap.New(core))

	p := student.DefaultPlayer()
	for range 10 {
		cave.CalculatePlayerDamage(p, wand("1d6"), r)
	}
	cave.CalculateMonsterDamage(cave.CaveMonster{Attack: dice.MustParse("1d4")}, r)

	assert.Equal(t, 11, logs.FilterMessage("dice roll").Len())
}
