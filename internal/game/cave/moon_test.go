package cave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/cave"
	"github.com/cory-johannsen/academy/internal/game/gametime"
)

func TestMoonModifier_FullMoonIsStrongest(t *testing.T) {
	full := cave.MoonModifier(gametime.MoonFull)
	for p := range gametime.MoonPhase(gametime.MoonPhaseCount) {
		m := cave.MoonModifier(p)
		assert.LessOrEqual(t, m.HPMult, full.HPMult, p.String())
		assert.LessOrEqual(t, m.VariantChance, full.VariantChance, p.String())
	}
	assert.Equal(t, cave.MoonModifier(gametime.MoonWaxingGibbous), cave.MoonModifier(gametime.MoonWaningGibbous))
	assert.Zero(t, cave.MoonModifier(gametime.MoonNew).VariantChance)
}

func TestMoonModifier_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := gametime.MoonPhase(rapid.IntRange(0, gametime.MoonPhaseCount-1).Draw(rt, "phase"))
		m := cave.MoonModifier(p)
		assert.Greater(rt, m.HPMult, 0.0)
		assert.Greater(rt, m.GoldMult, 0.0)
		assert.GreaterOrEqual(rt, m.LootMult, 1.0)
		assert.GreaterOrEqual(rt, m.VariantChance, 0.0)
		assert.LessOrEqual(rt, m.VariantChance, 1.0)
	})
}
