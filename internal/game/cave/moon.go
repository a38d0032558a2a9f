package cave

import "github.com/cory-johannsen/academy/internal/game/gametime"

// MoonstruckVariant names the empowered monster variant that appears under
// bright moons.
const MoonstruckVariant = "Moonstruck"

// MoonMod scales a spawn by the phase of the moon.
type MoonMod struct {
	HPMult        float64
	AttackBonus   int
	GoldMult      float64
	LootMult      float64
	VariantChance float64
}

var neutralMoon = MoonMod{HPMult: 1, GoldMult: 1, LootMult: 1}

// MoonModifier returns the spawn modifiers for phase. Phases without a
// listed effect are neutral.
func MoonModifier(phase gametime.MoonPhase) MoonMod {
	switch phase {
	case gametime.MoonFull:
		return MoonMod{HPMult: 1.5, AttackBonus: 2, GoldMult: 2, LootMult: 1.5, VariantChance: 0.35}
	case gametime.MoonWaxingGibbous, gametime.MoonWaningGibbous:
		return MoonMod{HPMult: 1.25, AttackBonus: 1, GoldMult: 1, LootMult: 1, VariantChance: 0.10}
	case gametime.MoonNew:
		return MoonMod{HPMult: 0.9, GoldMult: 0.5, LootMult: 1}
	default:
		return neutralMoon
	}
}
