package cave

import (
	"github.com/cory-johannsen/academy/internal/game/dice"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/library"
	"github.com/cory-johannsen/academy/internal/game/student"
)

// Attack is what the student strikes with: a spell or a wand.
type Attack struct {
	Name     string
	Power    dice.Expression
	Tier     int
	ManaCost int
}

// SpellAttack builds an attack from an offensive spell.
//
// Precondition: s.Offensive().
func SpellAttack(s library.Spell) Attack {
	if !s.Offensive() {
		panic("cave: SpellAttack called with non-offensive spell " + s.ID)
	}
	return Attack{Name: s.Name, Power: s.Power, Tier: s.Tier, ManaCost: s.ManaCost}
}

// WandAttack builds a free attack from a wand's power, reporting false for
// items without one.
func WandAttack(it inventory.Item) (Attack, bool) {
	expr, ok := inventory.PowerExpression(it)
	if !ok {
		return Attack{}, false
	}
	return Attack{Name: it.Name, Power: expr}, true
}

// PlayerDamageBounds returns the inclusive range CalculatePlayerDamage can
// produce for p and a.
func PlayerDamageBounds(p student.Player, a Attack) (lo, hi int) {
	bonus := (p.Level-1)/2 + a.Tier
	return max(1, a.Power.Min()+bonus), max(1, a.Power.Max()+bonus)
}

// CalculatePlayerDamage rolls a's power and adds the student's level bonus
// and the spell tier.
//
// Precondition: p.Level >= 1; src must be non-nil.
// Postcondition: Result is within PlayerDamageBounds(p, a) and >= 1.
func CalculatePlayerDamage(p student.Player, a Attack, src dice.Source) int {
	roll := dice.Roll(a.Power, src).Total()
	return max(1, roll+(p.Level-1)/2+a.Tier)
}

// MonsterDamageBounds returns the inclusive range CalculateMonsterDamage can
// produce for m.
func MonsterDamageBounds(m CaveMonster) (lo, hi int) {
	return max(0, m.Attack.Min()+m.AttackBonus), max(0, m.Attack.Max()+m.AttackBonus)
}

// CalculateMonsterDamage rolls the monster's attack plus its bonus.
//
// Postcondition: Result is within MonsterDamageBounds(m) and >= 0.
func CalculateMonsterDamage(m CaveMonster, src dice.Source) int {
	return max(0, dice.Roll(m.Attack, src).Total()+m.AttackBonus)
}
