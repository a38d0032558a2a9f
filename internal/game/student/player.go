// Package student models the player character's vital statistics.
package student

import (
	"errors"
	"fmt"
)

// Player is the student's persistent combat profile.
type Player struct {
	Level            int `json:"level"`
	HP               int `json:"hp"`
	MaxHP            int `json:"maxHp"`
	Mana             int `json:"mana"`
	MaxMana          int `json:"maxMana"`
	DeepestCaveLevel int `json:"deepestCaveLevel"`
}

const (
	baseMaxHP      = 30
	baseMaxMana    = 10
	hpPerLevel     = 5
	manaPerLevel   = 2
	levelsPerTrial = 1
)

// DefaultPlayer returns a first-year student at full health.
func DefaultPlayer() Player {
	return Player{Level: 1, HP: baseMaxHP, MaxHP: baseMaxHP, Mana: baseMaxMana, MaxMana: baseMaxMana}
}

// Validate checks the profile's invariants.
func (p Player) Validate() error {
	var errs []error
	if p.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1, got %d", p.Level))
	}
	if p.MaxHP < 1 || p.HP < 0 || p.HP > p.MaxHP {
		errs = append(errs, fmt.Errorf("hp %d/%d out of range", p.HP, p.MaxHP))
	}
	if p.MaxMana < 0 || p.Mana < 0 || p.Mana > p.MaxMana {
		errs = append(errs, fmt.Errorf("mana %d/%d out of range", p.Mana, p.MaxMana))
	}
	if p.DeepestCaveLevel < 0 {
		errs = append(errs, errors.New("deepest cave level must be >= 0"))
	}
	return errors.Join(errs...)
}

// Alive reports whether the student can still act.
func (p Player) Alive() bool { return p.HP > 0 }

// Heal restores up to amount hit points.
//
// Precondition: amount >= 0.
func (p Player) Heal(amount int) Player {
	mustNonNegative("Heal", amount)
	p.HP = min(p.MaxHP, p.HP+amount)
	return p
}

// RestoreMana restores up to amount mana.
//
// Precondition: amount >= 0.
func (p Player) RestoreMana(amount int) Player {
	mustNonNegative("RestoreMana", amount)
	p.Mana = min(p.MaxMana, p.Mana+amount)
	return p
}

// SpendMana deducts cost, reporting false when the pool is too small.
//
// Precondition: cost >= 0.
func (p Player) SpendMana(cost int) (Player, bool) {
	mustNonNegative("SpendMana", cost)
	if p.Mana < cost {
		return p, false
	}
	p.Mana -= cost
	return p, true
}

// TakeDamage removes up to amount hit points, stopping at zero.
//
// Precondition: amount >= 0.
func (p Player) TakeDamage(amount int) Player {
	mustNonNegative("TakeDamage", amount)
	p.HP = max(0, p.HP-amount)
	return p
}

// Rest restores hit points and mana to full.
func (p Player) Rest() Player {
	p.HP, p.Mana = p.MaxHP, p.MaxMana
	return p
}

// RecordDepth notes a cleared cave level. Clearing a level deeper than any
// before grants a student level.
func (p Player) RecordDepth(caveLevel int) Player {
	if caveLevel <= p.DeepestCaveLevel {
		return p
	}
	gained := (caveLevel - p.DeepestCaveLevel) * levelsPerTrial
	p.DeepestCaveLevel = caveLevel
	p.Level += gained
	p.MaxHP += gained * hpPerLevel
	p.MaxMana += gained * manaPerLevel
	p.HP += gained * hpPerLevel
	p.Mana += gained * manaPerLevel
	return p
}

func mustNonNegative(op string, amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("student: %s called with negative amount %d", op, amount))
	}
}
