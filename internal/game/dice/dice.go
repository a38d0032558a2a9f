// Package dice provides the randomness abstraction and dice expressions used
// by cave combat and loot rolls.
package dice

import (
	"fmt"
	"strings"
)

// RollResult holds the full audit trail for a single expression roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "2d6+3 → [4 5] +3 = 12".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		parts[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%s → [%s] %+d = %d", r.Expression, strings.Join(parts, " "), r.Modifier, r.Total())
}

// Source is the randomness provider for every roll in the game.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// expressionRoller is a Source that evaluates whole expressions itself.
type expressionRoller interface {
	Roll(expr Expression) RollResult
}

// Roll evaluates expr with src. When src is a Roller the roll is logged.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(Dice) == expr.Count and expr.Min() <= Total() <= expr.Max().
func Roll(expr Expression, src Source) RollResult {
	if r, ok := src.(expressionRoller); ok {
		return r.Roll(expr)
	}
	return rollDice(expr, src)
}

func rollDice(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
}

// Between returns a uniformly distributed int in [lo, hi].
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("dice: Between called with lo %d > hi %d", lo, hi))
	}
	return lo + src.Intn(hi-lo+1)
}

// chanceResolution is the granularity of Chance rolls.
const chanceResolution = 1_000_000

// Chance reports whether an event with probability p happens.
// p <= 0 never happens and p >= 1 always happens.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Intn(chanceResolution) < int(p*chanceResolution)
}
