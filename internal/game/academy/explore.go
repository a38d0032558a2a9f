package academy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/academy/internal/game/cave"
	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/student"
)

// InfirmaryLocation is where a defeated student wakes up.
const InfirmaryLocation = "infirmary"

// ExploreResult reports one trip into the caves.
type ExploreResult struct {
	Monster cave.CaveMonster
	Outcome cave.Outcome
	Combat  cave.CombatRollResult
	Rounds  int
	Minutes int
	// Loot is the stack added to the inventory, nil when nothing dropped.
	Loot *inventory.Item
}

// bestAttack picks the attack with the highest damage ceiling among the
// student's wands and the known offensive spells they can afford. A wand
// wins ties because it costs no mana.
func (g *Game) bestAttack(p student.Player) (cave.Attack, bool) {
	var (
		best  cave.Attack
		top   int
		found bool
	)
	consider := func(a cave.Attack) {
		if _, hi := cave.PlayerDamageBounds(p, a); !found || hi > top {
			best, top, found = a, hi, true
		}
	}
	for _, it := range g.state.Inventory.Items() {
		if it.Category != inventory.CategoryWand {
			continue
		}
		if a, ok := cave.WandAttack(it); ok {
			consider(a)
		}
	}
	for _, id := range g.state.Spells.IDs() {
		s, ok := g.content.Library.Spell(id)
		if !ok || !s.Offensive() || s.ManaCost > p.Mana {
			continue
		}
		consider(cave.SpellAttack(s))
	}
	return best, found
}

// shouldFlee reports whether the student retreats before their next blow.
func shouldFlee(p student.Player, rounds int) bool {
	return p.HP*4 <= p.MaxHP || rounds >= MaxRounds
}

// Explore descends to caveLevel and fights whatever lives there until one
// side falls or the student flees. Loot and gold are added to the inventory,
// the clock advances by the trip and the rounds fought, and the result is
// saved.
//
// Postcondition: on success the encounter is resolved.
func (g *Game) Explore(ctx context.Context, caveLevel int) (ExploreResult, error) {
	if caveLevel < 1 {
		return ExploreResult{}, fmt.Errorf("explore level %d: %w", caveLevel, ErrInvalidInput)
	}
	if !g.state.Player.Alive() {
		return ExploreResult{}, ErrTooWeak
	}
	if _, ok := g.bestAttack(g.state.Player); !ok {
		return ExploreResult{}, ErrNoAttack
	}

	phase := gametime.MoonPhaseInfo(g.state.GameTime).Phase
	enc := cave.NewEncounter(g.content.Bestiary, g.state.Player, g.src, g.logger)
	monster, err := enc.Spawn(caveLevel, phase)
	if err != nil {
		return ExploreResult{}, err
	}
	if err := enc.Engage(); err != nil {
		return ExploreResult{}, err
	}
	if err := g.fight(enc); err != nil {
		return ExploreResult{}, err
	}
	combat, err := enc.Result()
	if err != nil {
		return ExploreResult{}, err
	}

	res := ExploreResult{
		Monster: monster,
		Outcome: enc.Outcome(),
		Combat:  combat,
		Rounds:  enc.Rounds(),
		Minutes: ExploreMinutes + enc.Rounds()*MinutesPerRound,
	}
	next := g.state
	next.Player = enc.Player()
	next.GameTime = gametime.Advance(next.GameTime, res.Minutes)
	next.Location = CaveLocation
	if res.Outcome == cave.OutcomeDefeat {
		next.Location = InfirmaryLocation
	}
	if combat.Gold > 0 {
		next.Inventory = next.Inventory.AddGold(combat.Gold)
	}
	if combat.Loot != nil {
		item, err := g.content.Catalog.New(combat.Loot.ItemID, combat.Loot.Quantity)
		if err != nil {
			return ExploreResult{}, fmt.Errorf("creating loot: %w", err)
		}
		next.Inventory = next.Inventory.Add(item)
		res.Loot = &item
	}
	if err := g.commit(ctx, "explore", next); err != nil {
		return ExploreResult{}, err
	}
	g.logger.Info("cave explored",
		zap.Int("cave_level", caveLevel),
		zap.String("monster", monster.Name),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("minutes", res.Minutes),
	)
	return res, nil
}

// fight alternates blows until the encounter resolves.
func (g *Game) fight(enc *cave.Encounter) error {
	for enc.State() != cave.StateResolved {
		switch enc.State() {
		case cave.StatePlayerTurn:
			p := enc.Player()
			attack, ok := g.bestAttack(p)
			if !ok || shouldFlee(p, enc.Rounds()) {
				if err := enc.Flee(); err != nil {
					return err
				}
				continue
			}
			if _, err := enc.PlayerAttack(attack); err != nil {
				return err
			}
		case cave.StateMonsterTurn:
			if _, err := enc.MonsterAttack(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("fight from %s: %w", enc.State(), cave.ErrInvalidTransition)
		}
	}
	return nil
}
