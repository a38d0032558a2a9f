package cave

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/academy/internal/game/dice"
	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/student"
)

var (
	// ErrInvalidTransition is returned when an action does not fit the
	// encounter's current state.
	ErrInvalidTransition = errors.New("cave: invalid encounter transition")
	// ErrNotEnoughMana is returned when the student cannot pay for a spell.
	ErrNotEnoughMana = errors.New("cave: not enough mana")
)

// EncounterState is a node of the encounter state machine.
type EncounterState int

const (
	StateIdle EncounterState = iota
	StateSpawned
	StatePlayerTurn
	StateMonsterTurn
	StateResolved
)

var stateNames = [...]string{"idle", "spawned", "player_turn", "monster_turn", "resolved"}

func (s EncounterState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("EncounterState(%d)", int(s))
	}
	return stateNames[s]
}

// Outcome is how a resolved encounter ended.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeFled
)

var outcomeNames = [...]string{"pending", "victory", "defeat", "fled"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// CombatRollResult totals what happened over an encounter.
type CombatRollResult struct {
	DamageDealt    int
	DamageReceived int
	Loot           *LootDrop
	Gold           int
}

// Encounter drives one fight from spawn to resolution. It is never
// persisted and is not safe for concurrent use.
type Encounter struct {
	bestiary *Bestiary
	src      dice.Source
	logger   *zap.Logger

	state   EncounterState
	outcome Outcome
	player  student.Player
	monster CaveMonster
	result  CombatRollResult
	rounds  int
}

// NewEncounter returns an idle encounter for player.
//
// Precondition: b, src and logger must be non-nil.
func NewEncounter(b *Bestiary, player student.Player, src dice.Source, logger *zap.Logger) *Encounter {
	return &Encounter{bestiary: b, src: src, logger: logger, player: player}
}

// State returns the current state.
func (e *Encounter) State() EncounterState { return e.state }

// Outcome returns how the encounter ended, or OutcomePending.
func (e *Encounter) Outcome() Outcome { return e.outcome }

// Player returns the student as the fight has left them.
func (e *Encounter) Player() student.Player { return e.player }

// Monster returns the spawned monster; the zero value before Spawn.
func (e *Encounter) Monster() CaveMonster { return e.monster }

// Rounds returns the number of completed player actions.
func (e *Encounter) Rounds() int { return e.rounds }

func (e *Encounter) transition(from, to EncounterState) error {
	if e.state != from {
		return fmt.Errorf("%s -> %s from %s: %w", from, to, e.state, ErrInvalidTransition)
	}
	e.logger.Debug("encounter transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("monster_id", e.monster.ID),
	)
	e.state = to
	return nil
}

// Spawn places a monster for the cave level under phase.
//
// Precondition: level >= 1.
func (e *Encounter) Spawn(level int, phase gametime.MoonPhase) (CaveMonster, error) {
	if e.state != StateIdle {
		return CaveMonster{}, fmt.Errorf("spawn from %s: %w", e.state, ErrInvalidTransition)
	}
	e.monster = e.bestiary.Spawn(level, phase, e.src)
	if err := e.transition(StateIdle, StateSpawned); err != nil {
		return CaveMonster{}, err
	}
	e.logger.Info("monster spawned",
		zap.String("monster_id", e.monster.ID),
		zap.String("template", e.monster.TemplateID),
		zap.Int("level", level),
		zap.Int("hp", e.monster.MaxHP),
		zap.Stringer("moon", phase),
		zap.String("variant", e.monster.Variant),
	)
	return e.monster, nil
}

// Engage starts combat; the student acts first.
func (e *Encounter) Engage() error {
	return e.transition(StateSpawned, StatePlayerTurn)
}

// PlayerAttack strikes the monster with a. The monster's defense reduces the
// blow but every hit deals at least 1. Killing the monster resolves the
// encounter and rolls loot and gold.
func (e *Encounter) PlayerAttack(a Attack) (int, error) {
	if e.state != StatePlayerTurn {
		return 0, fmt.Errorf("attack from %s: %w", e.state, ErrInvalidTransition)
	}
	p, ok := e.player.SpendMana(a.ManaCost)
	if !ok {
		return 0, fmt.Errorf("%s costs %d mana, have %d: %w", a.Name, a.ManaCost, e.player.Mana, ErrNotEnoughMana)
	}
	e.player = p

	dealt := max(1, CalculatePlayerDamage(e.player, a, e.src)-e.monster.Defense)
	dealt = min(dealt, e.monster.HP)
	e.monster.HP -= dealt
	e.result.DamageDealt += dealt
	e.rounds++

	if e.monster.Alive() {
		return dealt, e.transition(StatePlayerTurn, StateMonsterTurn)
	}
	if drop, ok := RollLoot(e.monster, e.src); ok {
		e.result.Loot = &drop
	}
	e.result.Gold = RollGold(e.monster, e.src)
	e.player = e.player.RecordDepth(e.monster.Level)
	return dealt, e.resolve(StatePlayerTurn, OutcomeVictory)
}

// Flee abandons the fight on the student's turn.
func (e *Encounter) Flee() error {
	return e.resolve(StatePlayerTurn, OutcomeFled)
}

// MonsterAttack lets the monster strike back. Dropping the student to zero
// hit points resolves the encounter as a defeat.
func (e *Encounter) MonsterAttack() (int, error) {
	if e.state != StateMonsterTurn {
		return 0, fmt.Errorf("monster attack from %s: %w", e.state, ErrInvalidTransition)
	}
	dmg := min(CalculateMonsterDamage(e.monster, e.src), e.player.HP)
	e.player = e.player.TakeDamage(dmg)
	e.result.DamageReceived += dmg
	if e.player.Alive() {
		return dmg, e.transition(StateMonsterTurn, StatePlayerTurn)
	}
	return dmg, e.resolve(StateMonsterTurn, OutcomeDefeat)
}

func (e *Encounter) resolve(from EncounterState, o Outcome) error {
	if err := e.transition(from, StateResolved); err != nil {
		return err
	}
	e.outcome = o
	e.logger.Info("encounter resolved",
		zap.String("monster_id", e.monster.ID),
		zap.Stringer("outcome", o),
		zap.Int("rounds", e.rounds),
		zap.Int("damage_dealt", e.result.DamageDealt),
		zap.Int("damage_received", e.result.DamageReceived),
		zap.Int("gold", e.result.Gold),
	)
	return nil
}

// Result returns the totals of a resolved encounter.
func (e *Encounter) Result() (CombatRollResult, error) {
	if e.state != StateResolved {
		return CombatRollResult{}, fmt.Errorf("result from %s: %w", e.state, ErrInvalidTransition)
	}
	return e.result, nil
}
