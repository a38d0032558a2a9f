// Package academy applies student actions to the saved game and persists
// the result after every action.
package academy

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/academy/internal/game/campus"
	"github.com/cory-johannsen/academy/internal/game/classroom"
	"github.com/cory-johannsen/academy/internal/game/dice"
	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/journal"
	"github.com/cory-johannsen/academy/internal/game/library"
	"github.com/cory-johannsen/academy/internal/game/student"
	"github.com/cory-johannsen/academy/internal/observability"
	"github.com/cory-johannsen/academy/internal/save"
)

var (
	// ErrInvalidInput marks an argument the player supplied that cannot be acted on.
	ErrInvalidInput = errors.New("academy: invalid input")
	// ErrNoClassNow is returned when no lesson runs at the current time.
	ErrNoClassNow = errors.New("academy: no class in session")
	// ErrMissingMaterials is returned when the student lacks what a class needs.
	ErrMissingMaterials = errors.New("academy: missing class materials")
	// ErrUnknownRecipe is returned for a potion id not in the library.
	ErrUnknownRecipe = errors.New("academy: unknown potion recipe")
	// ErrTooWeak is returned when exploring with no hit points left.
	ErrTooWeak = errors.New("academy: too weak to explore")
	// ErrNoAttack is returned when exploring with neither a wand nor an
	// affordable offensive spell.
	ErrNoAttack = errors.New("academy: nothing to fight with")
)

const (
	// LessonProgress is the term progress earned by attending a lesson.
	LessonProgress = 10
	// SleepMinutes is how long a night's sleep takes.
	SleepMinutes = 8 * gametime.MinutesPerHour
	// ExploreMinutes is the walk to and from the caves.
	ExploreMinutes = 30
	// MinutesPerRound is the time each exchange of blows takes.
	MinutesPerRound = 5
	// MaxRounds bounds a single encounter.
	MaxRounds = 50
	// CaveLocation is where the student stands while exploring.
	CaveLocation = "caves"
)

// Game owns the current SaveGame and the static content it is checked against.
//
// A Game is not safe for concurrent use.
type Game struct {
	content       *Content
	saves         *save.Manager
	src           dice.Source
	logger        *zap.Logger
	startLocation string
	state         save.SaveGame
}

// Options configure a new Game.
type Options struct {
	// StartLocation is where a new student wakes up, by ID or title. Empty
	// means the campus start.
	StartLocation string
}

// New loads the saved game or, when none is usable, starts a new one from the
// catalog's starter kit.
//
// Precondition: content, saves, src and logger must be non-nil.
// Postcondition: the returned Game holds a valid SaveGame.
func New(ctx context.Context, content *Content, saves *save.Manager, src dice.Source, logger *zap.Logger, opts Options) (*Game, error) {
	if content == nil || saves == nil || src == nil || logger == nil {
		panic("academy: New called with nil dependency")
	}
	start := content.Campus.Start()
	if opts.StartLocation != "" {
		var ok bool
		if start, ok = content.Campus.Find(opts.StartLocation); !ok {
			return nil, fmt.Errorf("start location %q: %w", opts.StartLocation, campus.ErrUnknownLocation)
		}
	}
	g := &Game{
		content:       content,
		saves:         saves,
		src:           src,
		logger:        logger,
		startLocation: start.ID,
	}
	state, ok, err := saves.LoadGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	if !ok {
		if state, err = g.freshState(); err != nil {
			return nil, err
		}
		logger.Info("starting new game", zap.String("location", state.Location))
	}
	g.state = state
	return g, nil
}

func (g *Game) freshState() (save.SaveGame, error) {
	inv, err := g.content.Catalog.Starter()
	if err != nil {
		return save.SaveGame{}, fmt.Errorf("building starter kit: %w", err)
	}
	return save.NewGame(g.startLocation, inv), nil
}

// State returns the current saved game.
func (g *Game) State() save.SaveGame { return g.state }

// Content returns the static content the game runs on.
func (g *Game) Content() *Content { return g.content }

// commit persists next and makes it current. On error the current state is
// left untouched.
func (g *Game) commit(ctx context.Context, action string, next save.SaveGame) error {
	if err := g.saves.SaveGame(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	g.state = next
	g.logger.Debug("action committed",
		zap.String("action", action),
		observability.GameTime(next.GameTime),
	)
	return nil
}

// Advance moves the clock forward by minutes.
func (g *Game) Advance(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("advance %d minutes: %w", minutes, ErrInvalidInput)
	}
	next := g.state
	next.GameTime = gametime.Advance(next.GameTime, minutes)
	return g.commit(ctx, "advance", next)
}

// Sleep passes SleepMinutes in the dormitory and fully restores the student.
func (g *Game) Sleep(ctx context.Context) error {
	next := g.state
	next.GameTime = gametime.Advance(next.GameTime, SleepMinutes)
	next.Player = next.Player.Rest()
	next.Location = save.DefaultLocation
	return g.commit(ctx, "sleep", next)
}

// MoveTo walks the student to the location named by an ID or title along
// the quickest route, passing the walking time. A student standing somewhere
// off the map arrives at once.
func (g *Game) MoveTo(ctx context.Context, name string) (campus.Route, error) {
	dest, ok := g.content.Campus.Find(name)
	if !ok {
		return campus.Route{}, fmt.Errorf("move to %q: %w", name, campus.ErrUnknownLocation)
	}
	route := campus.Route{Stops: []string{dest.ID}}
	if _, onMap := g.content.Campus.Location(g.state.Location); onMap {
		var err error
		if route, err = g.content.Campus.Route(g.state.Location, dest.ID); err != nil {
			return campus.Route{}, err
		}
	}
	next := g.state
	next.Location = dest.ID
	next.GameTime = gametime.Advance(next.GameTime, route.Minutes)
	if err := g.commit(ctx, "move", next); err != nil {
		return campus.Route{}, err
	}
	return route, nil
}

// UseItem consumes one unit of id and applies its effect to the student.
// Potions heal, food and focus items restore mana, scrolls only advance
// term progress.
func (g *Game) UseItem(ctx context.Context, id string) (inventory.ConsumableEffect, error) {
	next := g.state
	inv, eff, err := next.Inventory.Consume(id)
	if err != nil {
		return inventory.ConsumableEffect{}, err
	}
	next.Inventory = inv
	switch eff.Kind {
	case inventory.EffectHeal:
		next.Player = next.Player.Heal(eff.Amount)
	case inventory.EffectRestore, inventory.EffectFocus:
		next.Player = next.Player.RestoreMana(eff.Amount)
	}
	if err := g.commit(ctx, "use item", next); err != nil {
		return inventory.ConsumableEffect{}, err
	}
	g.logger.Info("item used",
		zap.String("item_id", id),
		zap.String("effect", string(eff.Kind)),
		zap.Int("amount", eff.Amount),
	)
	return eff, nil
}

// Lesson describes an attended class.
type Lesson struct {
	Class    gametime.ScheduledClass
	Progress int
	Minutes  int
}

// AttendClass sits through the lesson running now. The clock moves to the
// end of the slot and the student earns LessonProgress.
func (g *Game) AttendClass(ctx context.Context) (Lesson, error) {
	now := g.state.GameTime
	class, ok := g.content.Schedule.CurrentClass(now)
	if !ok {
		return Lesson{}, fmt.Errorf("attending at %s: %w", now, ErrNoClassNow)
	}
	if missing := classroom.MissingMaterials(class.Class, g.state.Inventory); len(missing) > 0 {
		return Lesson{}, fmt.Errorf("%s needs %s: %w", class.Class, classroom.DescribeMissing(missing), ErrMissingMaterials)
	}
	minutes := gametime.MinutesUntilSlotEnd(now)
	next := g.state
	before := next.Inventory.TermProgress()
	next.Inventory = next.Inventory.AdvanceTermProgress(LessonProgress)
	next.GameTime = gametime.Advance(now, minutes)
	if room, ok := g.content.Campus.Find(class.Room); ok {
		next.Location = room.ID
	}
	if err := g.commit(ctx, "attend class", next); err != nil {
		return Lesson{}, err
	}
	lesson := Lesson{
		Class:    class,
		Progress: next.Inventory.TermProgress() - before,
		Minutes:  minutes,
	}
	g.logger.Info("class attended",
		zap.String("class", string(class.Class)),
		zap.String("room", class.Room),
		zap.Int("progress", lesson.Progress),
	)
	return lesson, nil
}

// Brew follows the recipe id, spending its ingredients and its brewing time.
func (g *Game) Brew(ctx context.Context, id string) (inventory.Item, error) {
	recipe, ok := g.content.Library.Potion(id)
	if !ok {
		return inventory.Item{}, fmt.Errorf("brewing %q: %w", id, ErrUnknownRecipe)
	}
	inv, err := library.Brew(recipe, g.state.Inventory, g.content.Catalog)
	if err != nil {
		return inventory.Item{}, err
	}
	next := g.state
	next.Inventory = inv
	next.GameTime = gametime.Advance(next.GameTime, recipe.BrewMinutes)
	if err := g.commit(ctx, "brew", next); err != nil {
		return inventory.Item{}, err
	}
	brewed, _ := inv.Item(recipe.Brews)
	g.logger.Info("potion brewed", zap.String("recipe_id", id), zap.Int("held", brewed.Quantity))
	return brewed, nil
}

// Learn adds spell id to the student's spellbook.
func (g *Game) Learn(ctx context.Context, id string) error {
	book, err := g.state.Spells.Learn(g.content.Library, id, g.state.Player.Level)
	if err != nil {
		return err
	}
	next := g.state
	next.Spells = book
	return g.commit(ctx, "learn", next)
}

// Write appends a journal entry stamped with the current time.
func (g *Game) Write(ctx context.Context, text string) (journal.Entry, error) {
	j, entry, err := g.state.Journal.Append(g.state.GameTime, text)
	if err != nil {
		return journal.Entry{}, err
	}
	next := g.state
	next.Journal = j
	if err := g.commit(ctx, "write", next); err != nil {
		return journal.Entry{}, err
	}
	return entry, nil
}

// Revise appends a new version of the journal entry id.
func (g *Game) Revise(ctx context.Context, id, text string) (journal.Entry, error) {
	j, entry, err := g.state.Journal.Revise(id, g.state.GameTime, text)
	if err != nil {
		return journal.Entry{}, err
	}
	next := g.state
	next.Journal = j
	if err := g.commit(ctx, "revise", next); err != nil {
		return journal.Entry{}, err
	}
	return entry, nil
}

// Reset deletes the save and starts over from the starter kit.
func (g *Game) Reset(ctx context.Context) error {
	if err := g.saves.ClearSave(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fresh, err := g.freshState()
	if err != nil {
		return err
	}
	g.logger.Info("game reset")
	return g.commit(ctx, "reset", fresh)
}

// Status is a read-only summary of the current game.
type Status struct {
	Time         gametime.GameTime
	Slot         gametime.TimeSlot
	Moon         gametime.MoonInfo
	Class        gametime.ScheduledClass
	InClass      bool
	NextClass    gametime.TimeUntilClass
	Location     string
	Player       student.Player
	Gold         string
	TermProgress int
}

// Status summarizes the current state for display.
func (g *Game) Status() Status {
	now := g.state.GameTime
	class, inClass := g.content.Schedule.CurrentClass(now)
	return Status{
		Time:         now,
		Slot:         now.Slot(),
		Moon:         gametime.MoonPhaseInfo(now),
		Class:        class,
		InClass:      inClass,
		NextClass:    g.content.Schedule.TimeUntilNextClass(now),
		Location:     g.state.Location,
		Player:       g.state.Player,
		Gold:         inventory.PurseOf(g.state.Inventory.Gold()).String(),
		TermProgress: g.state.Inventory.TermProgress(),
	}
}

// Forecast lists the moon for the next days.
func (g *Game) Forecast(days int) ([]gametime.MoonDay, error) {
	if days < 0 {
		return nil, fmt.Errorf("forecast %d days: %w", days, ErrInvalidInput)
	}
	out := make([]gametime.MoonDay, 0, days)
	for d := range gametime.MoonForecast(g.state.GameTime, days) {
		out = append(out, d)
	}
	return out, nil
}
