// Package main provides the academy command: a single-player life at a school
// of magic, played one action per invocation against a persistent save.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/academy/internal/config"
	"github.com/cory-johannsen/academy/internal/game/classroom"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/library"
	"github.com/cory-johannsen/academy/internal/storage/sqlite"
)

const usage = `usage: academy [-config path] <command> [args]

commands:
  status                     show time, moon, class and vitals
  advance <minutes>          let time pass
  sleep                      sleep eight hours and recover
  move <location>            walk somewhere on the grounds
  map                        list the places on the grounds
  inventory                  list carried items
  use <item>                 consume one item
  attend                     attend the class in session
  brew <recipe>              brew a potion
  recipes                    list potion recipes
  spells                     list known and learnable spells
  learn <spell>              learn a spell
  explore <level>            fight in the caves
  forecast [days]            moon forecast (default 7)
  journal [list]             show the latest journal entries
  journal write <text>       add a journal entry
  journal revise <id> <text> revise a journal entry
  journal history <id>       show every version of an entry
  saves                      list saves (sqlite backend)
  reset                      delete the save and start over
`

var errUsage = errors.New("invalid usage")

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx := context.Background()
	app, cleanup, err := initializeApp(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing academy: %v", err)
	}

	err = run(ctx, app, flag.Args(), os.Stdout)
	app.Logger.Debug("command finished",
		zap.Strings("args", flag.Args()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	cleanup()
	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "academy: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command against app, writing human-readable output to w.
func run(ctx context.Context, app *App, args []string, w io.Writer) error {
	if len(args) == 0 {
		args = []string{"status"}
	}
	g := app.Game
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "status":
		printStatus(w, app)
		return nil
	case "advance":
		n, err := intArg(rest, 0)
		if err != nil {
			return err
		}
		if err := g.Advance(ctx, n); err != nil {
			return err
		}
		fmt.Fprintf(w, "It is now %s.\n", g.State().GameTime)
		return nil
	case "sleep":
		if err := g.Sleep(ctx); err != nil {
			return err
		}
		fmt.Fprintf(w, "You wake rested. It is %s.\n", g.State().GameTime)
		return nil
	case "move":
		if len(rest) == 0 {
			return errUsage
		}
		route, err := g.MoveTo(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "You walk %s (%d minutes).\n", strings.Join(route.Stops, " -> "), route.Minutes)
		return nil
	case "map":
		for _, loc := range g.Content().Campus.Locations() {
			fmt.Fprintf(w, "%-20s %s\n", loc.ID, loc.Title)
		}
		return nil
	case "inventory":
		printInventory(w, g.State().Inventory)
		return nil
	case "use":
		if len(rest) != 1 {
			return errUsage
		}
		eff, err := g.UseItem(ctx, rest[0])
		if err != nil {
			return err
		}
		p := g.State().Player
		fmt.Fprintf(w, "Used %s (%s). HP %d/%d, mana %d/%d, term progress %d%%.\n",
			rest[0], eff.Kind, p.HP, p.MaxHP, p.Mana, p.MaxMana, g.State().Inventory.TermProgress())
		return nil
	case "attend":
		lesson, err := g.AttendClass(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "You attend %s in the %s for %d minutes (+%d term progress).\n",
			lesson.Class.Class, lesson.Class.Room, lesson.Minutes, lesson.Progress)
		return nil
	case "brew":
		if len(rest) != 1 {
			return errUsage
		}
		potion, err := g.Brew(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "You brew a %s. You now hold %d.\n", potion.Name, potion.Quantity)
		return nil
	case "recipes":
		printRecipes(w, g.Content().Library)
		return nil
	case "spells":
		printSpells(w, app)
		return nil
	case "learn":
		if len(rest) != 1 {
			return errUsage
		}
		if err := g.Learn(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(w, "You learn %s.\n", rest[0])
		return nil
	case "explore":
		level, err := intArg(rest, 0)
		if err != nil {
			return err
		}
		res, err := g.Explore(ctx, level)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Cave level %d: %s (level %d, %d hp).\n", level, res.Monster.Name, res.Monster.Level, res.Monster.MaxHP)
		fmt.Fprintf(w, "%s after %d rounds: dealt %d, took %d.\n", res.Outcome, res.Rounds, res.Combat.DamageDealt, res.Combat.DamageReceived)
		if res.Combat.Gold > 0 {
			fmt.Fprintf(w, "Found %s.\n", inventory.PurseOf(res.Combat.Gold))
		}
		if res.Loot != nil {
			fmt.Fprintf(w, "Looted %s x%d.\n", res.Loot.Name, res.Loot.Quantity)
		}
		return nil
	case "forecast":
		days := 7
		if len(rest) > 0 {
			n, err := intArg(rest, 0)
			if err != nil {
				return err
			}
			days = n
		}
		forecast, err := g.Forecast(days)
		if err != nil {
			return err
		}
		for _, d := range forecast {
			fmt.Fprintf(w, "day %3d %-9s %-15s %3d%%\n", d.DayCount, d.Day, d.Moon.Name, d.Moon.Illumination)
		}
		return nil
	case "journal":
		return runJournal(ctx, app, rest, w)
	case "saves":
		lister, ok := app.Store.(*sqlite.Store)
		if !ok {
			return fmt.Errorf("listing saves needs the %s backend", config.BackendSQLite)
		}
		infos, err := lister.List(ctx)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Fprintf(w, "%-20s v%d  %s\n", info.Key, info.Version, info.UpdatedAt.Format(time.RFC3339))
		}
		return nil
	case "reset":
		if err := g.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "A new term begins.")
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func runJournal(ctx context.Context, app *App, args []string, w io.Writer) error {
	g := app.Game
	if len(args) == 0 || args[0] == "list" {
		for _, e := range g.State().Journal.Latest() {
			fmt.Fprintf(w, "[%s] %s\n  %s\n", e.ID, e.At, e.Text)
		}
		return nil
	}
	switch args[0] {
	case "write":
		if len(args) < 2 {
			return errUsage
		}
		e, err := g.Write(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Entry %s written.\n", e.ID)
		return nil
	case "revise":
		if len(args) < 3 {
			return errUsage
		}
		e, err := g.Revise(ctx, args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Entry %s revised as %s.\n", args[1], e.ID)
		return nil
	case "history":
		if len(args) != 2 {
			return errUsage
		}
		for _, e := range g.State().Journal.History(args[1]) {
			fmt.Fprintf(w, "[%s] %s\n  %s\n", e.ID, e.At, e.Text)
		}
		return nil
	default:
		return fmt.Errorf("unknown journal command %q: %w", args[0], errUsage)
	}
}

func intArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, errUsage
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", args[i], errUsage)
	}
	return n, nil
}

func printStatus(w io.Writer, app *App) {
	st := app.Game.Status()
	inv := app.Game.State().Inventory
	fmt.Fprintf(w, "%s (%s), %s, %d%% lit\n", st.Time, st.Slot, st.Moon.Name, st.Moon.Illumination)
	where := st.Location
	if loc, ok := app.Game.Content().Campus.Location(st.Location); ok {
		where = loc.Title
	}
	fmt.Fprintf(w, "Location: %s\n", where)
	if st.InClass {
		ready := "ready"
		if missing := classroom.MissingMaterials(st.Class.Class, inv); len(missing) > 0 {
			ready = "missing " + classroom.DescribeMissing(missing)
		}
		fmt.Fprintf(w, "In session: %s in the %s (%s)\n", st.Class.Class, st.Class.Room, ready)
	}
	if st.NextClass.Found {
		fmt.Fprintf(w, "Next class: %s in %dh%02dm\n", st.NextClass.Class.Class, st.NextClass.Minutes/60, st.NextClass.Minutes%60)
	}
	p := st.Player
	fmt.Fprintf(w, "Level %d  HP %d/%d  Mana %d/%d  Deepest cave %d\n", p.Level, p.HP, p.MaxHP, p.Mana, p.MaxMana, p.DeepestCaveLevel)
	fmt.Fprintf(w, "Purse: %s  Term progress: %d%%\n", st.Gold, st.TermProgress)
}

func printInventory(w io.Writer, inv inventory.State) {
	for _, it := range inv.Items() {
		fmt.Fprintf(w, "%-24s %-10s x%d\n", it.Name, it.Category, it.Quantity)
	}
	fmt.Fprintf(w, "Purse: %s\n", inventory.PurseOf(inv.Gold()))
}

func printRecipes(w io.Writer, lib *library.Library) {
	for _, r := range lib.Potions() {
		parts := make([]string, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			parts[i] = fmt.Sprintf("%s x%d", ing.Item, ing.Quantity)
		}
		fmt.Fprintf(w, "%-24s tier %d  %3d min  %s\n", r.ID, r.Tier, r.BrewMinutes, strings.Join(parts, ", "))
	}
}

func printSpells(w io.Writer, app *App) {
	st := app.Game.State()
	tier := library.TierForLevel(st.Player.Level)
	for _, s := range app.Game.Content().Library.SpellsUpToTier(tier) {
		mark := " "
		if st.Spells.Knows(s.ID) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-16s %-15s tier %d  mana %d\n", mark, s.ID, s.School, s.Tier, s.ManaCost)
	}
}
