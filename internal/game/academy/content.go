package academy

import (
	"fmt"

	"github.com/cory-johannsen/academy/internal/config"
	"github.com/cory-johannsen/academy/internal/game/campus"
	"github.com/cory-johannsen/academy/internal/game/cave"
	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/library"
	"github.com/cory-johannsen/academy/internal/save"
)

// Content is the static, read-only game data loaded once at startup.
type Content struct {
	Schedule *gametime.Schedule
	Catalog  *inventory.Catalog
	Library  *library.Library
	Bestiary *cave.Bestiary
	Campus   *campus.Campus
}

// LoadContent reads every content file under cfg.Dir and cross-checks the
// references between them. Non-empty restDays replace the schedule's own.
//
// Postcondition: Returns fully validated content or the first load error.
func LoadContent(cfg config.ContentConfig, restDays []gametime.Day) (*Content, error) {
	sched, err := gametime.LoadSchedule(cfg.ScheduleFile())
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	if len(restDays) > 0 {
		if sched, err = sched.WithRestDays(restDays); err != nil {
			return nil, fmt.Errorf("applying rest days: %w", err)
		}
	}
	cat, err := inventory.LoadCatalog(cfg.ItemsFile())
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	lib, err := library.Load(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading library: %w", err)
	}
	if err := lib.CheckCatalog(cat); err != nil {
		return nil, fmt.Errorf("checking potion recipes: %w", err)
	}
	best, err := cave.LoadBestiary(cfg.MonstersDir())
	if err != nil {
		return nil, fmt.Errorf("loading bestiary: %w", err)
	}
	for _, m := range best.Templates() {
		for _, e := range m.Loot {
			if _, ok := cat.Spec(e.ItemID); !ok {
				return nil, fmt.Errorf("monster %q drops unknown item %q", m.ID, e.ItemID)
			}
		}
	}
	grounds, err := campus.Load(cfg.CampusFile())
	if err != nil {
		return nil, fmt.Errorf("loading campus: %w", err)
	}
	for _, c := range sched.Entries() {
		if _, ok := grounds.Find(c.Room); !ok {
			return nil, fmt.Errorf("%s %s %s is held in unknown room %q", c.Day, c.Slot, c.Class, c.Room)
		}
	}
	for _, id := range []string{CaveLocation, InfirmaryLocation, save.DefaultLocation} {
		if _, ok := grounds.Location(id); !ok {
			return nil, fmt.Errorf("campus has no %q location", id)
		}
	}
	return &Content{Schedule: sched, Catalog: cat, Library: lib, Bestiary: best, Campus: grounds}, nil
}
