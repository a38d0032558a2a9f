// Package library holds the academy's static reference data: the spells a
// student can learn and the potions they can brew.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/academy/internal/game/dice"
)

// School is a branch of magic.
type School string

const (
	SchoolCharms          School = "charms"
	SchoolTransfiguration School = "transfiguration"
	SchoolDefense         School = "defense"
	SchoolElemental       School = "elemental"
	SchoolHealing         School = "healing"
	SchoolAlchemy         School = "alchemy"
	SchoolDivination      School = "divination"
)

var validSchools = map[School]bool{
	SchoolCharms:          true,
	SchoolTransfiguration: true,
	SchoolDefense:         true,
	SchoolElemental:       true,
	SchoolHealing:         true,
	SchoolAlchemy:         true,
	SchoolDivination:      true,
}

// Valid reports whether s is a known school.
func (s School) Valid() bool { return validSchools[s] }

const (
	MinTier = 1
	MaxTier = 5
)

// Spell is an immutable library entry.
type Spell struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	School      School          `yaml:"school"`
	Tier        int             `yaml:"tier"`
	ManaCost    int             `yaml:"mana_cost"`
	Power       dice.Expression `yaml:"power"`
	Description string          `yaml:"description"`
}

// Offensive reports whether the spell deals damage.
func (s Spell) Offensive() bool { return s.Power.Count > 0 }

// Validate checks the spell's invariants.
func (s Spell) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !s.School.Valid() {
		errs = append(errs, fmt.Errorf("unknown school %q", s.School))
	}
	if s.Tier < MinTier || s.Tier > MaxTier {
		errs = append(errs, fmt.Errorf("tier must be in [%d, %d], got %d", MinTier, MaxTier, s.Tier))
	}
	if s.ManaCost < 0 {
		errs = append(errs, fmt.Errorf("mana_cost must be >= 0, got %d", s.ManaCost))
	}
	if len(errs) > 0 {
		return fmt.Errorf("spell %q: %w", s.ID, errors.Join(errs...))
	}
	return nil
}

// Ingredient is one line of a potion recipe.
type Ingredient struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// PotionRecipe is an immutable brewing recipe. Brews names the catalog item
// produced.
type PotionRecipe struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	School      School       `yaml:"school"`
	Tier        int          `yaml:"tier"`
	Ingredients []Ingredient `yaml:"ingredients"`
	Brews       string       `yaml:"brews"`
	BrewMinutes int          `yaml:"brew_minutes"`
}

// Validate checks the recipe's invariants.
func (p PotionRecipe) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !p.School.Valid() {
		errs = append(errs, fmt.Errorf("unknown school %q", p.School))
	}
	if p.Tier < MinTier || p.Tier > MaxTier {
		errs = append(errs, fmt.Errorf("tier must be in [%d, %d], got %d", MinTier, MaxTier, p.Tier))
	}
	if len(p.Ingredients) == 0 {
		errs = append(errs, errors.New("at least one ingredient is required"))
	}
	for i, ing := range p.Ingredients {
		if ing.Item == "" || ing.Quantity < 1 {
			errs = append(errs, fmt.Errorf("ingredient %d must name an item with quantity >= 1", i))
		}
	}
	if p.Brews == "" {
		errs = append(errs, errors.New("brews must name an item"))
	}
	if p.BrewMinutes < 0 {
		errs = append(errs, errors.New("brew_minutes must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("potion %q: %w", p.ID, errors.Join(errs...))
	}
	return nil
}

// Library is the read-only index of spells and potions. Build it once at
// startup and share it by pointer.
type Library struct {
	spells  map[string]Spell
	potions map[string]PotionRecipe
}

// New validates and indexes spells and potions.
func New(spells []Spell, potions []PotionRecipe) (*Library, error) {
	lib := &Library{
		spells:  make(map[string]Spell, len(spells)),
		potions: make(map[string]PotionRecipe, len(potions)),
	}
	for _, s := range spells {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
		if _, dup := lib.spells[s.ID]; dup {
			return nil, fmt.Errorf("library: spell ID %q already registered", s.ID)
		}
		lib.spells[s.ID] = s
	}
	for _, p := range potions {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
		if _, dup := lib.potions[p.ID]; dup {
			return nil, fmt.Errorf("library: potion ID %q already registered", p.ID)
		}
		lib.potions[p.ID] = p
	}
	return lib, nil
}

// Load reads spells.yaml and potions.yaml from dir.
func Load(dir string) (*Library, error) {
	var spells struct {
		Spells []Spell `yaml:"spells"`
	}
	var potions struct {
		Potions []PotionRecipe `yaml:"potions"`
	}
	if err := readYAML(filepath.Join(dir, "spells.yaml"), &spells); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, "potions.yaml"), &potions); err != nil {
		return nil, err
	}
	return New(spells.Spells, potions.Potions)
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("library: cannot read file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("library: cannot parse file %q: %w", path, err)
	}
	return nil
}

// Spell returns the spell with the given id.
func (l *Library) Spell(id string) (Spell, bool) {
	s, ok := l.spells[id]
	return s, ok
}

// Potion returns the recipe with the given id.
func (l *Library) Potion(id string) (PotionRecipe, bool) {
	p, ok := l.potions[id]
	return p, ok
}

// Spells returns every spell ordered by tier, then id.
func (l *Library) Spells() []Spell {
	return l.filterSpells(func(Spell) bool { return true })
}

// SpellsBySchool returns the spells of one school ordered by tier, then id.
func (l *Library) SpellsBySchool(school School) []Spell {
	return l.filterSpells(func(s Spell) bool { return s.School == school })
}

// SpellsUpToTier returns the spells a student of the given tier may learn.
func (l *Library) SpellsUpToTier(tier int) []Spell {
	return l.filterSpells(func(s Spell) bool { return s.Tier <= tier })
}

func (l *Library) filterSpells(keep func(Spell) bool) []Spell {
	var out []Spell
	for _, s := range l.spells {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Potions returns every recipe ordered by tier, then id.
func (l *Library) Potions() []PotionRecipe {
	out := make([]PotionRecipe, 0, len(l.potions))
	for _, p := range l.potions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].ID < out[j].ID
	})
	return out
}
