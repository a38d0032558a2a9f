// Package cave resolves the cave-combat mini-game: monster spawning under
// the moon, damage and loot rolls, and the per-encounter state machine.
package cave

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/academy/internal/game/dice"
	"github.com/cory-johannsen/academy/internal/game/gametime"
)

// MonsterTemplate is a cave creature archetype loaded from YAML.
type MonsterTemplate struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Description    string          `yaml:"description"`
	MinLevel       int             `yaml:"min_level"`
	BaseHP         int             `yaml:"base_hp"`
	HPPerLevel     int             `yaml:"hp_per_level"`
	Attack         dice.Expression `yaml:"attack"`
	AttackPerLevel int             `yaml:"attack_per_level"`
	Defense        int             `yaml:"defense"`
	Gold           GoldRange       `yaml:"gold"`
	Loot           []LootEntry     `yaml:"loot"`
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, MinLevel >= 1,
// BaseHP >= 1, the attack expression is set and the loot table is valid.
func (t *MonsterTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("monster template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("monster template %q: name must not be empty", t.ID)
	}
	if t.MinLevel < 1 {
		return fmt.Errorf("monster template %q: min_level must be >= 1", t.ID)
	}
	if t.BaseHP < 1 {
		return fmt.Errorf("monster template %q: base_hp must be >= 1", t.ID)
	}
	if t.HPPerLevel < 0 || t.AttackPerLevel < 0 || t.Defense < 0 {
		return fmt.Errorf("monster template %q: per-level growth and defense must be >= 0", t.ID)
	}
	if t.Attack.Count < 1 {
		return fmt.Errorf("monster template %q: attack must be a dice expression", t.ID)
	}
	if err := validateLoot(t.Gold, t.Loot); err != nil {
		return fmt.Errorf("monster template %q: %w", t.ID, err)
	}
	return nil
}

// LoadTemplateFromBytes parses a single monster template from raw YAML.
//
// Postcondition: Returns a validated template or an error.
func LoadTemplateFromBytes(data []byte) (MonsterTemplate, error) {
	var tmpl MonsterTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return MonsterTemplate{}, fmt.Errorf("parsing monster YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return MonsterTemplate{}, err
	}
	return tmpl, nil
}

// CaveMonster is a spawned creature. It lives only as long as its encounter.
type CaveMonster struct {
	ID          string
	TemplateID  string
	Name        string
	Level       int
	HP          int
	MaxHP       int
	Attack      dice.Expression
	AttackBonus int
	Defense     int
	Variant     string
	Moon        MoonMod
	Gold        GoldRange
	Loot        []LootEntry
}

// Alive reports whether the monster still stands.
func (m CaveMonster) Alive() bool { return m.HP > 0 }

// Bestiary is the read-only set of monster templates ordered by MinLevel.
type Bestiary struct {
	templates []MonsterTemplate
}

// NewBestiary validates and orders templates.
//
// Postcondition: On success at least one template has MinLevel 1, so every
// level >= 1 resolves to a monster.
func NewBestiary(templates []MonsterTemplate) (*Bestiary, error) {
	seen := make(map[string]bool, len(templates))
	sorted := make([]MonsterTemplate, 0, len(templates))
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("bestiary: duplicate monster id %q", t.ID)
		}
		seen[t.ID] = true
		sorted = append(sorted, t)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MinLevel != sorted[j].MinLevel {
			return sorted[i].MinLevel < sorted[j].MinLevel
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) == 0 || sorted[0].MinLevel != 1 {
		return nil, fmt.Errorf("bestiary: a monster with min_level 1 is required")
	}
	return &Bestiary{templates: sorted}, nil
}

// LoadBestiary reads all *.yaml files in dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the bestiary or an error on the first parse or
// validate failure.
func LoadBestiary(dir string) (*Bestiary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}

	var templates []MonsterTemplate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return NewBestiary(templates)
}

// Templates returns the templates ordered by MinLevel, then id.
func (b *Bestiary) Templates() []MonsterTemplate {
	return append([]MonsterTemplate(nil), b.templates...)
}

// MonsterForLevel returns the strongest template whose MinLevel does not
// exceed level. Ties on MinLevel resolve to the lowest id.
//
// Precondition: level >= 1.
func (b *Bestiary) MonsterForLevel(level int) MonsterTemplate {
	if level < 1 {
		panic(fmt.Sprintf("cave: MonsterForLevel called with level %d", level))
	}
	i := sort.Search(len(b.templates), func(i int) bool { return b.templates[i].MinLevel > level })
	best := b.templates[i-1]
	for j := i - 2; j >= 0 && b.templates[j].MinLevel == best.MinLevel; j-- {
		best = b.templates[j]
	}
	return best
}

// variantHPMult and variantAttackBonus are applied on top of the moon's
// own modifiers when a Moonstruck variant spawns.
const (
	variantHPMult      = 1.25
	variantAttackBonus = 1
)

// Spawn creates a monster for the given cave level under phase.
//
// Precondition: level >= 1; src must be non-nil.
// Postcondition: HP == MaxHP >= 1 and Moon == MoonModifier(phase).
func (b *Bestiary) Spawn(level int, phase gametime.MoonPhase, src dice.Source) CaveMonster {
	tmpl := b.MonsterForLevel(level)
	mod := MoonModifier(phase)
	over := level - tmpl.MinLevel

	hp := float64(tmpl.BaseHP+tmpl.HPPerLevel*over) * mod.HPMult
	bonus := tmpl.AttackPerLevel*over + mod.AttackBonus
	name := tmpl.Name
	variant := ""
	if dice.Chance(src, mod.VariantChance) {
		variant = MoonstruckVariant
		name = MoonstruckVariant + " " + tmpl.Name
		hp *= variantHPMult
		bonus += variantAttackBonus
	}
	maxHP := max(1, int(math.Round(hp)))

	return CaveMonster{
		ID:          uuid.New().String(),
		TemplateID:  tmpl.ID,
		Name:        name,
		Level:       level,
		HP:          maxHP,
		MaxHP:       maxHP,
		Attack:      tmpl.Attack,
		AttackBonus: bonus,
		Defense:     tmpl.Defense,
		Variant:     variant,
		Moon:        mod,
		Gold:        tmpl.Gold,
		Loot:        append([]LootEntry(nil), tmpl.Loot...),
	}
}
