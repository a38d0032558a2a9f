// Package inventory models the items a student carries, the consumable
// effects of those items and the term-progress counter advanced by study.
package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/academy/internal/game/dice"
)

// Category groups items by what they are used for.
type Category string

const (
	CategoryIngredient Category = "ingredient"
	CategoryCauldron   Category = "cauldron"
	CategoryWand       Category = "wand"
	CategoryBook       Category = "book"
	CategoryPotion     Category = "potion"
	CategoryFood       Category = "food"
	CategoryScroll     Category = "scroll"
	CategoryTelescope  Category = "telescope"
	CategoryRobe       Category = "robe"
	CategoryGem        Category = "gem"
	CategoryMisc       Category = "misc"
)

var validCategories = map[Category]bool{
	CategoryIngredient: true,
	CategoryCauldron:   true,
	CategoryWand:       true,
	CategoryBook:       true,
	CategoryPotion:     true,
	CategoryFood:       true,
	CategoryScroll:     true,
	CategoryTelescope:  true,
	CategoryRobe:       true,
	CategoryGem:        true,
	CategoryMisc:       true,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return validCategories[c] }

// EffectKind names what happens when a consumable is used.
type EffectKind string

const (
	EffectHeal    EffectKind = "heal"
	EffectRestore EffectKind = "restore"
	EffectFocus   EffectKind = "focus"
	EffectStudy   EffectKind = "study"
)

// ConsumableEffect is the behavior triggered by using one unit of an item.
// TermProgress is added to the owner's term progress on use.
type ConsumableEffect struct {
	Kind         EffectKind `yaml:"kind" json:"kind"`
	Amount       int        `yaml:"amount" json:"amount"`
	TermProgress int        `yaml:"term_progress" json:"termProgress"`
}

// consumableCategories is the static category-to-behavior table.
var consumableCategories = map[Category]ConsumableEffect{
	CategoryPotion: {Kind: EffectHeal, Amount: 10},
	CategoryFood:   {Kind: EffectRestore, Amount: 5},
	CategoryScroll: {Kind: EffectStudy, TermProgress: 5},
}

// Item is a stack of one item kind held by a student.
//
// Invariant: Quantity >= 0; Effect is non-nil only for consumable categories.
type Item struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category Category          `json:"category"`
	Quantity int               `json:"quantity"`
	Effect   *ConsumableEffect `json:"effect,omitempty"`
	Power    string            `json:"power,omitempty"`
}

// ItemSpec describes an item to be created. Catalog files use the same shape.
type ItemSpec struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Category Category          `yaml:"category"`
	Quantity int               `yaml:"quantity"`
	Effect   *ConsumableEffect `yaml:"effect"`
	// Power is the dice expression rolled when the item is used as a weapon.
	Power string `yaml:"power"`
}

// Validate checks the ItemSpec's fields and reports every violation.
func (s ItemSpec) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !s.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown category %q", s.Category))
	}
	if s.Quantity < 0 {
		errs = append(errs, fmt.Errorf("quantity must be >= 0, got %d", s.Quantity))
	}
	if s.Effect != nil {
		def, consumable := consumableCategories[s.Category]
		switch {
		case !consumable:
			errs = append(errs, fmt.Errorf("category %q cannot carry a consumable effect", s.Category))
		case s.Effect.Kind != "" && s.Effect.Kind != def.Kind:
			errs = append(errs, fmt.Errorf("effect kind %q does not match category %q (%s)", s.Effect.Kind, s.Category, def.Kind))
		}
		if s.Effect.Amount < 0 || s.Effect.TermProgress < 0 {
			errs = append(errs, errors.New("effect amounts must be >= 0"))
		}
	}
	if s.Power != "" {
		if _, err := dice.Parse(s.Power); err != nil {
			errs = append(errs, fmt.Errorf("power: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", s.ID, errors.Join(errs...))
	}
	return nil
}

// CreateItem validates spec and builds a new Item. Consumable categories get
// the category's default effect unless the ItemSpec overrides its amounts.
func CreateItem(spec ItemSpec) (Item, error) {
	if err := spec.Validate(); err != nil {
		return Item{}, err
	}
	item := Item{
		ID:       spec.ID,
		Name:     spec.Name,
		Category: spec.Category,
		Quantity: spec.Quantity,
		Power:    spec.Power,
	}
	if def, ok := consumableCategories[spec.Category]; ok {
		eff := def
		if spec.Effect != nil {
			eff.Amount = spec.Effect.Amount
			eff.TermProgress = spec.Effect.TermProgress
		}
		item.Effect = &eff
	}
	return item, nil
}

// IsConsumable reports whether using item consumes it.
func IsConsumable(item Item) bool {
	_, ok := consumableCategories[item.Category]
	return ok
}

// ConsumableConfig returns the effect of using one unit of item.
//
// Postcondition: ok is false iff item is not consumable.
func ConsumableConfig(item Item) (ConsumableEffect, bool) {
	def, ok := consumableCategories[item.Category]
	if !ok {
		return ConsumableEffect{}, false
	}
	if item.Effect != nil {
		return *item.Effect, true
	}
	return def, true
}

// PowerExpression returns the parsed weapon dice of item.
//
// Postcondition: ok is false when the item has no power.
func PowerExpression(item Item) (dice.Expression, bool) {
	if item.Power == "" {
		return dice.Expression{}, false
	}
	e, err := dice.Parse(item.Power)
	if err != nil {
		return dice.Expression{}, false
	}
	return e, true
}
