package library

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/academy/internal/game/inventory"
)

// ErrNoCauldron is returned when a brew is attempted without a cauldron.
var ErrNoCauldron = errors.New("library: brewing requires a cauldron")

// CheckCatalog reports every recipe that references an item the catalog does
// not know.
func (l *Library) CheckCatalog(cat *inventory.Catalog) error {
	var errs []error
	for _, p := range l.Potions() {
		if _, ok := cat.Spec(p.Brews); !ok {
			errs = append(errs, fmt.Errorf("potion %q brews unknown item %q", p.ID, p.Brews))
		}
		for _, ing := range p.Ingredients {
			if _, ok := cat.Spec(ing.Item); !ok {
				errs = append(errs, fmt.Errorf("potion %q uses unknown ingredient %q", p.ID, ing.Item))
			}
		}
	}
	return errors.Join(errs...)
}

// Brew spends the recipe's ingredients from inv and adds one unit of the
// brewed item. inv is unchanged on error.
//
// Precondition: cat must be non-nil.
// Postcondition: On success the cauldron is kept and each ingredient
// quantity drops by the recipe amount.
func Brew(recipe PotionRecipe, inv inventory.State, cat *inventory.Catalog) (inventory.State, error) {
	if inv.LargestStack(inventory.CategoryCauldron) < 1 {
		return inv, ErrNoCauldron
	}
	out := inv
	for _, ing := range recipe.Ingredients {
		var err error
		out, err = out.Remove(ing.Item, ing.Quantity)
		if err != nil {
			return inv, fmt.Errorf("brewing %q: %w", recipe.ID, err)
		}
	}
	potion, err := cat.New(recipe.Brews, 1)
	if err != nil {
		return inv, fmt.Errorf("brewing %q: %w", recipe.ID, err)
	}
	return out.Add(potion), nil
}
