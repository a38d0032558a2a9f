// Package classroom decides whether a student has brought what a class
// needs.
package classroom

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/inventory"
)

// Requirement is one category a class needs, with the minimum quantity a
// single held item must carry.
type Requirement struct {
	Category inventory.Category
	Min      int
}

func (r Requirement) String() string {
	return fmt.Sprintf("%s x%d", r.Category, r.Min)
}

var requiredClassCategories = map[gametime.ClassType][]Requirement{
	gametime.ClassPotions: {
		{Category: inventory.CategoryCauldron, Min: 1},
		{Category: inventory.CategoryIngredient, Min: 2},
	},
	gametime.ClassCharms: {
		{Category: inventory.CategoryWand, Min: 1},
	},
	gametime.ClassTransfiguration: {
		{Category: inventory.CategoryWand, Min: 1},
		{Category: inventory.CategoryBook, Min: 1},
	},
	gametime.ClassHerbology: {
		{Category: inventory.CategoryIngredient, Min: 1},
	},
	gametime.ClassAstronomy: {
		{Category: inventory.CategoryTelescope, Min: 1},
	},
	gametime.ClassDefenseArts: {
		{Category: inventory.CategoryWand, Min: 1},
	},
}

// RequiredClassCategories returns a copy of the requirement list for class.
//
// Precondition: class.Valid().
func RequiredClassCategories(class gametime.ClassType) []Requirement {
	reqs, ok := requiredClassCategories[class]
	if !ok {
		panic(fmt.Sprintf("classroom: unknown class type %q", class))
	}
	return append([]Requirement(nil), reqs...)
}

// CheckHasRequiredMaterials reports whether inv satisfies every requirement
// of class. A category is met when one item of that category holds at
// least the minimum quantity; two stacks of one ingredient each do not
// satisfy a minimum of two.
//
// Precondition: class.Valid().
func CheckHasRequiredMaterials(class gametime.ClassType, inv inventory.State) bool {
	return len(MissingMaterials(class, inv)) == 0
}

// MissingMaterials returns the requirements of class that inv does not meet,
// in table order. The result is empty when the student is ready.
//
// Precondition: class.Valid().
func MissingMaterials(class gametime.ClassType, inv inventory.State) []Requirement {
	var missing []Requirement
	for _, r := range RequiredClassCategories(class) {
		if inv.LargestStack(r.Category) < r.Min {
			missing = append(missing, r)
		}
	}
	return missing
}

// DescribeMissing renders missing requirements for a status line.
func DescribeMissing(missing []Requirement) string {
	parts := make([]string, len(missing))
	for i, r := range missing {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
