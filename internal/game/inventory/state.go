package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// MaxTermProgress is the ceiling of the term-progress counter.
const MaxTermProgress = 100

var (
	// ErrUnknownItem is returned when an operation names an item not held.
	ErrUnknownItem = errors.New("inventory: item not held")
	// ErrInsufficientQuantity is returned when removing more than is held.
	ErrInsufficientQuantity = errors.New("inventory: insufficient quantity")
	// ErrNotConsumable is returned when using an item that has no effect.
	ErrNotConsumable = errors.New("inventory: item is not consumable")
	// ErrInsufficientGold is returned when spending more gold than is held.
	ErrInsufficientGold = errors.New("inventory: insufficient gold")
)

// State is an immutable snapshot of a student's belongings. Every mutating
// operation returns a new State and leaves the receiver untouched.
//
// Invariant: ids are unique; every held item has Quantity > 0;
// 0 <= termProgress <= MaxTermProgress; gold >= 0.
type State struct {
	items        map[string]Item
	termProgress int
	gold         int
}

// NewState returns an empty inventory.
func NewState() State {
	return State{items: make(map[string]Item)}
}

func (s State) clone() State {
	items := make(map[string]Item, len(s.items))
	for id, it := range s.items {
		if it.Effect != nil {
			eff := *it.Effect
			it.Effect = &eff
		}
		items[id] = it
	}
	return State{items: items, termProgress: s.termProgress, gold: s.gold}
}

// Add puts item into the inventory. If the id is already held the quantities
// are summed and the held item's other fields are kept.
//
// Precondition: item.Quantity >= 0 and item.ID is non-empty.
// Postcondition: Quantity(item.ID) == old Quantity(item.ID) + item.Quantity.
func (s State) Add(item Item) State {
	if item.Quantity < 0 {
		panic(fmt.Sprintf("inventory: Add called with negative quantity %d for %q", item.Quantity, item.ID))
	}
	if item.ID == "" {
		panic("inventory: Add called with empty item id")
	}
	out := s.clone()
	if held, ok := out.items[item.ID]; ok {
		held.Quantity += item.Quantity
		out.items[item.ID] = held
		return out
	}
	if item.Quantity == 0 {
		return out
	}
	if item.Effect != nil {
		eff := *item.Effect
		item.Effect = &eff
	}
	out.items[item.ID] = item
	return out
}

// Remove takes qty units of id out of the inventory. A stack that reaches
// zero is dropped.
//
// Precondition: qty > 0.
func (s State) Remove(id string, qty int) (State, error) {
	if qty <= 0 {
		panic(fmt.Sprintf("inventory: Remove called with quantity %d", qty))
	}
	held, ok := s.items[id]
	if !ok {
		return s, fmt.Errorf("removing %q: %w", id, ErrUnknownItem)
	}
	if held.Quantity < qty {
		return s, fmt.Errorf("removing %d of %q (have %d): %w", qty, id, held.Quantity, ErrInsufficientQuantity)
	}
	out := s.clone()
	held.Quantity -= qty
	if held.Quantity == 0 {
		delete(out.items, id)
	} else {
		out.items[id] = held
	}
	return out, nil
}

// Consume uses one unit of id, applies its term progress and returns the
// effect so the caller can apply the rest of it.
func (s State) Consume(id string) (State, ConsumableEffect, error) {
	held, ok := s.items[id]
	if !ok {
		return s, ConsumableEffect{}, fmt.Errorf("consuming %q: %w", id, ErrUnknownItem)
	}
	eff, ok := ConsumableConfig(held)
	if !ok {
		return s, ConsumableEffect{}, fmt.Errorf("consuming %q: %w", id, ErrNotConsumable)
	}
	out, err := s.Remove(id, 1)
	if err != nil {
		return s, ConsumableEffect{}, err
	}
	if eff.TermProgress > 0 {
		out = out.AdvanceTermProgress(eff.TermProgress)
	}
	return out, eff, nil
}

// AdvanceTermProgress adds amount to the term-progress counter, clamped to
// MaxTermProgress.
//
// Precondition: amount >= 0.
func (s State) AdvanceTermProgress(amount int) State {
	if amount < 0 {
		panic(fmt.Sprintf("inventory: AdvanceTermProgress called with negative amount %d", amount))
	}
	out := s.clone()
	out.termProgress = min(out.termProgress+amount, MaxTermProgress)
	return out
}

// TermProgress returns the term-progress counter.
func (s State) TermProgress() int { return s.termProgress }

// Gold returns the gold held.
func (s State) Gold() int { return s.gold }

// AddGold returns s with amount more gold.
//
// Precondition: amount >= 0.
func (s State) AddGold(amount int) State {
	if amount < 0 {
		panic(fmt.Sprintf("inventory: AddGold called with negative amount %d", amount))
	}
	out := s.clone()
	out.gold += amount
	return out
}

// SpendGold returns s with amount less gold.
func (s State) SpendGold(amount int) (State, error) {
	if amount < 0 {
		panic(fmt.Sprintf("inventory: SpendGold called with negative amount %d", amount))
	}
	if amount > s.gold {
		return s, fmt.Errorf("spending %d (have %d): %w", amount, s.gold, ErrInsufficientGold)
	}
	out := s.clone()
	out.gold -= amount
	return out, nil
}

// Item returns the held stack for id.
func (s State) Item(id string) (Item, bool) {
	it, ok := s.items[id]
	if ok && it.Effect != nil {
		eff := *it.Effect
		it.Effect = &eff
	}
	return it, ok
}

// Quantity returns how many units of id are held.
func (s State) Quantity(id string) int { return s.items[id].Quantity }

// Len returns the number of distinct items held.
func (s State) Len() int { return len(s.items) }

// Items returns a copy of every held stack ordered by id.
func (s State) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.clone().items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountCategory returns the total quantity held across all items of cat.
func (s State) CountCategory(cat Category) int {
	n := 0
	for _, it := range s.items {
		if it.Category == cat {
			n += it.Quantity
		}
	}
	return n
}

// LargestStack returns the biggest single-item quantity held in cat.
func (s State) LargestStack(cat Category) int {
	best := 0
	for _, it := range s.items {
		if it.Category == cat && it.Quantity > best {
			best = it.Quantity
		}
	}
	return best
}

type stateJSON struct {
	Items        map[string]Item `json:"items"`
	TermProgress int             `json:"termProgress"`
	Gold         int             `json:"gold"`
}

// MarshalJSON encodes the state as {items, termProgress, gold}.
func (s State) MarshalJSON() ([]byte, error) {
	items := s.items
	if items == nil {
		items = map[string]Item{}
	}
	return json.Marshal(stateJSON{Items: items, TermProgress: s.termProgress, Gold: s.gold})
}

// UnmarshalJSON decodes and validates a state.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewState()
	for id, it := range raw.Items {
		if it.ID != id {
			return fmt.Errorf("inventory: item keyed %q has id %q", id, it.ID)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("inventory: item %q has quantity %d", id, it.Quantity)
		}
		if !it.Category.Valid() {
			return fmt.Errorf("inventory: item %q has unknown category %q", id, it.Category)
		}
		out.items[id] = it
	}
	if raw.TermProgress < 0 || raw.TermProgress > MaxTermProgress {
		return fmt.Errorf("inventory: term progress %d out of range [0, %d]", raw.TermProgress, MaxTermProgress)
	}
	if raw.Gold < 0 {
		return fmt.Errorf("inventory: gold %d must be >= 0", raw.Gold)
	}
	out.termProgress = raw.TermProgress
	out.gold = raw.Gold
	*s = out
	return nil
}
