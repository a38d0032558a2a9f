package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownSpell is returned for ids the library does not contain.
	ErrUnknownSpell = errors.New("library: unknown spell")
	// ErrAlreadyKnown is returned when learning a spell twice.
	ErrAlreadyKnown = errors.New("library: spell already known")
	// ErrTierTooHigh is returned when a spell is above the student's tier.
	ErrTierTooHigh = errors.New("library: spell tier above student level")
)

// Spellbook is the immutable set of spell ids a student has learned.
type Spellbook struct {
	known map[string]bool
}

// NewSpellbook returns an empty spellbook.
func NewSpellbook() Spellbook {
	return Spellbook{known: map[string]bool{}}
}

// TierForLevel maps a student level to the highest spell tier they may
// learn.
func TierForLevel(level int) int {
	return min(MaxTier, max(MinTier, (level+1)/2))
}

// Learn adds id to the spellbook.
//
// Postcondition: On success Knows(id) is true; the receiver is unchanged.
func (b Spellbook) Learn(lib *Library, id string, level int) (Spellbook, error) {
	s, ok := lib.Spell(id)
	if !ok {
		return b, fmt.Errorf("learning %q: %w", id, ErrUnknownSpell)
	}
	if b.Knows(id) {
		return b, fmt.Errorf("learning %q: %w", id, ErrAlreadyKnown)
	}
	if s.Tier > TierForLevel(level) {
		return b, fmt.Errorf("learning %q (tier %d) at level %d: %w", id, s.Tier, level, ErrTierTooHigh)
	}
	out := Spellbook{known: make(map[string]bool, len(b.known)+1)}
	for k := range b.known {
		out.known[k] = true
	}
	out.known[id] = true
	return out, nil
}

// Knows reports whether id has been learned.
func (b Spellbook) Knows(id string) bool { return b.known[id] }

// Len returns the number of known spells.
func (b Spellbook) Len() int { return len(b.known) }

// IDs returns the known spell ids in sorted order.
func (b Spellbook) IDs() []string {
	out := make([]string, 0, len(b.known))
	for id := range b.known {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the spellbook as a sorted array of ids.
func (b Spellbook) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (b *Spellbook) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	out := NewSpellbook()
	for _, id := range ids {
		if id == "" {
			return errors.New("library: empty spell id in spellbook")
		}
		out.known[id] = true
	}
	*b = out
	return nil
}
