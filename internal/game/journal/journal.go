// Package journal is the student's append-only diary.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cory-johannsen/academy/internal/game/gametime"
)

// MaxEntryLength bounds the text of a single entry, in bytes.
const MaxEntryLength = 4000

var (
	// ErrEmptyEntry is returned for blank text.
	ErrEmptyEntry = errors.New("journal: entry text must not be empty")
	// ErrEntryTooLong is returned for text over MaxEntryLength.
	ErrEntryTooLong = errors.New("journal: entry text too long")
	// ErrUnknownEntry is returned when revising an id that does not exist.
	ErrUnknownEntry = errors.New("journal: unknown entry")
)

// Entry is one dated diary line. Revises names the entry this one
// supersedes, if any.
type Entry struct {
	ID      string            `json:"id"`
	At      gametime.GameTime `json:"at"`
	Text    string            `json:"text"`
	Revises string            `json:"revises,omitempty"`
}

// Journal is an immutable, ordered list of entries. Entries are never
// edited or removed; a revision is a new entry pointing at the old one.
type Journal struct {
	entries []Entry
}

// New returns an empty journal.
func New() Journal { return Journal{} }

// FromEntries rebuilds a journal from persisted entries.
//
// Postcondition: Returns an error if any id is empty or duplicated, or a
// revision points at an entry that does not precede it.
func FromEntries(entries []Entry) (Journal, error) {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return Journal{}, fmt.Errorf("journal: entry %d has no id", i)
		}
		if seen[e.ID] {
			return Journal{}, fmt.Errorf("journal: duplicate entry id %q", e.ID)
		}
		if e.Revises != "" && !seen[e.Revises] {
			return Journal{}, fmt.Errorf("journal: entry %q revises unknown entry %q", e.ID, e.Revises)
		}
		seen[e.ID] = true
	}
	return Journal{entries: append([]Entry(nil), entries...)}, nil
}

func checkText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyEntry
	}
	if len(text) > MaxEntryLength {
		return "", fmt.Errorf("%d bytes: %w", len(text), ErrEntryTooLong)
	}
	return text, nil
}

// Append adds a new entry written at at.
func (j Journal) Append(at gametime.GameTime, text string) (Journal, Entry, error) {
	return j.add(at, text, "")
}

// Revise appends an entry that supersedes id.
func (j Journal) Revise(id string, at gametime.GameTime, text string) (Journal, Entry, error) {
	if _, ok := j.Entry(id); !ok {
		return j, Entry{}, fmt.Errorf("revising %q: %w", id, ErrUnknownEntry)
	}
	return j.add(at, text, id)
}

func (j Journal) add(at gametime.GameTime, text, revises string) (Journal, Entry, error) {
	if err := at.Validate(); err != nil {
		return j, Entry{}, fmt.Errorf("journal: %w", err)
	}
	text, err := checkText(text)
	if err != nil {
		return j, Entry{}, err
	}
	e := Entry{ID: uuid.New().String(), At: at, Text: text, Revises: revises}
	out := make([]Entry, len(j.entries), len(j.entries)+1)
	copy(out, j.entries)
	return Journal{entries: append(out, e)}, e, nil
}

// Entry looks up an entry by id.
func (j Journal) Entry(id string) (Entry, bool) {
	for _, e := range j.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns every entry in write order.
func (j Journal) Entries() []Entry {
	return append([]Entry(nil), j.entries...)
}

// Len returns the number of entries.
func (j Journal) Len() int { return len(j.entries) }

// Latest returns the current text of each thread: entries that no later
// entry revises, in write order.
func (j Journal) Latest() []Entry {
	revised := make(map[string]bool)
	for _, e := range j.entries {
		if e.Revises != "" {
			revised[e.Revises] = true
		}
	}
	var out []Entry
	for _, e := range j.entries {
		if !revised[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// History returns id and every entry it revises, newest first.
func (j Journal) History(id string) []Entry {
	var out []Entry
	for id != "" {
		e, ok := j.Entry(id)
		if !ok {
			break
		}
		out = append(out, e)
		id = e.Revises
	}
	return out
}

// MarshalJSON encodes the journal as an array of entries.
func (j Journal) MarshalJSON() ([]byte, error) {
	entries := j.entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes and validates an array of entries.
func (j *Journal) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out, err := FromEntries(entries)
	if err != nil {
		return err
	}
	*j = out
	return nil
}
