// Package save persists the aggregate game state as a single versioned JSON
// blob and upgrades older blobs on load.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/inventory"
	"github.com/cory-johannsen/academy/internal/game/journal"
	"github.com/cory-johannsen/academy/internal/game/library"
	"github.com/cory-johannsen/academy/internal/game/student"
)

const (
	// SaveVersion is the version written by Encode. It only ever grows.
	SaveVersion = 3
	// SaveKey is the storage key holding the save blob.
	SaveKey = "academy.save"
	// DefaultLocation is where a new student wakes up.
	DefaultLocation = "dormitory"
)

// SaveGame is the aggregate root of everything a player can see.
type SaveGame struct {
	Version   int               `json:"version"`
	GameTime  gametime.GameTime `json:"gameTime"`
	Inventory inventory.State   `json:"inventory"`
	Journal   journal.Journal   `json:"journal"`
	Spells    library.Spellbook `json:"spells"`
	Location  string            `json:"location"`
	Player    student.Player    `json:"player"`

	// extra holds top-level keys this version does not model, written back
	// unchanged by Encode.
	extra map[string]json.RawMessage
}

// NewGame returns a fresh save at the default time with inv as the
// starting inventory.
func NewGame(location string, inv inventory.State) SaveGame {
	if location == "" {
		location = DefaultLocation
	}
	return SaveGame{
		Version:   SaveVersion,
		GameTime:  gametime.Default(),
		Inventory: inv,
		Journal:   journal.New(),
		Spells:    library.NewSpellbook(),
		Location:  location,
		Player:    student.DefaultPlayer(),
	}
}

// Validate checks the fields the JSON decoders of the parts do not.
func (g SaveGame) Validate() error {
	var errs []error
	if g.Version != SaveVersion {
		errs = append(errs, fmt.Errorf("version %d, want %d", g.Version, SaveVersion))
	}
	if err := g.GameTime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if g.Location == "" {
		errs = append(errs, errors.New("location must not be empty"))
	}
	if err := g.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("save: %w", errors.Join(errs...))
	}
	return nil
}
