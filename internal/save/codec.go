package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cory-johannsen/academy/internal/game/gametime"
	"github.com/cory-johannsen/academy/internal/game/student"
)

var (
	// ErrCorrupt is returned for blobs that are not a well-formed save.
	ErrCorrupt = errors.New("save: corrupt save data")
	// ErrUnsupportedVersion is returned for versions newer than SaveVersion
	// or older than any known shape.
	ErrUnsupportedVersion = errors.New("save: unsupported save version")
)

// migration rewrites a blob of version n into version n+1.
type migration func(data []byte) ([]byte, error)

// migrations is keyed by the version each step upgrades from.
var migrations = map[int]migration{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
}

// Encode serializes g tagged with SaveVersion.
func Encode(g SaveGame) ([]byte, error) {
	g.Version = SaveVersion
	if err := g.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("save: encoding: %w", err)
	}
	for _, key := range slices.Sorted(maps.Keys(g.extra)) {
		path := escapeKey(key)
		if gjson.GetBytes(data, path).Exists() {
			continue
		}
		if data, err = sjson.SetRawBytes(data, path, g.extra[key]); err != nil {
			return nil, fmt.Errorf("save: encoding %q: %w", key, err)
		}
	}
	return data, nil
}

// Version reads the version tag of a blob without decoding the rest.
func Version(data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("invalid JSON: %w", ErrCorrupt)
	}
	v := gjson.GetBytes(data, "version")
	if v.Type != gjson.Number || v.Num != float64(int(v.Num)) {
		return 0, fmt.Errorf("missing or non-integer version: %w", ErrCorrupt)
	}
	return int(v.Num), nil
}

// Migrate upgrades data to SaveVersion one step at a time.
//
// Postcondition: On success the result's version tag equals SaveVersion and
// every field of the input is still present.
func Migrate(data []byte) ([]byte, error) {
	v, err := Version(data)
	if err != nil {
		return nil, err
	}
	if v > SaveVersion {
		return nil, fmt.Errorf("version %d is newer than %d: %w", v, SaveVersion, ErrUnsupportedVersion)
	}
	for ; v < SaveVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration from version %d: %w", v, ErrUnsupportedVersion)
		}
		if data, err = step(data); err != nil {
			if !errors.Is(err, ErrCorrupt) {
				err = fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
			return nil, fmt.Errorf("migrating from version %d: %w", v, err)
		}
		if data, err = sjson.SetBytes(data, "version", v+1); err != nil {
			return nil, fmt.Errorf("migrating from version %d: %w", v, err)
		}
	}
	return data, nil
}

// Decode migrates data forward and decodes it.
func Decode(data []byte) (SaveGame, error) {
	migrated, err := Migrate(data)
	if err != nil {
		return SaveGame{}, err
	}
	var g SaveGame
	if err := json.Unmarshal(migrated, &g); err != nil {
		return SaveGame{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := g.Validate(); err != nil {
		return SaveGame{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	g.extra = unknownKeys(migrated)
	return g, nil
}

// modelledKeys are the top-level keys SaveGame decodes itself.
var modelledKeys = map[string]bool{
	"version": true, "gameTime": true, "inventory": true, "journal": true,
	"spells": true, "location": true, "player": true,
}

// unknownKeys collects the top-level members of data that SaveGame does
// not model. It returns nil when there are none.
func unknownKeys(data []byte) map[string]json.RawMessage {
	var extra map[string]json.RawMessage
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if modelledKeys[key.String()] {
			return true
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return extra
}

// escapeKey makes an item id safe to use as one sjson path component.
func escapeKey(id string) string {
	r := strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return r.Replace(id)
}

// migrateV1ToV2 adds minutes and the elapsed day count to the clock, turns
// the inventory item list into a map keyed by id, adds term progress, and
// turns plain-text journal lines into dated entries.
//
// A version 1 clock has no day count, so the save is placed in the first
// week. Duplicate item ids are merged by summing quantities; stacks with no
// quantity are dropped.
func migrateV1ToV2(data []byte) ([]byte, error) {
	day := gametime.Day(gjson.GetBytes(data, "gameTime.day").String())
	if !day.Valid() {
		return nil, fmt.Errorf("gameTime.day %q: %w", day, ErrCorrupt)
	}
	var err error
	set := func(path string, value any) {
		if err == nil {
			data, err = sjson.SetBytes(data, path, value)
		}
	}
	setRaw := func(path, raw string) {
		if err == nil {
			data, err = sjson.SetRawBytes(data, path, []byte(raw))
		}
	}

	if !gjson.GetBytes(data, "gameTime.minute").Exists() {
		set("gameTime.minute", 0)
	}
	set("gameTime.dayCount", day.Index())

	items := gjson.GetBytes(data, "inventory.items")
	if items.Exists() && !items.IsArray() {
		return nil, fmt.Errorf("inventory.items is not a list: %w", ErrCorrupt)
	}
	setRaw("inventory.items", "{}")
	for _, it := range items.Array() {
		id := it.Get("id").String()
		qty := it.Get("quantity").Int()
		if id == "" {
			return nil, fmt.Errorf("inventory item without id: %w", ErrCorrupt)
		}
		if qty <= 0 {
			continue
		}
		path := "inventory.items." + escapeKey(id)
		if held := gjson.GetBytes(data, path+".quantity"); held.Exists() {
			set(path+".quantity", held.Int()+qty)
			continue
		}
		setRaw(path, it.Raw)
	}
	if !gjson.GetBytes(data, "inventory.termProgress").Exists() {
		set("inventory.termProgress", 0)
	}

	stamp := gjson.GetBytes(data, "gameTime").Raw
	lines := gjson.GetBytes(data, "journal")
	if err == nil && lines.IsArray() {
		entries := "[]"
		for i, line := range lines.Array() {
			if line.Type != gjson.String {
				return nil, fmt.Errorf("journal line %d is not text: %w", i, ErrCorrupt)
			}
			if entries, err = sjson.Set(entries, "-1", map[string]string{"id": fmt.Sprintf("legacy-%d", i+1), "text": line.String()}); err != nil {
				break
			}
			if entries, err = sjson.SetRaw(entries, fmt.Sprintf("%d.at", i), stamp); err != nil {
				break
			}
		}
		setRaw("journal", entries)
	}
	return data, err
}

// migrateV2ToV3 adds gold and the combat profile.
func migrateV2ToV3(data []byte) ([]byte, error) {
	var err error
	if !gjson.GetBytes(data, "inventory.gold").Exists() {
		if data, err = sjson.SetBytes(data, "inventory.gold", 0); err != nil {
			return nil, err
		}
	}
	if !gjson.GetBytes(data, "player").Exists() {
		player, merr := json.Marshal(student.DefaultPlayer())
		if merr != nil {
			return nil, merr
		}
		if data, err = sjson.SetRawBytes(data, "player", player); err != nil {
			return nil, err
		}
	}
	return data, nil
}
