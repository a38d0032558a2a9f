// Package campus provides the academy grounds: named locations joined by
// walking paths.
package campus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownLocation is returned for a name that matches no location.
	ErrUnknownLocation = errors.New("campus: unknown location")
	// ErrNoRoute is returned when two locations are not connected.
	ErrNoRoute = errors.New("campus: no route")
)

// Path is a walkable connection to another location.
type Path struct {
	// To is the ID of the destination location.
	To string
	// Minutes is the walking time, at least 1.
	Minutes int
}

// Location is a place a student can stand.
type Location struct {
	// ID uniquely identifies the location and is what saves store.
	ID string
	// Title is the display name. Schedule rooms refer to locations by title.
	Title       string
	Description string
	Paths       []Path
	// Properties holds free-form tags such as "indoors" or "lighting".
	Properties map[string]string
}

// PathTo returns the direct path from l to id, if one exists.
//
// Postcondition: Returns (path, true) if found, or (Path{}, false) otherwise.
func (l Location) PathTo(id string) (Path, bool) {
	for _, p := range l.Paths {
		if p.To == id {
			return p, true
		}
	}
	return Path{}, false
}

// Campus is the validated, read-only map of the grounds.
//
// Invariant: every path is walkable in both directions and every location is
// reachable from the start.
type Campus struct {
	locations map[string]*Location
	byTitle   map[string]string
	start     string
}

// New validates locs and builds a Campus. A path declared in one direction
// only is mirrored with the same walking time.
//
// Precondition: start must name one of locs.
// Postcondition: Returns a Campus satisfying its invariant or a non-nil error.
func New(start string, locs []Location) (*Campus, error) {
	c := &Campus{
		locations: make(map[string]*Location, len(locs)),
		byTitle:   make(map[string]string, len(locs)),
		start:     start,
	}
	for i := range locs {
		l := locs[i]
		if err := validateLocation(l); err != nil {
			return nil, err
		}
		if _, dup := c.locations[l.ID]; dup {
			return nil, fmt.Errorf("duplicate location ID %q", l.ID)
		}
		key := strings.ToLower(l.Title)
		if other, dup := c.byTitle[key]; dup {
			return nil, fmt.Errorf("locations %q and %q share title %q", other, l.ID, l.Title)
		}
		l.Paths = append([]Path(nil), l.Paths...)
		if l.Properties == nil {
			l.Properties = map[string]string{}
		}
		c.locations[l.ID] = &l
		c.byTitle[key] = l.ID
	}
	if _, ok := c.locations[start]; !ok {
		return nil, fmt.Errorf("start location %q not found", start)
	}
	for _, l := range c.locations {
		for _, p := range l.Paths {
			target, ok := c.locations[p.To]
			if !ok {
				return nil, fmt.Errorf("location %q: path targets unknown location %q", l.ID, p.To)
			}
			if _, ok := target.PathTo(l.ID); !ok {
				target.Paths = append(target.Paths, Path{To: l.ID, Minutes: p.Minutes})
			}
		}
	}
	if unreached := c.unreachable(); len(unreached) > 0 {
		return nil, fmt.Errorf("locations not reachable from %q: %s", start, strings.Join(unreached, ", "))
	}
	return c, nil
}

func validateLocation(l Location) error {
	if l.ID == "" {
		return errors.New("location ID must not be empty")
	}
	if l.Title == "" {
		return fmt.Errorf("location %q: title must not be empty", l.ID)
	}
	for _, p := range l.Paths {
		if p.To == "" {
			return fmt.Errorf("location %q: path has empty target", l.ID)
		}
		if p.To == l.ID {
			return fmt.Errorf("location %q: path leads to itself", l.ID)
		}
		if p.Minutes < 1 {
			return fmt.Errorf("location %q: path to %q must take at least 1 minute, got %d", l.ID, p.To, p.Minutes)
		}
	}
	return nil
}

func (c *Campus) unreachable() []string {
	seen := map[string]bool{c.start: true}
	queue := []string{c.start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, p := range c.locations[id].Paths {
			if !seen[p.To] {
				seen[p.To] = true
				queue = append(queue, p.To)
			}
		}
	}
	var out []string
	for id := range c.locations {
		if !seen[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Location returns a copy of the location with the given ID.
func (c *Campus) Location(id string) (Location, bool) {
	l, ok := c.locations[id]
	if !ok {
		return Location{}, false
	}
	return *l, true
}

// Find resolves name as a location ID or, case-insensitively, a title.
func (c *Campus) Find(name string) (Location, bool) {
	if l, ok := c.Location(name); ok {
		return l, true
	}
	if id, ok := c.byTitle[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c.Location(id)
	}
	return Location{}, false
}

// Start returns the location new students wake up in.
func (c *Campus) Start() Location { return *c.locations[c.start] }

// Len returns the number of locations.
func (c *Campus) Len() int { return len(c.locations) }

// Locations returns every location ordered by ID.
func (c *Campus) Locations() []Location {
	out := make([]Location, 0, len(c.locations))
	for _, l := range c.locations {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
