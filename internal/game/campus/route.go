package campus

import (
	"fmt"
	"math"
)

// Route is the quickest walk between two locations.
type Route struct {
	// Stops lists the location IDs walked through, both ends included.
	Stops   []string
	Minutes int
}

// Route finds the quickest walk from one location to another. Walking to
// where you already stand is a zero-minute route of one stop.
//
// Postcondition: on success Stops[0] == from, Stops[len-1] == to and
// Minutes is the sum of the path times along Stops.
func (c *Campus) Route(from, to string) (Route, error) {
	if _, ok := c.locations[from]; !ok {
		return Route{}, fmt.Errorf("route from %q: %w", from, ErrUnknownLocation)
	}
	if _, ok := c.locations[to]; !ok {
		return Route{}, fmt.Errorf("route to %q: %w", to, ErrUnknownLocation)
	}

	dist := map[string]int{from: 0}
	prev := map[string]string{}
	done := map[string]bool{}
	for {
		cur, best := "", math.MaxInt
		for id, d := range dist {
			// Ties go to the smaller ID so routes are deterministic.
			if !done[id] && (d < best || d == best && id < cur) {
				cur, best = id, d
			}
		}
		if cur == "" {
			return Route{}, fmt.Errorf("route %q to %q: %w", from, to, ErrNoRoute)
		}
		if cur == to {
			break
		}
		done[cur] = true
		for _, p := range c.locations[cur].Paths {
			if d, seen := dist[p.To]; !seen || best+p.Minutes < d {
				dist[p.To] = best + p.Minutes
				prev[p.To] = cur
			}
		}
	}

	stops := []string{to}
	for at := to; at != from; {
		at = prev[at]
		stops = append(stops, at)
	}
	for i, j := 0, len(stops)-1; i < j; i, j = i+1, j-1 {
		stops[i], stops[j] = stops[j], stops[i]
	}
	return Route{Stops: stops, Minutes: dist[to]}, nil
}
