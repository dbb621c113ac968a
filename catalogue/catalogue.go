// Package catalogue holds the in-memory, append-only graph of stops,
// road distances and bus routes (spec §4.1), plus the statistics
// derived from it.
package catalogue

import (
	"sort"

	"transitcat.dev/transitcat/geo"
)

// Kind is a bus route's traversal kind.
type Kind int

const (
	Circular Kind = iota
	Linear
)

// DuplicateNameError is returned when a stop or bus name is added
// twice.
type DuplicateNameError struct{ Name string }

func (e *DuplicateNameError) Error() string { return "duplicate name: " + e.Name }

// UnknownStopError is returned when an operation references a stop
// that was never added.
type UnknownStopError struct{ Name string }

func (e *UnknownStopError) Error() string { return "unknown stop: " + e.Name }

// Stop is a named point with coordinates. Once added it is never
// mutated or removed.
type Stop struct {
	Name   string
	Coords geo.Coordinates
}

// Bus is a named, ordered sequence of stop names with a traversal kind.
// Once added it is never mutated or removed.
type Bus struct {
	Name  string
	Stops []string
	Kind  Kind
}

type roadKey struct {
	from, to string
}

// Catalogue is the append-only graph of stops, roads and buses. Create
// one with New: the zero value has nil lookup maps, and adding to it
// panics.
//
// Stops and buses live in insertion-ordered slices; a name->index map
// gives O(1) lookup. Neither slice element is ever removed once
// appended, so an index obtained from the maps remains valid for the
// catalogue's lifetime — the "no invalidating insertion" guarantee
// spec §3 requires, expressed the Go way (by never shrinking, instead
// of by pointer stability).
type Catalogue struct {
	stops     []Stop
	stopIndex map[string]int

	buses     []Bus
	busIndex  map[string]int

	roads map[roadKey]int

	// stopRoutes records, in bus-add order, which buses pass through
	// each stop. Output always sorts it (§4.1 stop_info).
	stopRoutes map[string][]string
}

// New returns an empty catalogue.
func New() *Catalogue {
	return &Catalogue{
		stopIndex:  map[string]int{},
		busIndex:   map[string]int{},
		roads:      map[roadKey]int{},
		stopRoutes: map[string][]string{},
	}
}

// AddStop appends a new stop. It fails with *DuplicateNameError if the
// name is already present.
func (c *Catalogue) AddStop(name string, coords geo.Coordinates) error {
	if _, ok := c.stopIndex[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	c.stopIndex[name] = len(c.stops)
	c.stops = append(c.stops, Stop{Name: name, Coords: coords})
	return nil
}

// SetRoadDistance records the directed distance from -> to, in meters.
// It fails with *UnknownStopError if either endpoint is missing.
func (c *Catalogue) SetRoadDistance(from, to string, meters int) error {
	if _, ok := c.stopIndex[from]; !ok {
		return &UnknownStopError{Name: from}
	}
	if _, ok := c.stopIndex[to]; !ok {
		return &UnknownStopError{Name: to}
	}
	c.roads[roadKey{from, to}] = meters
	return nil
}

// AddBus resolves every stop name, appends a new bus, and updates the
// stop->routes index. It fails with *DuplicateNameError or
// *UnknownStopError.
func (c *Catalogue) AddBus(name string, stopNames []string, kind Kind) error {
	if _, ok := c.busIndex[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	for _, s := range stopNames {
		if _, ok := c.stopIndex[s]; !ok {
			return &UnknownStopError{Name: s}
		}
	}

	c.busIndex[name] = len(c.buses)
	c.buses = append(c.buses, Bus{Name: name, Stops: append([]string{}, stopNames...), Kind: kind})

	seen := map[string]bool{}
	for _, s := range stopNames {
		if seen[s] {
			continue
		}
		seen[s] = true
		c.stopRoutes[s] = append(c.stopRoutes[s], name)
	}
	return nil
}

// FindStop looks up a stop by name.
func (c *Catalogue) FindStop(name string) (*Stop, bool) {
	i, ok := c.stopIndex[name]
	if !ok {
		return nil, false
	}
	return &c.stops[i], true
}

// FindBus looks up a bus by name.
func (c *Catalogue) FindBus(name string) (*Bus, bool) {
	i, ok := c.busIndex[name]
	if !ok {
		return nil, false
	}
	return &c.buses[i], true
}

// StopInfo returns the sorted set of bus names passing through the
// named stop. Empty (not nil) if the stop has no buses or doesn't
// exist.
func (c *Catalogue) StopInfo(name string) []string {
	buses := append([]string{}, c.stopRoutes[name]...)
	sort.Strings(buses)
	return buses
}

// RoadDistance looks up the directed distance from a to b, falling
// back to the reverse direction if the forward one was never set
// (spec §3's directional fallback). Absent if neither is set.
func (c *Catalogue) RoadDistance(a, b string) (int, bool) {
	if d, ok := c.roads[roadKey{a, b}]; ok {
		return d, true
	}
	if d, ok := c.roads[roadKey{b, a}]; ok {
		return d, true
	}
	return 0, false
}

// Stops returns all stops in insertion order.
func (c *Catalogue) Stops() []Stop { return c.stops }

// Buses returns all buses in insertion order.
func (c *Catalogue) Buses() []Bus { return c.buses }

// Traversal expands a bus's stop list into the full sequence of stops
// actually visited: as listed for a circular bus, there-and-back for a
// linear one.
func Traversal(b Bus) []string {
	if b.Kind == Circular || len(b.Stops) == 0 {
		return b.Stops
	}
	out := make([]string, 0, 2*len(b.Stops)-1)
	out = append(out, b.Stops...)
	for i := len(b.Stops) - 2; i >= 0; i-- {
		out = append(out, b.Stops[i])
	}
	return out
}
