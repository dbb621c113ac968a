package catalogue

import (
	"errors"

	"transitcat.dev/transitcat/geo"
)

// ErrNotFound is returned by RouteStats for an unknown bus, and for a
// bus with fewer than two traversed stops (open question #3).
var ErrNotFound = errors.New("not found")

// RouteStats is the set of statistics derived on demand from a bus's
// definition (spec §3).
type RouteStats struct {
	StopCount       int
	UniqueStopCount int
	GeometricLength float64
	RoadLength      float64
	Curvature       float64
}

// RouteStats computes statistics for the named bus. It returns
// ErrNotFound if the bus is unknown, or if it has fewer than two
// traversed stops (curvature undefined). When the geometric length is
// zero (every traversed stop has the same coordinates), Curvature is
// left at 0 and no error is returned.
func (c *Catalogue) RouteStats(busName string) (RouteStats, error) {
	bus, ok := c.FindBus(busName)
	if !ok {
		return RouteStats{}, ErrNotFound
	}

	traversal := Traversal(*bus)
	if len(traversal) < 2 {
		return RouteStats{}, ErrNotFound
	}

	unique := map[string]bool{}
	for _, s := range traversal {
		unique[s] = true
	}

	var geomLen, roadLen float64
	for i := 0; i+1 < len(traversal); i++ {
		from, to := traversal[i], traversal[i+1]

		fromStop, _ := c.FindStop(from)
		toStop, _ := c.FindStop(to)
		geomLen += geo.Distance(fromStop.Coords, toStop.Coords)

		if d, ok := c.RoadDistance(from, to); ok {
			roadLen += float64(d)
		}
	}

	stats := RouteStats{
		StopCount:       len(traversal),
		UniqueStopCount: len(unique),
		GeometricLength: geomLen,
		RoadLength:      roadLen,
	}
	if geomLen > 0 {
		stats.Curvature = roadLen / geomLen
	}
	return stats, nil
}
