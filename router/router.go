// Package router builds the time-expanded routing graph from a
// catalogue and routing settings, and answers journey queries over it
// (spec §4.5). Vertices encode stop x {waiting, boarded} so that
// Dijkstra on one graph charges the wait-at-stop penalty exactly once
// per boarding.
package router

import (
	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/graph"
)

// Wait is a journey item: waiting at a stop to board.
type Wait struct {
	Stop string
	Time float64
}

// Ride is a journey item: riding a bus for some number of stops.
type Ride struct {
	Bus  string
	Time float64
	Span int
}

// Journey is the answer to a journey query: an ordered sequence of
// Wait/Ride items, alternating, and their total time.
type Journey struct {
	TotalTime float64
	Items     []interface{} // each is a Wait or a Ride
}

// Router answers journey queries over the time-expanded graph built
// once from a sealed catalogue.
type Router struct {
	g          *graph.Graph[float64]
	waitVertex map[string]int
}

// metersPerMinute converts a km/h velocity into the meters/minute used
// to turn road distances into travel times (spec §3).
func metersPerMinute(velocityKmh float64) float64 {
	return velocityKmh * 1000 / 60
}

// Build constructs the time-expanded graph. It never mutates the
// catalogue and is meant to run once, up front, in the serve phase.
func Build(cat *catalogue.Catalogue, settings config.RoutingSettings) *Router {
	waitVertex := map[string]int{}
	nextPair := 0

	assignID := func(stop string) {
		if _, ok := waitVertex[stop]; ok {
			return
		}
		waitVertex[stop] = 2 * nextPair
		nextPair++
	}

	for _, bus := range cat.Buses() {
		for _, stop := range catalogue.Traversal(bus) {
			assignID(stop)
		}
	}

	g := graph.New[float64](2 * nextPair)
	mpm := metersPerMinute(settings.BusVelocityKmh)

	for _, bus := range cat.Buses() {
		if len(bus.Stops) == 0 {
			continue
		}
		if bus.Kind == catalogue.Circular {
			addOneDirection(g, cat, waitVertex, bus.Name, bus.Stops, settings.BusWaitTimeMinutes, mpm)
		} else {
			addOneDirection(g, cat, waitVertex, bus.Name, bus.Stops, settings.BusWaitTimeMinutes, mpm)
			addOneDirection(g, cat, waitVertex, bus.Name, reversed(bus.Stops), settings.BusWaitTimeMinutes, mpm)
		}
	}

	return &Router{g: g, waitVertex: waitVertex}
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// addOneDirection is the "one-direction construction" spec §4.5
// describes: boarding edges at every index, and travel edges from each
// boarding to every later stop in seq, accumulating road distance as
// it goes.
func addOneDirection(g *graph.Graph[float64], cat *catalogue.Catalogue, waitVertex map[string]int, busName string, seq []string, waitTime, metersPerMin float64) {
	for i := range seq {
		wv := waitVertex[seq[i]]
		g.AddEdge(wv, wv+1, waitTime, seq[i], 0)

		accumulated := 0.0
		for j := i + 1; j < len(seq); j++ {
			meters := 0
			if d, ok := cat.RoadDistance(seq[j-1], seq[j]); ok {
				meters = d
			}
			accumulated += float64(meters) / metersPerMin
			g.AddEdge(wv+1, waitVertex[seq[j]], accumulated, busName, j-i)
		}
	}
}

// FindJourney runs Dijkstra from the waiting vertex of from to the
// waiting vertex of to. It returns false if either stop never appears
// on any bus route, or no journey exists.
func (r *Router) FindJourney(from, to string) (Journey, bool) {
	fromV, ok := r.waitVertex[from]
	if !ok {
		return Journey{}, false
	}
	toV, ok := r.waitVertex[to]
	if !ok {
		return Journey{}, false
	}

	edgeIDs, total, found := graph.ShortestPath(r.g, fromV, toV)
	if !found {
		return Journey{}, false
	}

	items := make([]interface{}, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		e := r.g.Edge(id)
		if e.Span == 0 {
			items = append(items, Wait{Stop: e.Label, Time: e.Weight})
		} else {
			items = append(items, Ride{Bus: e.Label, Time: e.Weight, Span: e.Span})
		}
	}

	return Journey{TotalTime: total, Items: items}, true
}
