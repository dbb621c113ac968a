package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcat.dev/transitcat/geo"
)

func must(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}

func TestAddStopDuplicate(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	err := c.AddStop("A", geo.Coordinates{})
	require.Error(t, err)
	_, isDup := err.(*DuplicateNameError)
	assert.True(t, isDup)
}

func TestSetRoadDistanceUnknownStop(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	err := c.SetRoadDistance("A", "B", 100)
	require.Error(t, err)
	_, isUnknown := err.(*UnknownStopError)
	assert.True(t, isUnknown)
}

func TestAddBusUnknownStop(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	err := c.AddBus("1", []string{"A", "B"}, Linear)
	require.Error(t, err)
}

func TestTraversalEmptyLinearBusDoesNotPanic(t *testing.T) {
	assert.Equal(t, []string(nil), Traversal(Bus{Name: "E", Kind: Linear}))
	assert.Equal(t, []string(nil), Traversal(Bus{Name: "E", Kind: Circular}))
}

func TestRoadDistanceFallback(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	must(t, c.AddStop("B", geo.Coordinates{}))
	must(t, c.SetRoadDistance("A", "B", 100))

	d, ok := c.RoadDistance("A", "B")
	require.True(t, ok)
	assert.Equal(t, 100, d)

	// reverse falls back since B->A was never set
	d, ok = c.RoadDistance("B", "A")
	require.True(t, ok)
	assert.Equal(t, 100, d)
}

func TestRoadDistanceExplicitDirectionWins(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	must(t, c.AddStop("B", geo.Coordinates{}))
	must(t, c.SetRoadDistance("A", "B", 100))
	must(t, c.SetRoadDistance("B", "A", 90))

	d, _ := c.RoadDistance("A", "B")
	assert.Equal(t, 100, d)
	d, _ = c.RoadDistance("B", "A")
	assert.Equal(t, 90, d)
}

func TestRoadDistanceAbsent(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	must(t, c.AddStop("B", geo.Coordinates{}))
	_, ok := c.RoadDistance("A", "B")
	assert.False(t, ok)
}

func TestStopInfoSortedAndEmpty(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	must(t, c.AddStop("B", geo.Coordinates{}))
	must(t, c.AddBus("9", []string{"A", "B"}, Linear))
	must(t, c.AddBus("3", []string{"A", "B"}, Linear))

	assert.Equal(t, []string{"3", "9"}, c.StopInfo("A"))
	assert.Equal(t, []string{}, c.StopInfo("nonexistent"))
}

func TestRouteStatsScenarioS1(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{Latitude: 55.6, Longitude: 37.6}))
	must(t, c.AddStop("B", geo.Coordinates{Latitude: 55.6, Longitude: 37.7}))
	must(t, c.SetRoadDistance("A", "B", 2000))
	must(t, c.SetRoadDistance("B", "A", 2000))
	must(t, c.AddBus("99", []string{"A", "B", "A"}, Circular))

	stats, err := c.RouteStats("99")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.StopCount)
	assert.Equal(t, 2, stats.UniqueStopCount)
	assert.InDelta(t, 4000.0, stats.RoadLength, 1e-9)

	d := geo.Distance(
		geo.Coordinates{Latitude: 55.6, Longitude: 37.6},
		geo.Coordinates{Latitude: 55.6, Longitude: 37.7},
	)
	assert.InDelta(t, 4000.0/(2*d), stats.Curvature, 1e-9)
}

func TestRouteStatsScenarioS2(t *testing.T) {
	c := New()
	for _, name := range []string{"A", "B", "C"} {
		must(t, c.AddStop(name, geo.Coordinates{}))
	}
	must(t, c.SetRoadDistance("A", "B", 1000))
	must(t, c.SetRoadDistance("B", "C", 1500))
	must(t, c.SetRoadDistance("C", "B", 1600))
	must(t, c.SetRoadDistance("B", "A", 900))
	must(t, c.AddBus("7", []string{"A", "B", "C"}, Linear))

	stats, err := c.RouteStats("7")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.StopCount)
	assert.InDelta(t, 5000.0, stats.RoadLength, 1e-9)
}

func TestRouteStatsNotFound(t *testing.T) {
	c := New()
	_, err := c.RouteStats("nope")
	assert.Equal(t, ErrNotFound, err)
}

func TestRouteStatsSingleStopIsNotFound(t *testing.T) {
	c := New()
	must(t, c.AddStop("A", geo.Coordinates{}))
	must(t, c.AddBus("1", []string{"A"}, Circular))
	_, err := c.RouteStats("1")
	assert.Equal(t, ErrNotFound, err)
}

func TestStopsAndBusesInsertionOrder(t *testing.T) {
	c := New()
	must(t, c.AddStop("Z", geo.Coordinates{}))
	must(t, c.AddStop("A", geo.Coordinates{}))
	names := []string{}
	for _, s := range c.Stops() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Z", "A"}, names)
}
