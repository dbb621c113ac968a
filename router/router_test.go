package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/geo"
)

func TestFindJourneyScenarioS4(t *testing.T) {
	cat := catalogue.New()
	for _, s := range []string{"U", "V", "W"} {
		require.NoError(t, cat.AddStop(s, geo.Coordinates{}))
	}
	require.NoError(t, cat.SetRoadDistance("U", "V", 1200))
	require.NoError(t, cat.SetRoadDistance("V", "W", 1800))
	require.NoError(t, cat.AddBus("L", []string{"U", "V", "W"}, catalogue.Linear))

	r := Build(cat, config.RoutingSettings{BusVelocityKmh: 36, BusWaitTimeMinutes: 6})

	journey, ok := r.FindJourney("U", "W")
	require.True(t, ok)
	assert.InDelta(t, 11.0, journey.TotalTime, 1e-9)
	require.Len(t, journey.Items, 2)

	wait, isWait := journey.Items[0].(Wait)
	require.True(t, isWait)
	assert.Equal(t, "U", wait.Stop)
	assert.InDelta(t, 6.0, wait.Time, 1e-9)

	ride, isRide := journey.Items[1].(Ride)
	require.True(t, isRide)
	assert.Equal(t, "L", ride.Bus)
	assert.Equal(t, 2, ride.Span)
	assert.InDelta(t, 5.0, ride.Time, 1e-9)
}

func TestFindJourneyUnknownStop(t *testing.T) {
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", geo.Coordinates{}))
	require.NoError(t, cat.AddBus("1", []string{"A"}, catalogue.Circular))
	r := Build(cat, config.RoutingSettings{BusVelocityKmh: 36, BusWaitTimeMinutes: 6})

	_, ok := r.FindJourney("A", "nonexistent")
	assert.False(t, ok)
}

func TestFindJourneyTotalEqualsSumOfItems(t *testing.T) {
	cat := catalogue.New()
	for _, s := range []string{"A", "B", "C", "D"} {
		require.NoError(t, cat.AddStop(s, geo.Coordinates{}))
	}
	require.NoError(t, cat.SetRoadDistance("A", "B", 600))
	require.NoError(t, cat.SetRoadDistance("B", "C", 600))
	require.NoError(t, cat.SetRoadDistance("C", "D", 600))
	require.NoError(t, cat.AddBus("1", []string{"A", "B", "C", "D", "A"}, catalogue.Circular))

	r := Build(cat, config.RoutingSettings{BusVelocityKmh: 36, BusWaitTimeMinutes: 2})
	journey, ok := r.FindJourney("A", "D")
	require.True(t, ok)

	sum := 0.0
	for _, item := range journey.Items {
		switch x := item.(type) {
		case Wait:
			sum += x.Time
		case Ride:
			sum += x.Time
		}
	}
	assert.InDelta(t, journey.TotalTime, sum, 1e-9)
}

func TestFindJourneyItemsAlternate(t *testing.T) {
	cat := catalogue.New()
	for _, s := range []string{"A", "B", "C"} {
		require.NoError(t, cat.AddStop(s, geo.Coordinates{}))
	}
	require.NoError(t, cat.SetRoadDistance("A", "B", 100))
	require.NoError(t, cat.SetRoadDistance("B", "C", 100))
	require.NoError(t, cat.AddBus("1", []string{"A", "B", "C"}, catalogue.Linear))

	r := Build(cat, config.RoutingSettings{BusVelocityKmh: 36, BusWaitTimeMinutes: 1})
	journey, ok := r.FindJourney("A", "C")
	require.True(t, ok)

	for i := 0; i+1 < len(journey.Items); i++ {
		_, aWait := journey.Items[i].(Wait)
		_, bWait := journey.Items[i+1].(Wait)
		if aWait {
			assert.False(t, bWait, "Wait immediately followed by Wait")
		}
		_, aRide := journey.Items[i].(Ride)
		_, bRide := journey.Items[i+1].(Ride)
		if aRide {
			assert.False(t, bRide, "Ride immediately followed by Ride without Wait")
		}
	}
}
