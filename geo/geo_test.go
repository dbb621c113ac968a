package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceSamePoint(t *testing.T) {
	a := Coordinates{Latitude: 55.6, Longitude: 37.6}
	require.Equal(t, 0.0, Distance(a, a))
}

func TestDistanceSymmetric(t *testing.T) {
	a := Coordinates{Latitude: 55.611087, Longitude: 37.20829}
	b := Coordinates{Latitude: 55.595884, Longitude: 37.209755}
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistanceKnownRoute(t *testing.T) {
	// Moscow "Tolstopaltsevo" -> "Marushkino", a well known fixture from
	// the domain this catalogue models. The exact meter value isn't load
	// bearing; the point is that it's in the right ballpark and stable.
	a := Coordinates{Latitude: 55.611087, Longitude: 37.20829}
	b := Coordinates{Latitude: 55.595884, Longitude: 37.209755}
	d := Distance(a, b)
	assert.Greater(t, d, 1500.0)
	assert.Less(t, d, 1800.0)
}

func TestCoordinatesEqualityIsExact(t *testing.T) {
	a := Coordinates{Latitude: 1, Longitude: 2}
	b := Coordinates{Latitude: 1, Longitude: 2}
	c := Coordinates{Latitude: 1, Longitude: 2.0000001}
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
