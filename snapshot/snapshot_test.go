package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/geo"
	"transitcat.dev/transitcat/svg"
)

func fixture(t *testing.T) (*catalogue.Catalogue, config.RenderSettings, config.RoutingSettings) {
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", geo.Coordinates{Latitude: 55.6, Longitude: 37.6}))
	require.NoError(t, cat.AddStop("B", geo.Coordinates{Latitude: 55.7, Longitude: 37.7}))
	require.NoError(t, cat.AddStop("C", geo.Coordinates{Latitude: 55.8, Longitude: 37.8}))
	require.NoError(t, cat.SetRoadDistance("A", "B", 1000))
	require.NoError(t, cat.SetRoadDistance("B", "C", 1500))
	require.NoError(t, cat.AddBus("1", []string{"A", "B", "C"}, catalogue.Linear))
	require.NoError(t, cat.AddBus("2", []string{"A", "B", "A"}, catalogue.Circular))

	render := config.RenderSettings{
		Width: 600, Height: 400, Padding: 50,
		LineWidth: 14, StopRadius: 5,
		BusLabelFontSize: 20, BusLabelOffset: config.Offset{DX: 7, DY: 15},
		StopLabelFontSize: 18, StopLabelOffset: config.Offset{DX: 7, DY: -3},
		UnderlayerColor: svg.NewRGBAColor(255, 255, 255, 0.85),
		UnderlayerWidth: 3,
		ColorPalette:    []svg.Color{svg.NewNamedColor("green"), svg.NewRGBColor(255, 160, 0)},
	}
	routing := config.RoutingSettings{BusVelocityKmh: 40, BusWaitTimeMinutes: 6}

	return cat, render, routing
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cat, render, routing := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cat, render, routing))

	gotCat, gotRender, gotRouting, err := Load(&buf)
	require.NoError(t, err)

	// same stop ordering
	origNames := []string{}
	for _, s := range cat.Stops() {
		origNames = append(origNames, s.Name)
	}
	gotNames := []string{}
	for _, s := range gotCat.Stops() {
		gotNames = append(gotNames, s.Name)
	}
	assert.Equal(t, origNames, gotNames)

	// same bus ordering and definitions
	for i, b := range cat.Buses() {
		assert.Equal(t, b.Name, gotCat.Buses()[i].Name)
		assert.Equal(t, b.Kind, gotCat.Buses()[i].Kind)
		assert.Equal(t, b.Stops, gotCat.Buses()[i].Stops)
	}

	// same distances
	d1, ok1 := cat.RoadDistance("A", "B")
	d2, ok2 := gotCat.RoadDistance("A", "B")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, d1, d2)

	// same stop->bus sets
	assert.Equal(t, cat.StopInfo("A"), gotCat.StopInfo("A"))
	assert.Equal(t, cat.StopInfo("B"), gotCat.StopInfo("B"))

	assert.Equal(t, render, gotRender)
	assert.Equal(t, routing, gotRouting)
}

func TestLoadRejectsNegativeStopIndex(t *testing.T) {
	cat, render, routing := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cat, render, routing))

	body := buf.Bytes()
	// The first road entry's "from" index is an int64 right after the
	// stop table and the road count; corrupt it to -1 (all bits set) and
	// confirm decoding fails cleanly instead of panicking on a negative
	// slice index. Before it come the 8-byte length prefix, the magic,
	// the 8-byte stop count, then per stop an 8-byte name length, the
	// one-byte name and two float64 coordinates, then the 8-byte road
	// count.
	idx := 8 + len(magic) + 8 + 3*(8+1+8+8) + 8
	require.Equal(t, make([]byte, 8), body[idx:idx+8], "expected the first road entry's from index (stop A, index 0)")
	for i := 0; i < 8; i++ {
		body[idx+i] = 0xFF
	}

	_, _, _, err := Load(bytes.NewReader(body))
	assert.Error(t, err)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("garbage-that-is-long-enough-to-look-like-a-header")
	_, _, _, err := Load(&buf)
	assert.Error(t, err)
}

func TestColorRoundTripAllCases(t *testing.T) {
	cat := catalogue.New()
	render := config.RenderSettings{
		ColorPalette: []svg.Color{
			{},
			svg.NewNamedColor("blue"),
			svg.NewRGBColor(10, 20, 30),
			svg.NewRGBAColor(10, 20, 30, 0.25),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cat, render, config.RoutingSettings{}))
	_, gotRender, _, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, gotRender.ColorPalette, 4)
	for i, c := range render.ColorPalette {
		assert.Equal(t, c.String(), gotRender.ColorPalette[i].String())
	}
}
