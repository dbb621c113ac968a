package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/geo"
	"transitcat.dev/transitcat/svg"
)

func fixtureSettings() config.RenderSettings {
	return config.RenderSettings{
		Width: 200, Height: 200, Padding: 10,
		LineWidth: 14, StopRadius: 5,
		BusLabelFontSize: 20, BusLabelOffset: config.Offset{DX: 7, DY: 15},
		StopLabelFontSize: 18, StopLabelOffset: config.Offset{DX: 7, DY: -3},
		UnderlayerColor: svg.NewRGBAColor(255, 255, 255, 0.85),
		UnderlayerWidth: 3,
		ColorPalette:    []svg.Color{svg.NewNamedColor("green"), svg.NewRGBColor(255, 160, 0), svg.NewNamedColor("red")},
	}
}

func fixtureCatalogue(t *testing.T) *catalogue.Catalogue {
	c := catalogue.New()
	require.NoError(t, c.AddStop("A", geo.Coordinates{Latitude: 55.6, Longitude: 37.6}))
	require.NoError(t, c.AddStop("B", geo.Coordinates{Latitude: 55.7, Longitude: 37.7}))
	require.NoError(t, c.AddStop("Lonely", geo.Coordinates{Latitude: 10, Longitude: 10}))
	require.NoError(t, c.AddBus("99", []string{"A", "B", "A"}, catalogue.Circular))
	return c
}

func TestMapLayerOrder(t *testing.T) {
	cat := fixtureCatalogue(t)
	out := Map(cat, fixtureSettings())

	iPolyline := strings.Index(out, "<polyline")
	iFirstText := strings.Index(out, "<text")
	iCircle := strings.Index(out, "<circle")

	require.NotEqual(t, -1, iPolyline)
	require.NotEqual(t, -1, iFirstText)
	require.NotEqual(t, -1, iCircle)
	assert.True(t, iPolyline < iFirstText)
	assert.True(t, iFirstText < iCircle)
}

func TestMapOmitsLonelyStopCircle(t *testing.T) {
	cat := fixtureCatalogue(t)
	out := Map(cat, fixtureSettings())
	assert.False(t, strings.Contains(out, ">Lonely<"))
	assert.Equal(t, 2, strings.Count(out, "<circle"))
}

func TestMapIsDeterministic(t *testing.T) {
	cat := fixtureCatalogue(t)
	settings := fixtureSettings()
	out1 := Map(cat, settings)
	out2 := Map(cat, settings)
	assert.Equal(t, out1, out2)
}

func TestMapSkipsEmptyBus(t *testing.T) {
	cat := fixtureCatalogue(t)
	require.NoError(t, cat.AddStop("C", geo.Coordinates{Latitude: 1, Longitude: 1}))
	require.NoError(t, cat.AddBus("empty", nil, catalogue.Linear))
	out := Map(cat, fixtureSettings())
	assert.False(t, strings.Contains(out, ">empty<"))
}
