// Package render builds the layered SVG map from a catalogue and a
// render settings struct (spec §4.3). Layer order and within-layer sort
// order are the rendering's observable output contract; nothing here
// may reorder them for convenience.
package render

import (
	"sort"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/geo"
	"transitcat.dev/transitcat/sphere"
	"transitcat.dev/transitcat/svg"
)

// Map renders the catalogue's full network as an SVG document string.
func Map(cat *catalogue.Catalogue, settings config.RenderSettings) string {
	buses := sortedNonEmptyBuses(cat)
	colors := assignColors(buses, settings.ColorPalette)

	projector := sphere.New(allTraversalCoords(cat, buses), settings.Width, settings.Height, settings.Padding)

	doc := &svg.Document{}
	addPolylines(doc, cat, buses, colors, projector, settings)
	addBusLabels(doc, cat, buses, colors, projector, settings)
	stopsWithBuses := stopsOnAnyBus(cat)
	addStopCircles(doc, stopsWithBuses, projector, settings)
	addStopLabels(doc, stopsWithBuses, projector, settings)

	return doc.Render()
}

func sortedNonEmptyBuses(cat *catalogue.Catalogue) []catalogue.Bus {
	out := []catalogue.Bus{}
	for _, b := range cat.Buses() {
		if len(b.Stops) > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// assignColors cycles the palette over non-empty buses in ascending
// name order (spec §3's deterministic color-assignment invariant).
func assignColors(buses []catalogue.Bus, palette []svg.Color) map[string]svg.Color {
	colors := map[string]svg.Color{}
	if len(palette) == 0 {
		return colors
	}
	for i, b := range buses {
		colors[b.Name] = palette[i%len(palette)]
	}
	return colors
}

func allTraversalCoords(cat *catalogue.Catalogue, buses []catalogue.Bus) []geo.Coordinates {
	coords := []geo.Coordinates{}
	for _, b := range buses {
		for _, name := range catalogue.Traversal(b) {
			if stop, ok := cat.FindStop(name); ok {
				coords = append(coords, stop.Coords)
			}
		}
	}
	return coords
}

func addPolylines(doc *svg.Document, cat *catalogue.Catalogue, buses []catalogue.Bus, colors map[string]svg.Color, p sphere.Projector, s config.RenderSettings) {
	for _, b := range buses {
		points := make([]svg.Point, 0)
		for _, name := range catalogue.Traversal(b) {
			if stop, ok := cat.FindStop(name); ok {
				points = append(points, p.Project(stop.Coords))
			}
		}
		doc.Add(svg.Polyline{
			Attributes: svg.Attributes{
				Fill:           svg.Color{},
				Stroke:         colors[b.Name],
				StrokeWidth:    s.LineWidth,
				HasStrokeWidth: true,
				StrokeLineCap:  "round",
				StrokeLineJoin: "round",
			},
			Points: points,
		})
	}
}

func addBusLabels(doc *svg.Document, cat *catalogue.Catalogue, buses []catalogue.Bus, colors map[string]svg.Color, p sphere.Projector, s config.RenderSettings) {
	for _, b := range buses {
		endpoints := []string{b.Stops[0]}
		if b.Kind == catalogue.Linear && b.Stops[len(b.Stops)-1] != b.Stops[0] {
			endpoints = append(endpoints, b.Stops[len(b.Stops)-1])
		}
		for _, name := range endpoints {
			stop, ok := cat.FindStop(name)
			if !ok {
				continue
			}
			pos := p.Project(stop.Coords)
			offset := svg.Point{X: s.BusLabelOffset.DX, Y: s.BusLabelOffset.DY}

			doc.Add(svg.Text{
				Attributes: svg.Attributes{
					Fill:           s.UnderlayerColor,
					Stroke:         s.UnderlayerColor,
					StrokeWidth:    s.UnderlayerWidth,
					HasStrokeWidth: true,
					StrokeLineCap:  "round",
					StrokeLineJoin: "round",
				},
				Position:   pos,
				Offset:     offset,
				FontSize:   s.BusLabelFontSize,
				FontFamily: "Verdana",
				FontWeight: "bold",
				Content:    b.Name,
			})
			doc.Add(svg.Text{
				Attributes: svg.Attributes{
					Fill: colors[b.Name],
				},
				Position:   pos,
				Offset:     offset,
				FontSize:   s.BusLabelFontSize,
				FontFamily: "Verdana",
				FontWeight: "bold",
				Content:    b.Name,
			})
		}
	}
}

func stopsOnAnyBus(cat *catalogue.Catalogue) []catalogue.Stop {
	out := []catalogue.Stop{}
	for _, stop := range cat.Stops() {
		if len(cat.StopInfo(stop.Name)) > 0 {
			out = append(out, stop)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func addStopCircles(doc *svg.Document, stops []catalogue.Stop, p sphere.Projector, s config.RenderSettings) {
	for _, stop := range stops {
		doc.Add(svg.Circle{
			Attributes: svg.Attributes{Fill: svg.NewNamedColor("white")},
			Center:     p.Project(stop.Coords),
			Radius:     s.StopRadius,
		})
	}
}

func addStopLabels(doc *svg.Document, stops []catalogue.Stop, p sphere.Projector, s config.RenderSettings) {
	for _, stop := range stops {
		pos := p.Project(stop.Coords)
		offset := svg.Point{X: s.StopLabelOffset.DX, Y: s.StopLabelOffset.DY}

		doc.Add(svg.Text{
			Attributes: svg.Attributes{
				Fill:           s.UnderlayerColor,
				Stroke:         s.UnderlayerColor,
				StrokeWidth:    s.UnderlayerWidth,
				HasStrokeWidth: true,
				StrokeLineCap:  "round",
				StrokeLineJoin: "round",
			},
			Position:   pos,
			Offset:     offset,
			FontSize:   s.StopLabelFontSize,
			FontFamily: "Verdana",
			Content:    stop.Name,
		})
		doc.Add(svg.Text{
			Attributes: svg.Attributes{Fill: svg.NewNamedColor("black")},
			Position:   pos,
			Offset:     offset,
			FontSize:   s.StopLabelFontSize,
			FontFamily: "Verdana",
			Content:    stop.Name,
		})
	}
}
