// Package sphere projects geographic coordinates onto a 2-D canvas
// with uniform zoom and padding (spec §4.2).
package sphere

import (
	"math"

	"transitcat.dev/transitcat/geo"
	"transitcat.dev/transitcat/svg"
)

const epsilon = 1e-6

// Projector maps Coordinates onto canvas-space Points.
type Projector struct {
	lonMin, latMax float64
	zoom           float64
	padding        float64
}

// New builds a Projector from the bounding box of coords and the given
// canvas size and padding. An empty coords slice yields an all-zero
// projector (every projection maps to the origin); a single point
// yields zoom 0 (maps to (padding, padding)).
func New(coords []geo.Coordinates, width, height, padding float64) Projector {
	if len(coords) == 0 {
		return Projector{}
	}

	lonMin, lonMax := coords[0].Longitude, coords[0].Longitude
	latMin, latMax := coords[0].Latitude, coords[0].Latitude
	for _, c := range coords[1:] {
		lonMin = math.Min(lonMin, c.Longitude)
		lonMax = math.Max(lonMax, c.Longitude)
		latMin = math.Min(latMin, c.Latitude)
		latMax = math.Max(latMax, c.Latitude)
	}

	var zx, zy float64
	haveZx, haveZy := false, false

	if dLon := lonMax - lonMin; math.Abs(dLon) > epsilon {
		zx = (width - 2*padding) / dLon
		haveZx = true
	}
	if dLat := latMax - latMin; math.Abs(dLat) > epsilon {
		zy = (height - 2*padding) / dLat
		haveZy = true
	}

	var zoom float64
	switch {
	case haveZx && haveZy:
		zoom = math.Min(zx, zy)
	case haveZx:
		zoom = zx
	case haveZy:
		zoom = zy
	default:
		zoom = 0
	}

	return Projector{lonMin: lonMin, latMax: latMax, zoom: zoom, padding: padding}
}

// Project maps a coordinate to canvas space. Y is inverted so that
// north is up.
func (p Projector) Project(c geo.Coordinates) svg.Point {
	return svg.Point{
		X: (c.Longitude-p.lonMin)*p.zoom + p.padding,
		Y: (p.latMax-c.Latitude)*p.zoom + p.padding,
	}
}
