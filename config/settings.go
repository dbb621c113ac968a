// Package config holds render and routing settings (spec §3), the
// serialization (snapshot file) setting, and an optional YAML defaults
// overlay for the routing settings.
package config

import "transitcat.dev/transitcat/svg"

// Offset is a (dx, dy) label offset.
type Offset struct {
	DX float64
	DY float64
}

// RenderSettings configures the map renderer (C6).
type RenderSettings struct {
	Width  float64 `validate:"gt=0"`
	Height float64 `validate:"gt=0"`
	Padding float64 `validate:"gte=0"`

	LineWidth  float64 `validate:"gt=0"`
	StopRadius float64 `validate:"gt=0"`

	BusLabelFontSize int    `validate:"gt=0"`
	BusLabelOffset   Offset

	StopLabelFontSize int `validate:"gt=0"`
	StopLabelOffset   Offset

	UnderlayerColor svg.Color
	UnderlayerWidth float64 `validate:"gt=0"`

	ColorPalette []svg.Color `validate:"min=1"`
}

// RoutingSettings configures the transit router (C8).
type RoutingSettings struct {
	BusVelocityKmh     float64 `yaml:"bus_velocity_kmh" validate:"gt=0"`
	BusWaitTimeMinutes float64 `yaml:"bus_wait_time_minutes" validate:"gt=0"`
}

// SerializationSettings names the snapshot file both make_base and
// process_requests operate on (spec §6, mirroring the original's
// serialization_settings.file round trip).
type SerializationSettings struct {
	File string `validate:"required"`
}
