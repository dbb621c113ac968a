package dispatch

import (
	"github.com/pkg/errors"

	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/svg"
	"transitcat.dev/transitcat/value"
)

func parseOffset(doc value.Value, key string) (config.Offset, error) {
	arr, err := doc.GetArray(key)
	if err != nil {
		return config.Offset{}, err
	}
	if len(arr) != 2 {
		return config.Offset{}, errors.Errorf("%s must have exactly 2 elements", key)
	}
	dx, ok := arr[0].AsFloat()
	if !ok {
		return config.Offset{}, errors.Errorf("%s[0] is not a number", key)
	}
	dy, ok := arr[1].AsFloat()
	if !ok {
		return config.Offset{}, errors.Errorf("%s[1] is not a number", key)
	}
	return config.Offset{DX: dx, DY: dy}, nil
}

func parseRenderSettings(doc value.Value) (config.RenderSettings, error) {
	rs, err := doc.GetDict("render_settings")
	if err != nil {
		return config.RenderSettings{}, err
	}

	var s config.RenderSettings
	var fieldErr error
	get := func(key string) float64 {
		if fieldErr != nil {
			return 0
		}
		v, err := rs.GetFloat(key)
		if err != nil {
			fieldErr = err
		}
		return v
	}

	s.Width = get("width")
	s.Height = get("height")
	s.Padding = get("padding")
	s.LineWidth = get("line_width")
	s.StopRadius = get("stop_radius")
	s.UnderlayerWidth = get("underlayer_width")
	if fieldErr != nil {
		return config.RenderSettings{}, errors.Wrap(fieldErr, "parsing render_settings")
	}

	busFontSize, err := rs.GetInt("bus_label_font_size")
	if err != nil {
		return config.RenderSettings{}, err
	}
	s.BusLabelFontSize = int(busFontSize)

	stopFontSize, err := rs.GetInt("stop_label_font_size")
	if err != nil {
		return config.RenderSettings{}, err
	}
	s.StopLabelFontSize = int(stopFontSize)

	if s.BusLabelOffset, err = parseOffset(rs, "bus_label_offset"); err != nil {
		return config.RenderSettings{}, err
	}
	if s.StopLabelOffset, err = parseOffset(rs, "stop_label_offset"); err != nil {
		return config.RenderSettings{}, err
	}

	underlayerColorVal, ok := rs.Get("underlayer_color")
	if !ok {
		return config.RenderSettings{}, errors.New("missing render_settings.underlayer_color")
	}
	if s.UnderlayerColor, err = config.ColorFromValue(underlayerColorVal); err != nil {
		return config.RenderSettings{}, errors.Wrap(err, "parsing underlayer_color")
	}

	palette, err := rs.GetArray("color_palette")
	if err != nil {
		return config.RenderSettings{}, err
	}
	colors := make([]svg.Color, 0, len(palette))
	for _, c := range palette {
		parsed, err := config.ColorFromValue(c)
		if err != nil {
			return config.RenderSettings{}, errors.Wrap(err, "parsing color_palette entry")
		}
		colors = append(colors, parsed)
	}
	s.ColorPalette = colors

	return s, nil
}

// parseRoutingSettings reads routing_settings from the request. Both
// fields are optional here: a request may omit either (or the whole
// dict) and rely on config.Defaults.ApplyTo to fill the gap from the
// house-defaults overlay, rather than failing the build outright.
func parseRoutingSettings(doc value.Value) (config.RoutingSettings, error) {
	rs, ok := doc.Get("routing_settings")
	if !ok {
		return config.RoutingSettings{}, nil
	}

	var s config.RoutingSettings
	if v, ok := rs.Get("bus_velocity"); ok {
		velocity, ok := v.AsFloat()
		if !ok {
			return config.RoutingSettings{}, errors.New("routing_settings.bus_velocity is not a number")
		}
		s.BusVelocityKmh = velocity
	}
	if v, ok := rs.Get("bus_wait_time"); ok {
		wait, ok := v.AsFloat()
		if !ok {
			return config.RoutingSettings{}, errors.New("routing_settings.bus_wait_time is not a number")
		}
		s.BusWaitTimeMinutes = wait
	}
	return s, nil
}

func parseSerializationSettings(doc value.Value) (config.SerializationSettings, error) {
	ss, err := doc.GetDict("serialization_settings")
	if err != nil {
		return config.SerializationSettings{}, err
	}
	file, err := ss.GetString("file")
	if err != nil {
		return config.SerializationSettings{}, err
	}
	return config.SerializationSettings{File: file}, nil
}
