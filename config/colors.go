package config

import (
	"github.com/pkg/errors"

	"transitcat.dev/transitcat/svg"
	"transitcat.dev/transitcat/value"
)

// ColorFromValue decodes a color out of the structured-value tree. The
// input schema allows a bare string (named color) or a 3- or 4-element
// array ([r,g,b] or [r,g,b,a]), matching the discriminated union C9
// persists (§4.6).
func ColorFromValue(v value.Value) (svg.Color, error) {
	if s, ok := v.AsString(); ok {
		return svg.NewNamedColor(s), nil
	}
	arr, ok := v.AsArray()
	if !ok {
		return svg.Color{}, errors.New("color must be a string or an array")
	}
	switch len(arr) {
	case 3:
		r, g, b, err := rgbComponents(arr)
		if err != nil {
			return svg.Color{}, err
		}
		return svg.NewRGBColor(r, g, b), nil
	case 4:
		r, g, b, err := rgbComponents(arr[:3])
		if err != nil {
			return svg.Color{}, err
		}
		a, ok := arr[3].AsFloat()
		if !ok {
			return svg.Color{}, errors.New("color alpha must be a number")
		}
		return svg.NewRGBAColor(r, g, b, a), nil
	default:
		return svg.Color{}, errors.Errorf("color array must have 3 or 4 elements, got %d", len(arr))
	}
}

func rgbComponents(arr []value.Value) (r, g, b uint8, err error) {
	out := make([]uint8, 3)
	for i, v := range arr {
		n, ok := v.AsInt()
		if !ok || n < 0 || n > 255 {
			return 0, 0, 0, errors.Errorf("color component %d out of range", i)
		}
		out[i] = uint8(n)
	}
	return out[0], out[1], out[2], nil
}
