// Package snapshot is the binary codec that separates base construction
// from query serving (spec §4.6, §6): a single self-contained message
// capturing the sealed catalogue plus render/routing settings, with
// stop and bus identity preserved as positional indices.
//
// No protobuf code generation is available in this project (it would
// require running protoc), so the wire format is a hand-rolled,
// length-prefixed binary encoding built directly on encoding/binary —
// the literal reading of spec §4.6's "length-prefixed message
// encoding".
package snapshot

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/geo"
	"transitcat.dev/transitcat/svg"
)

const magic = "TCS1"

// Save writes the catalogue and settings as a single binary message.
func Save(w io.Writer, cat *catalogue.Catalogue, render config.RenderSettings, routing config.RoutingSettings) error {
	var buf bytes.Buffer
	enc := &encoder{buf: &buf}

	enc.putRaw([]byte(magic))
	putCatalogue(enc, cat)
	putRenderSettings(enc, render)
	putRoutingSettings(enc, routing)

	if enc.err != nil {
		return errors.Wrap(enc.err, "encoding snapshot")
	}

	length := uint64(buf.Len())
	if err := binary.Write(w, binary.LittleEndian, length); err != nil {
		return errors.Wrap(err, "writing snapshot length prefix")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "writing snapshot body")
	}
	return nil
}

// Load reads a snapshot written by Save, rebuilding the catalogue with
// the same stop and bus insertion order it was saved with.
func Load(r io.Reader) (*catalogue.Catalogue, config.RenderSettings, config.RoutingSettings, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, errors.Wrap(err, "reading snapshot length prefix")
	}

	if length > 1<<32 {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, errors.Errorf("corrupt snapshot: implausible length %d", length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, errors.Wrap(err, "reading snapshot body")
	}

	dec := &decoder{r: bytes.NewReader(body)}

	got := dec.getRaw(len(magic))
	if dec.err == nil && string(got) != magic {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, errors.New("snapshot magic mismatch")
	}

	cat := getCatalogue(dec)
	render := getRenderSettings(dec)
	routing := getRoutingSettings(dec)

	if dec.err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, errors.Wrap(dec.err, "decoding snapshot")
	}

	return cat, render, routing, nil
}

func putCatalogue(e *encoder, cat *catalogue.Catalogue) {
	stops := cat.Stops()
	e.putInt64(int64(len(stops)))
	index := map[string]int64{}
	for i, s := range stops {
		index[s.Name] = int64(i)
		e.putString(s.Name)
		e.putFloat64(s.Coords.Latitude)
		e.putFloat64(s.Coords.Longitude)
	}

	roads := collectRoads(cat, stops)
	e.putInt64(int64(len(roads)))
	for _, rd := range roads {
		e.putInt64(index[rd.from])
		e.putInt64(index[rd.to])
		e.putInt64(int64(rd.meters))
	}

	buses := cat.Buses()
	e.putInt64(int64(len(buses)))
	for _, b := range buses {
		e.putString(b.Name)
		e.putUint8(uint8(b.Kind))
		e.putInt64(int64(len(b.Stops)))
		for _, s := range b.Stops {
			e.putInt64(index[s])
		}
	}
}

type roadEntry struct {
	from, to string
	meters   int
}

// collectRoads walks every ordered stop pair that could plausibly have
// been set (every pair appearing consecutively along some bus's
// traversal, in both directions) and keeps each one for which
// RoadDistance resolves a value, directly or through the
// reverse-direction fallback (a fallback value is persisted as if it
// had been set explicitly). The catalogue itself doesn't expose raw
// iteration over its internal road map, by design (callers go through
// RoadDistance so the directional-fallback rule is always honored); the
// snapshot instead persists exactly the distances exercised by at least
// one route, which is sufficient to reconstruct every RouteStats and
// routing-graph answer the original catalogue could produce.
func collectRoads(cat *catalogue.Catalogue, stops []catalogue.Stop) []roadEntry {
	seen := map[[2]string]bool{}
	out := []roadEntry{}
	add := func(a, b string) {
		if a == b {
			return
		}
		for _, pair := range [][2]string{{a, b}, {b, a}} {
			if seen[pair] {
				continue
			}
			seen[pair] = true
			if d, ok := cat.RoadDistance(pair[0], pair[1]); ok {
				out = append(out, roadEntry{from: pair[0], to: pair[1], meters: d})
			}
		}
	}
	for _, b := range cat.Buses() {
		traversal := catalogue.Traversal(b)
		for i := 0; i+1 < len(traversal); i++ {
			add(traversal[i], traversal[i+1])
		}
	}
	return out
}

func getCatalogue(d *decoder) *catalogue.Catalogue {
	cat := catalogue.New()

	stopCount := d.getCount()
	names := make([]string, 0, stopCount)
	for i := int64(0); i < stopCount; i++ {
		name := d.getString()
		lat := d.getFloat64()
		lon := d.getFloat64()
		names = append(names, name)
		if d.err == nil {
			d.err = cat.AddStop(name, geo.Coordinates{Latitude: lat, Longitude: lon})
		}
	}

	validIndex := func(idx int64) bool { return idx >= 0 && int(idx) < len(names) }

	roadCount := d.getCount()
	for i := int64(0); i < roadCount; i++ {
		from := d.getInt64()
		to := d.getInt64()
		meters := d.getInt64()
		if d.err == nil && validIndex(from) && validIndex(to) {
			d.err = cat.SetRoadDistance(names[from], names[to], int(meters))
		} else if d.err == nil {
			d.err = errors.New("corrupt snapshot: road distance references unknown stop index")
		}
	}

	busCount := d.getCount()
	for i := int64(0); i < busCount; i++ {
		name := d.getString()
		kind := catalogue.Kind(d.getUint8())
		stopRefCount := d.getCount()
		stopNames := make([]string, 0, stopRefCount)
		for j := int64(0); j < stopRefCount; j++ {
			idx := d.getInt64()
			if d.err != nil {
				break
			}
			if !validIndex(idx) {
				d.err = errors.New("corrupt snapshot: bus references unknown stop index")
				break
			}
			stopNames = append(stopNames, names[idx])
		}
		if d.err == nil {
			d.err = cat.AddBus(name, stopNames, kind)
		}
	}

	return cat
}

func putColor(e *encoder, c svg.Color) {
	name, r, g, b, a := c.Components()
	switch c.Kind() {
	case svg.ColorNone:
		e.putUint8(0)
	case svg.ColorNamed:
		e.putUint8(1)
		e.putString(name)
	case svg.ColorRGB:
		e.putUint8(2)
		e.putUint8(r)
		e.putUint8(g)
		e.putUint8(b)
	case svg.ColorRGBA:
		e.putUint8(3)
		e.putUint8(r)
		e.putUint8(g)
		e.putUint8(b)
		e.putFloat64(a)
	default:
		e.putUint8(0)
	}
}

func getColor(d *decoder) svg.Color {
	switch d.getUint8() {
	case 0:
		return svg.Color{}
	case 1:
		return svg.NewNamedColor(d.getString())
	case 2:
		r, g, b := d.getUint8(), d.getUint8(), d.getUint8()
		return svg.NewRGBColor(r, g, b)
	case 3:
		r, g, b := d.getUint8(), d.getUint8(), d.getUint8()
		a := d.getFloat64()
		return svg.NewRGBAColor(r, g, b, a)
	default:
		if d.err == nil {
			d.err = errors.New("unknown color discriminant")
		}
		return svg.Color{}
	}
}

func putRenderSettings(e *encoder, s config.RenderSettings) {
	e.putFloat64(s.Width)
	e.putFloat64(s.Height)
	e.putFloat64(s.Padding)
	e.putFloat64(s.LineWidth)
	e.putFloat64(s.StopRadius)
	e.putInt64(int64(s.BusLabelFontSize))
	e.putFloat64(s.BusLabelOffset.DX)
	e.putFloat64(s.BusLabelOffset.DY)
	e.putInt64(int64(s.StopLabelFontSize))
	e.putFloat64(s.StopLabelOffset.DX)
	e.putFloat64(s.StopLabelOffset.DY)
	putColor(e, s.UnderlayerColor)
	e.putFloat64(s.UnderlayerWidth)
	e.putInt64(int64(len(s.ColorPalette)))
	for _, c := range s.ColorPalette {
		putColor(e, c)
	}
}

func getRenderSettings(d *decoder) config.RenderSettings {
	var s config.RenderSettings
	s.Width = d.getFloat64()
	s.Height = d.getFloat64()
	s.Padding = d.getFloat64()
	s.LineWidth = d.getFloat64()
	s.StopRadius = d.getFloat64()
	s.BusLabelFontSize = int(d.getInt64())
	s.BusLabelOffset.DX = d.getFloat64()
	s.BusLabelOffset.DY = d.getFloat64()
	s.StopLabelFontSize = int(d.getInt64())
	s.StopLabelOffset.DX = d.getFloat64()
	s.StopLabelOffset.DY = d.getFloat64()
	s.UnderlayerColor = getColor(d)
	s.UnderlayerWidth = d.getFloat64()
	count := d.getCount()
	s.ColorPalette = make([]svg.Color, 0, count)
	for i := int64(0); i < count; i++ {
		s.ColorPalette = append(s.ColorPalette, getColor(d))
	}
	return s
}

func putRoutingSettings(e *encoder, s config.RoutingSettings) {
	e.putFloat64(s.BusVelocityKmh)
	e.putFloat64(s.BusWaitTimeMinutes)
}

func getRoutingSettings(d *decoder) config.RoutingSettings {
	return config.RoutingSettings{
		BusVelocityKmh:     d.getFloat64(),
		BusWaitTimeMinutes: d.getFloat64(),
	}
}
