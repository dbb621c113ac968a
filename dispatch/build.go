// Package dispatch is the orchestrator (C10): it turns a parsed
// structured-value document into a sealed catalogue plus settings
// (build mode), and turns a queued list of stat_requests into a
// structured-value response array, in request order (serve mode,
// spec §4.7, §4.8).
package dispatch

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/geo"
	"transitcat.dev/transitcat/value"
)

var fieldValidator = validator.New()

// BuildBase parses a make_base request document (§6) into a sealed
// catalogue and its settings.
func BuildBase(doc value.Value) (*catalogue.Catalogue, config.RenderSettings, config.RoutingSettings, config.SerializationSettings, error) {
	cat := catalogue.New()

	baseRequests, err := doc.GetArray("base_requests")
	if err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
	}

	// Stops must all be added before buses, since AddBus resolves every
	// stop name immediately.
	var busRequests []value.Value
	for _, req := range baseRequests {
		typ, err := req.GetString("type")
		if err != nil {
			return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
		}
		switch typ {
		case "Stop":
			if err := addStopFromRequest(cat, req); err != nil {
				return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
			}
		case "Bus":
			busRequests = append(busRequests, req)
		default:
			return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, errors.Errorf("unknown base request type %q", typ)
		}
	}

	for _, req := range baseRequests {
		typ, _ := req.GetString("type")
		if typ != "Stop" {
			continue
		}
		if err := addRoadDistancesFromRequest(cat, req); err != nil {
			return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
		}
	}

	for _, req := range busRequests {
		if err := addBusFromRequest(cat, req); err != nil {
			return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
		}
	}

	render, err := parseRenderSettings(doc)
	if err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
	}

	routing, err := parseRoutingSettings(doc)
	if err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
	}

	serialization, err := parseSerializationSettings(doc)
	if err != nil {
		return nil, config.RenderSettings{}, config.RoutingSettings{}, config.SerializationSettings{}, err
	}

	return cat, render, routing, serialization, nil
}

func addStopFromRequest(cat *catalogue.Catalogue, req value.Value) error {
	name, err := req.GetString("name")
	if err != nil {
		return err
	}
	lat, err := req.GetFloat("latitude")
	if err != nil {
		return err
	}
	lon, err := req.GetFloat("longitude")
	if err != nil {
		return err
	}
	if err := fieldValidator.Var(lat, "gte=-90,lte=90"); err != nil {
		return errors.Wrapf(err, "stop %q latitude out of range", name)
	}
	if err := fieldValidator.Var(lon, "gte=-180,lte=180"); err != nil {
		return errors.Wrapf(err, "stop %q longitude out of range", name)
	}

	return cat.AddStop(name, geo.Coordinates{Latitude: lat, Longitude: lon})
}

func addRoadDistancesFromRequest(cat *catalogue.Catalogue, req value.Value) error {
	from, err := req.GetString("name")
	if err != nil {
		return err
	}
	distances, ok := req.Get("road_distances")
	if !ok {
		return nil
	}
	for _, to := range distances.Keys() {
		meters, err := distances.GetInt(to)
		if err != nil {
			return err
		}
		if err := fieldValidator.Var(meters, "gt=0"); err != nil {
			return errors.Wrapf(err, "road distance %s->%s must be positive", from, to)
		}
		if err := cat.SetRoadDistance(from, to, int(meters)); err != nil {
			return err
		}
	}
	return nil
}

func addBusFromRequest(cat *catalogue.Catalogue, req value.Value) error {
	name, err := req.GetString("name")
	if err != nil {
		return err
	}
	stopsArr, err := req.GetArray("stops")
	if err != nil {
		return err
	}
	stops := make([]string, 0, len(stopsArr))
	for _, s := range stopsArr {
		stopName, ok := s.AsString()
		if !ok {
			return errors.Errorf("bus %q has a non-string stop name", name)
		}
		stops = append(stops, stopName)
	}

	roundtripVal, ok := req.Get("is_roundtrip")
	if !ok {
		return errors.Errorf("bus %q missing is_roundtrip", name)
	}
	isRoundtrip, ok := roundtripVal.AsBool()
	if !ok {
		return errors.Errorf("bus %q is_roundtrip is not a bool", name)
	}

	kind := catalogue.Linear
	if isRoundtrip {
		kind = catalogue.Circular
	}
	return cat.AddBus(name, stops, kind)
}
