package dispatch

import (
	"github.com/pkg/errors"

	"transitcat.dev/transitcat/catalogue"
	"transitcat.dev/transitcat/config"
	"transitcat.dev/transitcat/render"
	"transitcat.dev/transitcat/router"
	"transitcat.dev/transitcat/value"
)

// Dispatcher answers stat_requests against a sealed catalogue. It is
// built once per process_requests run, from a loaded snapshot.
type Dispatcher struct {
	cat    *catalogue.Catalogue
	render config.RenderSettings
	router *router.Router
}

// NewDispatcher builds the routing graph once up front (spec §4.5) so
// every Route request reuses it.
func NewDispatcher(cat *catalogue.Catalogue, render config.RenderSettings, routing config.RoutingSettings) *Dispatcher {
	return &Dispatcher{
		cat:    cat,
		render: render,
		router: router.Build(cat, routing),
	}
}

// Serve answers every stat_request in order and returns the response
// array in the same order (spec §4.8). A single malformed request fails
// the whole call; an unanswerable but well-formed one (unknown stop,
// unknown bus, no route) produces an error_message item instead.
func (d *Dispatcher) Serve(requests []value.Value) (value.Value, error) {
	b := value.NewBuilder()
	b.StartArray()
	for _, req := range requests {
		resp, err := d.answer(req)
		if err != nil {
			return value.Value{}, err
		}
		b.Value(resp)
	}
	b.EndArray()
	return b.Build()
}

func (d *Dispatcher) answer(req value.Value) (value.Value, error) {
	id, err := req.GetInt("id")
	if err != nil {
		return value.Value{}, err
	}
	typ, err := req.GetString("type")
	if err != nil {
		return value.Value{}, err
	}

	switch typ {
	case "Stop":
		return d.answerStop(id, req)
	case "Bus":
		return d.answerBus(id, req)
	case "Map":
		return d.answerMap(id), nil
	case "Route":
		return d.answerRoute(id, req)
	default:
		return value.Value{}, errors.Errorf("unknown stat_request type %q", typ)
	}
}

func notFound(id int64) value.Value {
	b := value.NewBuilder()
	b.StartDict().
		Key("request_id").Int(id).
		Key("error_message").String("not found").
		EndDict()
	v, _ := b.Build()
	return v
}

func (d *Dispatcher) answerStop(id int64, req value.Value) (value.Value, error) {
	name, err := req.GetString("name")
	if err != nil {
		return value.Value{}, err
	}

	if _, ok := d.cat.FindStop(name); !ok {
		return notFound(id), nil
	}

	b := value.NewBuilder()
	b.StartDict().Key("request_id").Int(id).Key("buses").StartArray()
	for _, busName := range d.cat.StopInfo(name) {
		b.String(busName)
	}
	b.EndArray().EndDict()
	return b.Build()
}

func (d *Dispatcher) answerBus(id int64, req value.Value) (value.Value, error) {
	name, err := req.GetString("name")
	if err != nil {
		return value.Value{}, err
	}

	stats, err := d.cat.RouteStats(name)
	if errors.Is(err, catalogue.ErrNotFound) {
		return notFound(id), nil
	}
	if err != nil {
		return value.Value{}, err
	}

	b := value.NewBuilder()
	b.StartDict().
		Key("request_id").Int(id).
		Key("stop_count").Int(int64(stats.StopCount)).
		Key("unique_stop_count").Int(int64(stats.UniqueStopCount)).
		Key("route_length").Float(stats.RoadLength).
		Key("curvature").Float(stats.Curvature).
		EndDict()
	return b.Build()
}

func (d *Dispatcher) answerMap(id int64) value.Value {
	svgDoc := render.Map(d.cat, d.render)

	b := value.NewBuilder()
	b.StartDict().
		Key("request_id").Int(id).
		Key("map").String(svgDoc).
		EndDict()
	v, _ := b.Build()
	return v
}

func (d *Dispatcher) answerRoute(id int64, req value.Value) (value.Value, error) {
	from, err := req.GetString("from")
	if err != nil {
		return value.Value{}, err
	}
	to, err := req.GetString("to")
	if err != nil {
		return value.Value{}, err
	}

	journey, ok := d.router.FindJourney(from, to)
	if !ok {
		return notFound(id), nil
	}

	b := value.NewBuilder()
	b.StartDict().
		Key("request_id").Int(id).
		Key("total_time").Float(journey.TotalTime).
		Key("items").StartArray()
	for _, item := range journey.Items {
		switch it := item.(type) {
		case router.Wait:
			b.StartDict().
				Key("type").String("Wait").
				Key("stop_name").String(it.Stop).
				Key("time").Float(it.Time).
				EndDict()
		case router.Ride:
			b.StartDict().
				Key("type").String("Bus").
				Key("bus").String(it.Bus).
				Key("span_count").Int(int64(it.Span)).
				Key("time").Float(it.Time).
				EndDict()
		}
	}
	b.EndArray().EndDict()
	return b.Build()
}
