package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults is an optional house-default overlay for routing settings,
// loaded from a YAML file named by make_base's --defaults flag. It
// mirrors the theoremus-urban-solutions config loader's shape
// (yaml.Unmarshal followed by validator.Struct). Only the settings a
// request body omits get filled in from here (see ApplyTo), but a
// routing_settings block in the file is validated as a whole, so it
// must give both fields, each greater than zero. Routing is nil when no
// file, or no routing_settings block, is given.
type Defaults struct {
	Routing *RoutingSettings `yaml:"routing_settings"`
}

// LoadDefaults reads and validates a YAML defaults file. A missing path
// is not an error; it simply means no overlay applies.
func LoadDefaults(path string) (*Defaults, error) {
	if path == "" {
		return &Defaults{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Defaults{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading defaults file %q", path)
	}

	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "parsing defaults file")
	}

	v := validator.New()
	if d.Routing != nil {
		if err := v.Struct(d.Routing); err != nil {
			return nil, errors.Wrap(err, "validating default routing_settings")
		}
	}

	return &d, nil
}

// ApplyTo fills zero-valued fields of rs from the overlay's routing
// defaults. Request-supplied fields (anything already non-zero) always
// win.
func (d *Defaults) ApplyTo(rs *RoutingSettings) {
	if d == nil || d.Routing == nil {
		return
	}
	if rs.BusVelocityKmh == 0 {
		rs.BusVelocityKmh = d.Routing.BusVelocityKmh
	}
	if rs.BusWaitTimeMinutes == 0 {
		rs.BusWaitTimeMinutes = d.Routing.BusWaitTimeMinutes
	}
}

// Validate checks that rs is fully and validly populated. It's meant to
// run after a request's routing_settings has had a Defaults overlay
// applied, catching the case where neither the request nor the overlay
// supplied a field.
func (rs RoutingSettings) Validate() error {
	return validator.New().Struct(rs)
}
