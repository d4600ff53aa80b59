// Package config loads the router server's YAML configuration: where the
// built timetable lives, where to bind the HTTP server, and a set of
// default query options.
package config

import (
	"errors"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/transitgo/raptor/timetable"
)

// Config is the top-level YAML document.
type Config struct {
	Timetable struct {
		// Source is the path to the built timetable. Loading it is
		// package loader's job; config only carries the path.
		Source string `yaml:"source"`
	} `yaml:"timetable"`
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Query QueryOptions `yaml:"query"`
}

// QueryOptions holds the default query options read from the YAML file.
// cmd/raptorserver loads them with the rest of the file but does not
// apply them: its route handler starts every request from
// raptor.DefaultOptions().
type QueryOptions struct {
	MaxTransfers    int            `yaml:"max-transfers"`
	MinTransferTime int            `yaml:"min-transfer-time"` // minutes
	TransportModes  []RouteTypeTag `yaml:"transport-modes"`   // empty = all
}

// ReadConfig reads and parses file. A missing or unparsable file is a
// startup failure, not a recoverable condition — mirrors the teacher's own
// ReadConfig, which treats a bad config as fatal.
func ReadConfig(file string) Config {
	slog.Info("reading config file", "path", file)
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file", "error", err)
		panic(err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Error("failed to parse config file", "error", err)
		panic(err)
	}
	if cfg.Query.MaxTransfers == 0 {
		cfg.Query.MaxTransfers = 4
	}
	if cfg.Query.MinTransferTime == 0 {
		cfg.Query.MinTransferTime = 2
	}
	return cfg
}

// RouteTypeTag is a YAML-friendly wrapper over timetable.RouteType: the
// core type stays free of a serialization dependency, and this package
// owns the string<->enum mapping the same way the teacher's config.go owns
// VehicleType/MetricType's string forms.
type RouteTypeTag timetable.RouteType

func (t RouteTypeTag) RouteType() timetable.RouteType {
	return timetable.RouteType(t)
}

func (t RouteTypeTag) String() string {
	switch timetable.RouteType(t) {
	case timetable.Tram:
		return "tram"
	case timetable.Subway:
		return "subway"
	case timetable.Rail:
		return "rail"
	case timetable.Bus:
		return "bus"
	case timetable.Ferry:
		return "ferry"
	case timetable.CableTram:
		return "cable-tram"
	case timetable.AerialLift:
		return "aerial-lift"
	case timetable.Funicular:
		return "funicular"
	case timetable.Trolleybus:
		return "trolleybus"
	case timetable.Monorail:
		return "monorail"
	default:
		panic("config: unknown route type")
	}
}

func (t RouteTypeTag) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *RouteTypeTag) UnmarshalYAML(value *yaml.Node) error {
	rt, err := routeTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*t = RouteTypeTag(rt)
	return nil
}

// ParseRouteType parses a route type's YAML string form outside of a YAML
// document, for callers (e.g. a query's URL/JSON parameters) that reuse the
// same vocabulary without going through RouteTypeTag's unmarshaler.
func ParseRouteType(s string) (timetable.RouteType, error) {
	return routeTypeFromString(s)
}

func routeTypeFromString(s string) (timetable.RouteType, error) {
	switch s {
	case "tram":
		return timetable.Tram, nil
	case "subway":
		return timetable.Subway, nil
	case "rail":
		return timetable.Rail, nil
	case "bus":
		return timetable.Bus, nil
	case "ferry":
		return timetable.Ferry, nil
	case "cable-tram":
		return timetable.CableTram, nil
	case "aerial-lift":
		return timetable.AerialLift, nil
	case "funicular":
		return timetable.Funicular, nil
	case "trolleybus":
		return timetable.Trolleybus, nil
	case "monorail":
		return timetable.Monorail, nil
	default:
		return 0, errors.New("config: unknown route type " + s)
	}
}
