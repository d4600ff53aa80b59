// Package raptor implements the round-based earliest-arrival routing
// engine (RAPTOR) over a timetable.Timetable: Query describes a journey
// request, Router runs the round-based scan, and Result holds the
// reconstructible predecessor graph the scan produces.
package raptor

import (
	"github.com/transitgo/raptor/timeutil"
	"github.com/transitgo/raptor/timetable"
)

// SourceStopId is an external, higher-level stop identifier — e.g. a
// station id that may expand to several platform StopIds — handed to the
// router by a caller. Resolving it is the job of a StopsIndex, which is an
// external collaborator this package only depends on through an
// interface.
type SourceStopId int64

// StopsIndex expands a SourceStopId into the set of timetable.StopId
// values it is equivalent to (a station and its platforms, or siblings).
// An id with no known equivalents returns an empty slice, not an error:
// an unknown source stop is a domain miss, not a programmer error.
type StopsIndex interface {
	EquivalentStops(id SourceStopId) []timetable.StopId
}

// IdentityStopsIndex treats SourceStopId and timetable.StopId as the same
// numbering, with no expansion. It exists for tests and for callers that
// have not wired in a real stops index.
type IdentityStopsIndex struct{}

func (IdentityStopsIndex) EquivalentStops(id SourceStopId) []timetable.StopId {
	return []timetable.StopId{timetable.StopId(id)}
}

// Options carries the router's tunables.
type Options struct {
	// MaxTransfers bounds vehicle changes; the router runs at most
	// MaxTransfers+1 rounds.
	MaxTransfers int
	// MinTransferTime is the default walk-transfer dwell used when a
	// Transfer carries no explicit MinTransferTime and is not IN_SEAT.
	MinTransferTime timeutil.Duration
	// TransportModes restricts route scanning to these RouteTypes. An
	// empty (nil or zero-length) set means "all modes".
	TransportModes map[timetable.RouteType]bool
}

// DefaultOptions returns the spec's defaults: 4 max transfers, a 2 minute
// minimum transfer time, all transport modes.
func DefaultOptions() Options {
	return Options{
		MaxTransfers:     4,
		MinTransferTime:  timeutil.Minutes(2),
		TransportModes:   nil,
	}
}

// Query is a journey request: depart From no earlier than DepartureTime,
// reach any stop equivalent to any entry of To.
type Query struct {
	From          SourceStopId
	To            []SourceStopId
	DepartureTime timeutil.Time
	Options       Options
}

// NewQuery builds a Query with DefaultOptions(); callers that need
// non-default Options should set Query.Options directly afterward.
func NewQuery(from SourceStopId, to []SourceStopId, departureTime timeutil.Time) Query {
	return Query{
		From:          from,
		To:            to,
		DepartureTime: departureTime,
		Options:       DefaultOptions(),
	}
}
