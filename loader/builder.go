// Package loader is the in-memory construction seam an external ingester
// plugs into: accumulate routes, transfers and continuations one at a
// time, then freeze them into an immutable timetable.Timetable. Reading an
// external transit-data format and the timetable's on-disk byte layout
// are both out of this module's scope (the router consumes the
// deserialised in-memory form, neutral to its wire encoding); Builder
// exists for tests and for whatever real ingester is wired in later.
package loader

import (
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/transitgo/raptor/packedid"
	"github.com/transitgo/raptor/timetable"
)

// Builder accumulates a Timetable's parts, then freezes them with Build.
// Not safe for concurrent use — a Builder belongs to one ingest pass.
type Builder struct {
	adjacency     map[timetable.StopId]*timetable.StopAdjacency
	routes        []*timetable.Route
	serviceRoutes []timetable.ServiceRoute
	continuations map[packedid.TripStopId][]timetable.TripBoarding
	maxStop       timetable.StopId
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		adjacency:     map[timetable.StopId]*timetable.StopAdjacency{},
		continuations: map[packedid.TripStopId][]timetable.TripBoarding{},
	}
}

// AddServiceRoute registers a rider-visible line and returns its id.
func (b *Builder) AddServiceRoute(sr timetable.ServiceRoute) timetable.ServiceRouteId {
	id := timetable.ServiceRouteId(len(b.serviceRoutes))
	b.serviceRoutes = append(b.serviceRoutes, sr)
	return id
}

// AddRoute builds a Route from its stop sequence and trip data, registers
// it against serviceID, records it against every stop it visits, and
// returns its id. Panics propagate from timetable.NewRoute on malformed
// input, since a builder call is itself the construction-time boundary
// where such checks belong.
func (b *Builder) AddRoute(serviceID timetable.ServiceRouteId, stops []timetable.StopId, tripCount int, stopTimes []timetable.StopTime, pickupDrop []packedid.PickupDropOffPair) timetable.RouteId {
	route := timetable.NewRoute(serviceID, stops, tripCount, stopTimes, pickupDrop)
	id := timetable.RouteId(len(b.routes))
	b.routes = append(b.routes, route)

	seen := map[timetable.StopId]bool{}
	for _, s := range stops {
		if seen[s] {
			continue
		}
		seen[s] = true
		b.touch(s).Routes = append(b.touch(s).Routes, id)
		b.track(s)
	}
	return id
}

// AddTransfer registers a walk (or in-seat) connection from "from" to
// t.Destination.
func (b *Builder) AddTransfer(from timetable.StopId, t timetable.Transfer) {
	b.touch(from).Transfers = append(b.touch(from).Transfers, t)
	b.track(from)
	b.track(t.Destination)
}

// AddContinuation registers that a passenger alighting from tripIndex of
// routeID at stopIndex may continue in-seat as boarding.
func (b *Builder) AddContinuation(stopIndex timetable.StopRouteIndex, routeID timetable.RouteId, tripIndex timetable.TripRouteIndex, boarding timetable.TripBoarding) error {
	id, err := packedid.EncodeTripStopId(int(stopIndex), int(routeID), int(tripIndex))
	if err != nil {
		return fmt.Errorf("loader: AddContinuation: %w", err)
	}
	b.continuations[id] = append(b.continuations[id], boarding)
	return nil
}

// Build freezes the accumulated parts into an immutable Timetable, with a
// dense per-stop adjacency slice sized to the largest stop id seen.
func (b *Builder) Build() *timetable.Timetable {
	n := 0
	if len(b.adjacency) > 0 {
		n = int(b.maxStop) + 1
	}
	adjacency := make([]timetable.StopAdjacency, n)
	for stop, adj := range b.adjacency {
		adjacency[stop] = *adj
	}
	slog.Info("timetable built",
		"stops", len(adjacency), "routes", len(b.routes),
		"service-routes", len(b.serviceRoutes), "continuations", len(b.continuations))
	return timetable.New(adjacency, b.routes, b.serviceRoutes, b.continuations)
}

func (b *Builder) touch(stop timetable.StopId) *timetable.StopAdjacency {
	adj, ok := b.adjacency[stop]
	if !ok {
		adj = &timetable.StopAdjacency{}
		b.adjacency[stop] = adj
	}
	return adj
}

func (b *Builder) track(stop timetable.StopId) {
	if stop > b.maxStop {
		b.maxStop = stop
	}
}
