package timetable

import (
	"github.com/transitgo/raptor/packedid"
)

// Timetable is the immutable, read-only collection a Router scans: every
// Route, every stop's adjacency (routes through it, transfers out of it),
// every ServiceRoute's metadata, and the in-seat continuation map. It is
// built once by an external ingester (out of this module's scope; see
// package loader for the in-memory construction seam) and then shared
// read-only across arbitrarily many concurrent queries.
type Timetable struct {
	adjacency     []StopAdjacency          // indexed by StopId
	routes        []*Route                 // indexed by RouteId
	serviceRoutes []ServiceRoute           // indexed by ServiceRouteId
	continuations map[packedid.TripStopId][]TripBoarding
}

// New builds a Timetable from its constituent parts. adjacency, routes and
// serviceRoutes must be dense (indexed by StopId/RouteId/ServiceRouteId
// starting at 0); continuations may be nil.
func New(adjacency []StopAdjacency, routes []*Route, serviceRoutes []ServiceRoute, continuations map[packedid.TripStopId][]TripBoarding) *Timetable {
	if continuations == nil {
		continuations = map[packedid.TripStopId][]TripBoarding{}
	}
	return &Timetable{
		adjacency:     adjacency,
		routes:        routes,
		serviceRoutes: serviceRoutes,
		continuations: continuations,
	}
}

// StopCount returns the number of stops the adjacency table is dense over,
// i.e. one past the largest valid StopId. Callers sizing a flat
// per-stop array use this instead of tracking the bound themselves.
func (t *Timetable) StopCount() int {
	return len(t.adjacency)
}

// GetRoute returns the route with the given id, or (nil, false) if out of
// range.
func (t *Timetable) GetRoute(id RouteId) (*Route, bool) {
	if id < 0 || int(id) >= len(t.routes) {
		return nil, false
	}
	return t.routes[id], true
}

// GetTransfers returns the walk transfers out of stopID, or an empty
// slice if it has none. Never fails for any valid StopId.
func (t *Timetable) GetTransfers(stopID StopId) []Transfer {
	if !t.validStop(stopID) {
		return nil
	}
	return t.adjacency[stopID].Transfers
}

// GetContinuousTrips returns the in-seat continuations a passenger
// alighting from tripIndex of routeID at stopIndex may board without a
// transfer.
func (t *Timetable) GetContinuousTrips(stopIndex StopRouteIndex, routeID RouteId, tripIndex TripRouteIndex) []TripBoarding {
	id, err := packedid.EncodeTripStopId(int(stopIndex), int(routeID), int(tripIndex))
	if err != nil {
		return nil
	}
	return t.continuations[id]
}

// GetServiceRouteInfo returns the line metadata owning r. Panics if r's
// ServiceRouteId has no entry — a missing service route is a programmer
// error in timetable construction, not a query-time domain miss.
func (t *Timetable) GetServiceRouteInfo(r *Route) ServiceRouteInfo {
	id := r.ServiceRoute()
	if id < 0 || int(id) >= len(t.serviceRoutes) {
		panic("timetable: route has no service route")
	}
	sr := t.serviceRoutes[id]
	return ServiceRouteInfo{Type: sr.Type, Name: sr.Name}
}

// RoutesPassingThrough returns every route that visits stopID.
func (t *Timetable) RoutesPassingThrough(stopID StopId) []*Route {
	if !t.validStop(stopID) {
		return nil
	}
	ids := t.adjacency[stopID].Routes
	routes := make([]*Route, 0, len(ids))
	for _, id := range ids {
		if r, ok := t.GetRoute(id); ok {
			routes = append(routes, r)
		}
	}
	return routes
}

// IsActive reports whether stopID appears on some route or has some
// transfer/continuation.
func (t *Timetable) IsActive(stopID StopId) bool {
	if !t.validStop(stopID) {
		return false
	}
	adj := t.adjacency[stopID]
	return len(adj.Routes) > 0 || len(adj.Transfers) > 0
}

func (t *Timetable) validStop(stopID StopId) bool {
	return stopID >= 0 && int(stopID) < len(t.adjacency)
}

// FindReachableRoutes computes, for each route passing through any stop in
// fromStops whose service route type is in modes (an empty modes set means
// "all modes"), the smallest StopRouteIndex among the occurrences of
// fromStops on that route — the route's earliest admissible hop-on point
// for this round, since scanning from an earlier boarding point dominates
// a later one.
func (t *Timetable) FindReachableRoutes(fromStops []StopId, modes map[RouteType]bool) map[RouteId]StopRouteIndex {
	result := map[RouteId]StopRouteIndex{}
	for _, stopID := range fromStops {
		if !t.validStop(stopID) {
			continue
		}
		for _, routeID := range t.adjacency[stopID].Routes {
			route, ok := t.GetRoute(routeID)
			if !ok {
				continue
			}
			if len(modes) > 0 {
				info := t.GetServiceRouteInfo(route)
				if !modes[info.Type] {
					continue
				}
			}
			for _, idx := range route.StopRouteIndices(stopID) {
				if cur, exists := result[routeID]; !exists || idx < cur {
					result[routeID] = idx
				}
			}
		}
	}
	return result
}
