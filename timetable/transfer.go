package timetable

import "github.com/transitgo/raptor/timeutil"

// Transfer is a walk (or in-seat) connection from one stop to another that
// does not require boarding a Route from the Timetable's normal scan.
type Transfer struct {
	Destination        StopId
	Type               TransferType
	MinTransferTime    timeutil.Duration
	HasMinTransferTime bool
}

// TripBoarding names a specific boarding point: "board tripIndex of
// routeID at hopOnStopIndex".
type TripBoarding struct {
	RouteID        RouteId
	HopOnStopIndex StopRouteIndex
	TripIndex      TripRouteIndex
}

// StopAdjacency is everything reachable from one stop without a vehicle
// change beyond the routes that visit it: the routes passing through the
// stop, and any walk transfers out of it. In-seat continuations are kept
// separately in Timetable, keyed by TripStopId, since they are looked up
// by (stop-on-route, route, trip) rather than by stop alone.
type StopAdjacency struct {
	Routes    []RouteId
	Transfers []Transfer
}
