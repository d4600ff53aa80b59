// Package timetable holds the compact, columnar, read-only timetable that
// the router scans: Route (one route's stops, stop-times and
// pickup/drop-off rules), Timetable (the collection of routes plus
// per-stop adjacency), and the small value types identifying stops,
// routes and trips.
package timetable

import "github.com/transitgo/raptor/packedid"

// StopId is a global stop identifier.
type StopId int32

// RouteId is an internal route identifier. A route is the set of trips
// sharing an identical ordered stop list within one service route.
type RouteId int32

// ServiceRouteId is the user-visible line a route belongs to.
type ServiceRouteId int32

// TripRouteIndex is a trip's 0-based position within its route.
type TripRouteIndex int

// StopRouteIndex is a stop's 0-based position within its route.
type StopRouteIndex int

// RouteType is the mode of a ServiceRoute.
type RouteType byte

const (
	Tram RouteType = iota
	Subway
	Rail
	Bus
	Ferry
	CableTram
	AerialLift
	Funicular
	Trolleybus
	Monorail
)

// PickupDropOffType re-exports packedid's enum so callers of this package
// never need to import packedid directly.
type PickupDropOffType = packedid.PickupDropOffType

const (
	Regular                  = packedid.Regular
	NotAvailable             = packedid.NotAvailable
	MustPhoneAgency          = packedid.MustPhoneAgency
	MustCoordinateWithDriver = packedid.MustCoordinateWithDriver
)

// TransferType classifies a walk transfer between two stops.
type TransferType byte

const (
	Recommended TransferType = iota
	Guaranteed
	RequiresMinimalTime
	InSeat
)

func (t TransferType) String() string {
	switch t {
	case Recommended:
		return "RECOMMENDED"
	case Guaranteed:
		return "GUARANTEED"
	case RequiresMinimalTime:
		return "REQUIRES_MINIMAL_TIME"
	case InSeat:
		return "IN_SEAT"
	default:
		panic("timetable: unknown TransferType")
	}
}

// ServiceRouteInfo is the line metadata exposed for a Route's owning
// service route.
type ServiceRouteInfo struct {
	Type RouteType
	Name string
}

// ServiceRoute aggregates one or more Routes sharing a stop order under
// one rider-visible line.
type ServiceRoute struct {
	Type RouteType
	Name string
}
