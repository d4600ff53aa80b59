package timetable

import (
	"fmt"
	"sort"

	"github.com/transitgo/raptor/packedid"
	"github.com/transitgo/raptor/timeutil"
)

// Route is one route's immutable columnar timetable: an ordered stop
// sequence shared by every trip, and T trips' worth of stop-times and
// pickup/drop-off rules packed alongside it. All accessors are total, pure
// functions over the packed storage; out-of-range indices panic — the
// Timetable that owns a Route is the source of truth for valid indices.
type Route struct {
	stops       []StopId
	times       []int32 // 2*stopCount*tripCount, (arrival,departure) per (trip,stop)
	pickupDrop  []byte  // packed per packedid.PackPickupDropOff, indexed by trip*stopCount+stop
	tripCount   int
	serviceID   ServiceRouteId
	stopIndices map[StopId][]StopRouteIndex
}

// StopTime is one (arrival, departure) pair for a single (trip, stop).
type StopTime struct {
	Arrival   timeutil.Time
	Departure timeutil.Time
}

// NewRoute builds a Route from its stop sequence and, for every trip in
// order, one StopTime and one PickupDropOffPair per stop. len(stopTimes)
// and len(pickupDrop) must each equal len(stops)*tripCount; trips must
// already be sorted by first departure (departures non-decreasing across
// trips at every stop index, as required by spec) — NewRoute does not re-sort or validate this, since
// it is the timetable builder's invariant to uphold, not a per-query check.
func NewRoute(serviceID ServiceRouteId, stops []StopId, tripCount int, stopTimes []StopTime, pickupDrop []packedid.PickupDropOffPair) *Route {
	s := len(stops)
	if len(stopTimes) != s*tripCount {
		panic(fmt.Sprintf("timetable: NewRoute: len(stopTimes)=%d, want stopCount*tripCount=%d", len(stopTimes), s*tripCount))
	}
	if len(pickupDrop) != s*tripCount {
		panic(fmt.Sprintf("timetable: NewRoute: len(pickupDrop)=%d, want stopCount*tripCount=%d", len(pickupDrop), s*tripCount))
	}

	times := make([]int32, 2*s*tripCount)
	for g, st := range stopTimes {
		times[2*g] = int32(st.Arrival)
		times[2*g+1] = int32(st.Departure)
	}

	stopIndices := make(map[StopId][]StopRouteIndex, s)
	for i, id := range stops {
		stopIndices[id] = append(stopIndices[id], StopRouteIndex(i))
	}

	return &Route{
		stops:       append([]StopId(nil), stops...),
		times:       times,
		pickupDrop:  packedid.PackPickupDropOff(pickupDrop),
		tripCount:   tripCount,
		serviceID:   serviceID,
		stopIndices: stopIndices,
	}
}

// StopCount returns the number of stops on the route, S.
func (r *Route) StopCount() int {
	return len(r.stops)
}

// TripCount returns the number of trips on the route, T.
func (r *Route) TripCount() int {
	return r.tripCount
}

// ServiceRoute returns the id of the line this route belongs to.
func (r *Route) ServiceRoute() ServiceRouteId {
	return r.serviceID
}

// StopAt returns the StopId at stopIndex.
func (r *Route) StopAt(stopIndex StopRouteIndex) StopId {
	return r.stops[stopIndex]
}

func (r *Route) checkIndices(stopIndex int, tripIndex int) {
	if stopIndex < 0 || stopIndex >= len(r.stops) {
		panic(fmt.Sprintf("timetable: stop index %d out of range [0,%d)", stopIndex, len(r.stops)))
	}
	if tripIndex < 0 || tripIndex >= r.tripCount {
		panic(fmt.Sprintf("timetable: trip index %d out of range [0,%d)", tripIndex, r.tripCount))
	}
}

func (r *Route) slot(stopIndex, tripIndex int) int {
	return tripIndex*len(r.stops) + stopIndex
}

// ArrivalAt returns the arrival time of tripIndex at stopIndex.
func (r *Route) ArrivalAt(stopIndex StopRouteIndex, tripIndex TripRouteIndex) timeutil.Time {
	r.checkIndices(int(stopIndex), int(tripIndex))
	return timeutil.Time(r.times[2*r.slot(int(stopIndex), int(tripIndex))])
}

// DepartureFrom returns the departure time of tripIndex from stopIndex.
func (r *Route) DepartureFrom(stopIndex StopRouteIndex, tripIndex TripRouteIndex) timeutil.Time {
	r.checkIndices(int(stopIndex), int(tripIndex))
	return timeutil.Time(r.times[2*r.slot(int(stopIndex), int(tripIndex))+1])
}

// PickupTypeFrom returns the pickup rule for tripIndex at stopIndex.
func (r *Route) PickupTypeFrom(stopIndex StopRouteIndex, tripIndex TripRouteIndex) PickupDropOffType {
	r.checkIndices(int(stopIndex), int(tripIndex))
	return packedid.UnpackPickupDropOff(r.pickupDrop, r.slot(int(stopIndex), int(tripIndex))).Pickup
}

// DropOffTypeAt returns the drop-off rule for tripIndex at stopIndex.
func (r *Route) DropOffTypeAt(stopIndex StopRouteIndex, tripIndex TripRouteIndex) PickupDropOffType {
	r.checkIndices(int(stopIndex), int(tripIndex))
	return packedid.UnpackPickupDropOff(r.pickupDrop, r.slot(int(stopIndex), int(tripIndex))).DropOff
}

// StopRouteIndices returns every index at which stopID occurs on this
// route, for routes that revisit a stop (e.g. a loop route).
func (r *Route) StopRouteIndices(stopID StopId) []StopRouteIndex {
	return r.stopIndices[stopID]
}

// FindEarliestTrip finds the earliest trip t such that: t departs
// stopIndex no earlier than after; t is strictly before beforeTrip when
// hasBeforeTrip is true; and t's pickup rule at stopIndex is not NotAvailable.
// Departures at a fixed stop index are non-decreasing across trips (a
// timetable construction invariant), so the search first binary-searches
// the lower bound on "after" and then scans forward skipping
// NotAvailable trips, stopping at the first admissible trip or at
// beforeTrip.
func (r *Route) FindEarliestTrip(stopIndex StopRouteIndex, after timeutil.Time, beforeTrip TripRouteIndex, hasBeforeTrip bool) (TripRouteIndex, bool) {
	upper := r.tripCount
	if hasBeforeTrip {
		if int(beforeTrip) < upper {
			upper = int(beforeTrip)
		}
	}
	if upper <= 0 {
		return 0, false
	}

	start := sort.Search(upper, func(t int) bool {
		return r.DepartureFrom(stopIndex, TripRouteIndex(t)) >= after
	})
	for t := start; t < upper; t++ {
		ti := TripRouteIndex(t)
		if r.PickupTypeFrom(stopIndex, ti) != NotAvailable {
			return ti, true
		}
	}
	return 0, false
}
