package raptor

import (
	"github.com/transitgo/raptor/timeutil"
	"github.com/transitgo/raptor/timetable"
)

// Arrival is the best known arrival at a stop, and the round it was
// achieved in. LegNumber is the round index k, not a count of rider-visible
// legs: an in-seat continuation chain spans several edges within a single
// round.
type Arrival struct {
	Arrival   timeutil.Time
	LegNumber int
}

// Result is the predecessor graph a Router.Route call produces: the best
// arrival at every reached stop, and the full per-round graph needed to
// reconstruct a path to any of them. It holds a reference to the
// Timetable it was computed against, since reconstructing a Vehicle leg's
// stop ids requires resolving StopRouteIndex through the owning Route.
type Result struct {
	EarliestArrivals map[StopId]Arrival
	Graph            []*RoundGraph
	Destinations     []StopId
	Timetable        *timetable.Timetable
}

// VehicleSegment is one ride within a Vehicle leg. A leg holds more than
// one segment only when in-seat continuations chained several trips
// together without the rider having to get off.
type VehicleSegment struct {
	RouteID   timetable.RouteId
	TripIndex timetable.TripRouteIndex
	From      StopId
	To        StopId
	Arrival   timeutil.Time
}

// Leg is one rider-visible step of a Journey: either a ride (Vehicle,
// possibly spanning several continuation-chained segments) or a walk
// (Transfer).
type Leg struct {
	Kind    EdgeKind
	From    StopId
	To      StopId
	Arrival timeutil.Time

	// Set only when Kind == VehicleEdge.
	Vehicle []VehicleSegment

	// Set only when Kind == TransferEdge.
	TransferType       timetable.TransferType
	MinTransferTime    timeutil.Duration
	HasMinTransferTime bool
}

// Journey is a reconstructed path from a query's origin to Destination.
type Journey struct {
	Destination StopId
	Legs        []Leg
}

// pickBest scans candidates for the smallest Arrival in ea, tie-breaking on
// the smallest StopId so that reconstruction is deterministic.
func pickBest(ea map[StopId]Arrival, candidates []StopId) (Arrival, StopId, bool) {
	var best Arrival
	var bestStop StopId
	found := false
	for _, s := range candidates {
		a, ok := ea[s]
		if !ok {
			continue
		}
		if !found || a.Arrival.IsBefore(best.Arrival) || (a.Arrival.Equals(best.Arrival) && s < bestStop) {
			best, bestStop, found = a, s, true
		}
	}
	return best, bestStop, found
}

// BestRoute reconstructs the best journey to any stop in candidates,
// defaulting to res.Destinations when candidates is empty. It returns
// false if none of the candidates was ever reached.
func (res *Result) BestRoute(candidates []StopId) (Journey, bool) {
	if len(candidates) == 0 {
		candidates = res.Destinations
	}
	best, stop, found := pickBest(res.EarliestArrivals, candidates)
	if !found {
		return Journey{}, false
	}

	destination := stop
	k := best.LegNumber
	var legs []Leg

reconstruct:
	for {
		if k < 0 || k >= len(res.Graph) {
			panic("raptor: reconstruction round index out of range")
		}
		round := res.Graph[k]
		edge, ok := round.get(stop)
		if !ok {
			panic("raptor: reconstruction found no edge for a marked stop")
		}
		switch edge.Kind {
		case OriginEdge:
			break reconstruct
		case VehicleEdge:
			leg, originStop := res.buildVehicleLeg(round, edge)
			legs = append(legs, leg)
			stop = originStop
			k--
		case TransferEdge:
			legs = append(legs, Leg{
				Kind:               TransferEdge,
				From:               edge.From,
				To:                 edge.To,
				Arrival:            edge.Arrival,
				TransferType:       edge.TransferType,
				MinTransferTime:    edge.MinTransferTime,
				HasMinTransferTime: edge.HasMinTransferTime,
			})
			stop = edge.From
		default:
			panic("raptor: reconstruction hit an edge of unknown kind")
		}
	}

	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return Journey{Destination: destination, Legs: legs}, true
}

// buildVehicleLeg walks tail's ContinuationOf chain back to its earliest
// segment, merging the whole chain into one rider-visible leg, and returns
// the stop the rider originally boarded from (for the caller to continue
// reconstructing backward).
func (res *Result) buildVehicleLeg(round *RoundGraph, tail Edge) (Leg, StopId) {
	chain := []Edge{tail}
	for tail.HasContinuationOf {
		tail = round.EdgeAt(tail.ContinuationOf)
		chain = append(chain, tail)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	segments := make([]VehicleSegment, len(chain))
	for i, e := range chain {
		route, ok := res.Timetable.GetRoute(e.RouteID)
		if !ok {
			panic("raptor: reconstruction referenced an unknown route")
		}
		segments[i] = VehicleSegment{
			RouteID:   e.RouteID,
			TripIndex: e.TripIndex,
			From:      route.StopAt(e.FromIndex),
			To:        route.StopAt(e.ToIndex),
			Arrival:   e.Arrival,
		}
	}

	leg := Leg{
		Kind:    VehicleEdge,
		From:    segments[0].From,
		To:      segments[len(segments)-1].To,
		Arrival: segments[len(segments)-1].Arrival,
		Vehicle: segments,
	}
	return leg, segments[0].From
}

// arrivalWithinRounds returns the best arrival at stop achieved within
// rounds [0, upTo], and the round it was achieved in, scanning from upTo
// down since a stop's graph entries only ever improve as rounds advance.
func (res *Result) arrivalWithinRounds(stop StopId, upTo int) (timeutil.Time, int, bool) {
	if upTo >= len(res.Graph) {
		upTo = len(res.Graph) - 1
	}
	for i := upTo; i >= 0; i-- {
		if e, ok := res.Graph[i].get(stop); ok {
			return e.Arrival, i, true
		}
	}
	return 0, 0, false
}

// ArrivalAt returns the best arrival among equivalents, optionally bounded
// to at most maxTransfers vehicle changes (nil means unbounded). Ties
// break on the smallest StopId.
func (res *Result) ArrivalAt(equivalents []StopId, maxTransfers *int) (Arrival, bool) {
	var best Arrival
	var bestStop StopId
	found := false
	for _, s := range equivalents {
		var cand Arrival
		var ok bool
		if maxTransfers == nil {
			if a, exists := res.EarliestArrivals[s]; exists {
				cand, ok = a, true
			}
		} else {
			if arrival, round, exists := res.arrivalWithinRounds(s, *maxTransfers+1); exists {
				cand, ok = Arrival{arrival, round}, true
			}
		}
		if !ok {
			continue
		}
		if !found || cand.Arrival.IsBefore(best.Arrival) || (cand.Arrival.Equals(best.Arrival) && s < bestStop) {
			best, bestStop, found = cand, s, true
		}
	}
	return best, found
}
