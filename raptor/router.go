package raptor

import (
	"github.com/transitgo/raptor/timeutil"
	"github.com/transitgo/raptor/timetable"
)

// Router runs round-based earliest-arrival queries against a fixed
// Timetable. A Router is immutable and safe for concurrent use: every
// Route call builds its own per-query state (marked stops, arrivals,
// per-round graph) and touches nothing shared.
type Router struct {
	Timetable *timetable.Timetable
	Index     StopsIndex
}

// NewRouter builds a Router over tt, expanding source stop ids through
// index. A nil index defaults to IdentityStopsIndex.
func NewRouter(tt *timetable.Timetable, index StopsIndex) *Router {
	if index == nil {
		index = IdentityStopsIndex{}
	}
	return &Router{Timetable: tt, Index: index}
}

// boardedTrip is the vehicle a route scan is currently riding, if any.
type boardedTrip struct {
	tripIndex  timetable.TripRouteIndex
	hopOnIndex timetable.StopRouteIndex
}

// Route runs the round-based scan for q and returns its full predecessor
// graph. An origin or destination with no equivalent stops simply
// contributes nothing; Route still runs and returns an empty result rather
// than erroring, since an unknown source stop is a domain miss, not a
// programmer error.
func (r *Router) Route(q Query) *Result {
	tt := r.Timetable
	origins := r.Index.EquivalentStops(q.From)
	destinations := expandUnique(r.Index, q.To)

	earliestArrivals := map[StopId]Arrival{}
	marked := map[StopId]struct{}{}

	round0 := newRoundGraph()
	for _, o := range origins {
		earliestArrivals[o] = Arrival{q.DepartureTime, 0}
		round0.set(o, Edge{Kind: OriginEdge, Arrival: q.DepartureTime})
		marked[o] = struct{}{}
	}
	rounds := []*RoundGraph{round0}
	r.relaxTransfers(round0, marked, earliestArrivals, q.Options, 0)

	for k := 1; k <= q.Options.MaxTransfers+1; k++ {
		if len(marked) == 0 {
			break
		}
		prevRound := rounds[k-1]
		curRound := newRoundGraph()

		fromStops := make([]StopId, 0, len(marked))
		for s := range marked {
			fromStops = append(fromStops, s)
		}
		reachable := tt.FindReachableRoutes(fromStops, q.Options.TransportModes)
		clear(marked)

		var queue []int
		for routeID, hopOn := range reachable {
			route, ok := tt.GetRoute(routeID)
			if !ok {
				continue
			}
			bestTarget := bestTargetArrival(earliestArrivals, destinations)
			emitted := r.scanRoute(route, routeID, hopOn, prevRound, curRound,
				earliestArrivals, marked, bestTarget, k, nil, false, 0, false)
			queue = append(queue, emitted...)
		}

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			edge := curRound.EdgeAt(idx)
			if edge.Kind != VehicleEdge {
				continue
			}
			for _, boarding := range tt.GetContinuousTrips(edge.ToIndex, edge.RouteID, edge.TripIndex) {
				route, ok := tt.GetRoute(boarding.RouteID)
				if !ok {
					continue
				}
				bestTarget := bestTargetArrival(earliestArrivals, destinations)
				preset := &boardedTrip{tripIndex: boarding.TripIndex, hopOnIndex: boarding.HopOnStopIndex}
				emitted := r.scanRoute(route, boarding.RouteID, boarding.HopOnStopIndex, prevRound, curRound,
					earliestArrivals, marked, bestTarget, k, preset, true, idx, true)
				queue = append(queue, emitted...)
			}
		}

		r.relaxTransfers(curRound, marked, earliestArrivals, q.Options, k)
		rounds = append(rounds, curRound)
	}

	return &Result{
		EarliestArrivals: earliestArrivals,
		Graph:            rounds,
		Destinations:     destinations,
		Timetable:        tt,
	}
}

// scanRoute walks route from hopOn to its last stop, boarding and
// alighting per round, and returns the arena indices of every Vehicle edge
// it wrote into curRound (for the caller's in-seat continuation fixpoint).
//
// When disableCatch is true the scan never tries to catch an earlier trip
// at a stop: it only rides presetTrip (an in-seat continuation's preset
// boarding) to the end of the route. Every Vehicle edge it emits chains
// ContinuationOf = sourceEdge.
func (r *Router) scanRoute(
	route *timetable.Route, routeID timetable.RouteId, hopOn timetable.StopRouteIndex,
	prevRound, curRound *RoundGraph,
	earliestArrivals map[StopId]Arrival, marked map[StopId]struct{},
	bestTarget timeutil.Time, round int,
	presetTrip *boardedTrip, disableCatch bool, sourceEdge int, hasSourceEdge bool,
) []int {
	var active *boardedTrip
	if presetTrip != nil {
		t := *presetTrip
		active = &t
	}
	var emitted []int

	for j := int(hopOn); j < route.StopCount(); j++ {
		stopIdx := timetable.StopRouteIndex(j)
		stop := route.StopAt(stopIdx)

		if active != nil && stopIdx != active.hopOnIndex {
			arrival := route.ArrivalAt(stopIdx, active.tripIndex)
			dropOff := route.DropOffTypeAt(stopIdx, active.tripIndex)
			current := timeutil.Unreached
			if ea, ok := earliestArrivals[stop]; ok {
				current = ea.Arrival
			}
			if dropOff != timetable.NotAvailable && arrival.IsBefore(current) && arrival.IsBefore(bestTarget) {
				edge := Edge{
					Kind:      VehicleEdge,
					Arrival:   arrival,
					FromIndex: active.hopOnIndex,
					ToIndex:   stopIdx,
					RouteID:   routeID,
					TripIndex: active.tripIndex,
				}
				if hasSourceEdge {
					edge.ContinuationOf = sourceEdge
					edge.HasContinuationOf = true
				}
				idx := curRound.set(stop, edge)
				earliestArrivals[stop] = Arrival{arrival, round}
				marked[stop] = struct{}{}
				emitted = append(emitted, idx)
			}
		}

		if disableCatch {
			continue
		}
		prevEdge, ok := prevRound.get(stop)
		if !ok {
			continue
		}
		prevArrival := prevEdge.Arrival
		canCatch := active == nil
		if active != nil {
			canCatch = !prevArrival.IsAfter(route.DepartureFrom(stopIdx, active.tripIndex))
		}
		if !canCatch {
			continue
		}
		var beforeTrip timetable.TripRouteIndex
		hasBeforeTrip := active != nil
		if active != nil {
			beforeTrip = active.tripIndex
		}
		if t, found := route.FindEarliestTrip(stopIdx, prevArrival, beforeTrip, hasBeforeTrip); found {
			active = &boardedTrip{tripIndex: t, hopOnIndex: stopIdx}
		}
	}
	return emitted
}

// relaxTransfers walks every stop marked before this round's transfer
// phase and writes a Transfer edge wherever it improves the destination's
// arrival. Stops newly marked by a transfer are not themselves treated as
// transfer sources this round: sources is snapshotted up front.
func (r *Router) relaxTransfers(round *RoundGraph, marked map[StopId]struct{}, earliestArrivals map[StopId]Arrival, opts Options, k int) {
	sources := make([]StopId, 0, len(marked))
	for s := range marked {
		sources = append(sources, s)
	}
	for _, s := range sources {
		edge, ok := round.get(s)
		if !ok {
			continue
		}
		for _, tr := range r.Timetable.GetTransfers(s) {
			dwell := opts.MinTransferTime
			switch {
			case tr.HasMinTransferTime:
				dwell = tr.MinTransferTime
			case tr.Type == timetable.InSeat:
				dwell = timeutil.Minutes(0)
			}
			arrival := edge.Arrival.Plus(dwell)

			current := timeutil.Unreached
			if ea, ok := earliestArrivals[tr.Destination]; ok {
				current = ea.Arrival
			}
			if !arrival.IsBefore(current) {
				continue
			}
			round.set(tr.Destination, Edge{
				Kind:               TransferEdge,
				Arrival:            arrival,
				From:               s,
				To:                 tr.Destination,
				TransferType:       tr.Type,
				MinTransferTime:    tr.MinTransferTime,
				HasMinTransferTime: tr.HasMinTransferTime,
			})
			earliestArrivals[tr.Destination] = Arrival{arrival, k}
			marked[tr.Destination] = struct{}{}
		}
	}
}

func bestTargetArrival(earliestArrivals map[StopId]Arrival, destinations []StopId) timeutil.Time {
	best := timeutil.Unreached
	for _, d := range destinations {
		if a, ok := earliestArrivals[d]; ok {
			best = best.Min(a.Arrival)
		}
	}
	return best
}

func expandUnique(index StopsIndex, sources []SourceStopId) []StopId {
	seen := map[StopId]struct{}{}
	var out []StopId
	for _, s := range sources {
		for _, stop := range index.EquivalentStops(s) {
			if _, ok := seen[stop]; ok {
				continue
			}
			seen[stop] = struct{}{}
			out = append(out, stop)
		}
	}
	return out
}
