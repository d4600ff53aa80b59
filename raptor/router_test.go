package raptor

import (
	"testing"

	"github.com/transitgo/raptor/packedid"
	"github.com/transitgo/raptor/timeutil"
	"github.com/transitgo/raptor/timetable"
)

func minutes(h, m int) timeutil.Time {
	return timeutil.Time(h*60 + m)
}

func regularPairs(n int) []packedid.PickupDropOffPair {
	pd := make([]packedid.PickupDropOffPair, n)
	for i := range pd {
		pd[i] = packedid.PickupDropOffPair{Pickup: timetable.Regular, DropOff: timetable.Regular}
	}
	return pd
}

func buildRoute(serviceID timetable.ServiceRouteId, stops []timetable.StopId, times []timetable.StopTime) *timetable.Route {
	return timetable.NewRoute(serviceID, stops, 1, times, regularPairs(len(stops)))
}

// denseAdjacency builds a StopAdjacency slice sized for stop ids up to max,
// filling in Routes for the given (stopID, routeID) pairs.
func denseAdjacency(max timetable.StopId, routesByStop map[timetable.StopId][]timetable.RouteId) []timetable.StopAdjacency {
	adj := make([]timetable.StopAdjacency, max+1)
	for stop, routes := range routesByStop {
		adj[stop] = timetable.StopAdjacency{Routes: routes}
	}
	return adj
}

func src(id int64) SourceStopId { return SourceStopId(id) }

// scenario 1: single-route direct trip.
func TestSingleRouteDirectTrip(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2, 3}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 10)},
		{Arrival: minutes(8, 15), Departure: minutes(8, 25)},
		{Arrival: minutes(8, 35), Departure: minutes(8, 45)},
	})
	adj := denseAdjacency(3, map[timetable.StopId][]timetable.RouteId{
		1: {0}, 2: {0}, 3: {0},
	})
	tt := timetable.New(adj, []*timetable.Route{route0}, []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}}, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(3)}, minutes(8, 0)))

	arrival, ok := res.EarliestArrivals[3]
	if !ok || arrival.Arrival != minutes(8, 35) || arrival.LegNumber != 1 {
		t.Fatalf("EarliestArrivals[3] = %+v, %v; want {08:35 1}", arrival, ok)
	}

	journey, ok := res.BestRoute(nil)
	if !ok {
		t.Fatalf("BestRoute() not found")
	}
	if len(journey.Legs) != 1 {
		t.Fatalf("BestRoute() legs = %d; want 1", len(journey.Legs))
	}
	leg := journey.Legs[0]
	if leg.Kind != VehicleEdge || leg.From != 1 || leg.To != 3 || leg.Arrival != minutes(8, 35) {
		t.Errorf("leg = %+v; want Vehicle 1->3 @08:35", leg)
	}
}

// scenario 2: transfer between routes at a shared stop.
func TestTransferAtSharedStop(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2, 3}, []timetable.StopTime{
		{Arrival: minutes(8, 15), Departure: minutes(8, 30)},
		{Arrival: minutes(8, 45), Departure: minutes(9, 0)},
		{Arrival: minutes(9, 0), Departure: minutes(9, 10)},
	})
	route1 := buildRoute(1, []timetable.StopId{4, 2, 5}, []timetable.StopTime{
		{Arrival: minutes(8, 20), Departure: minutes(8, 25)},
		{Arrival: minutes(9, 0), Departure: minutes(9, 15)},
		{Arrival: minutes(9, 20), Departure: minutes(9, 35)},
	})
	adj := denseAdjacency(5, map[timetable.StopId][]timetable.RouteId{
		1: {0}, 2: {0, 1}, 3: {0}, 4: {1}, 5: {1},
	})
	serviceRoutes := []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}, {Type: timetable.Bus, Name: "R1"}}
	tt := timetable.New(adj, []*timetable.Route{route0, route1}, serviceRoutes, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(5)}, minutes(8, 0)))

	arrival, ok := res.EarliestArrivals[5]
	if !ok || arrival.Arrival != minutes(9, 20) || arrival.LegNumber != 2 {
		t.Fatalf("EarliestArrivals[5] = %+v, %v; want {09:20 2}", arrival, ok)
	}

	journey, ok := res.BestRoute(nil)
	if !ok {
		t.Fatalf("BestRoute() not found")
	}
	if len(journey.Legs) != 2 {
		t.Fatalf("BestRoute() legs = %d; want 2", len(journey.Legs))
	}
	if journey.Legs[0].From != 1 || journey.Legs[0].To != 2 {
		t.Errorf("leg0 = %+v; want 1->2", journey.Legs[0])
	}
	if journey.Legs[1].From != 2 || journey.Legs[1].To != 5 {
		t.Errorf("leg1 = %+v; want 2->5", journey.Legs[1])
	}
}

// scenario 3: a REQUIRES_MINIMAL_TIME walk transfer forces boarding a later
// trip, and the reconstructed chain alternates Vehicle, Transfer, Vehicle.
func TestRequiresMinimalTimeTransfer(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 36), Departure: minutes(8, 36)},
	})
	route1 := timetable.NewRoute(1, []timetable.StopId{5, 6}, 2, []timetable.StopTime{
		{Arrival: minutes(8, 40), Departure: minutes(8, 40)},
		{Arrival: minutes(8, 50), Departure: minutes(8, 50)},
		{Arrival: minutes(9, 0), Departure: minutes(9, 0)},
		{Arrival: minutes(9, 10), Departure: minutes(9, 10)},
	}, regularPairs(4))

	adj := denseAdjacency(6, map[timetable.StopId][]timetable.RouteId{
		1: {0}, 2: {0}, 5: {1}, 6: {1},
	})
	adj[2].Transfers = []timetable.Transfer{
		{Destination: 5, Type: timetable.RequiresMinimalTime, MinTransferTime: timeutil.Minutes(5), HasMinTransferTime: true},
	}
	serviceRoutes := []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}, {Type: timetable.Bus, Name: "R1"}}
	tt := timetable.New(adj, []*timetable.Route{route0, route1}, serviceRoutes, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(6)}, minutes(8, 0)))

	// 08:36 + 5m dwell = 08:41, too late for the 08:40 trip at stop 5,
	// so the rider must catch the 09:00 trip, arriving 09:10.
	arrival, ok := res.EarliestArrivals[6]
	if !ok || arrival.Arrival != minutes(9, 10) {
		t.Fatalf("EarliestArrivals[6] = %+v, %v; want 09:10", arrival, ok)
	}

	journey, ok := res.BestRoute(nil)
	if !ok {
		t.Fatalf("BestRoute() not found")
	}
	if len(journey.Legs) != 3 {
		t.Fatalf("BestRoute() legs = %d; want 3 [Vehicle, Transfer, Vehicle]", len(journey.Legs))
	}
	if journey.Legs[0].Kind != VehicleEdge || journey.Legs[1].Kind != TransferEdge || journey.Legs[2].Kind != VehicleEdge {
		t.Errorf("leg kinds = %v,%v,%v; want Vehicle,Transfer,Vehicle", journey.Legs[0].Kind, journey.Legs[1].Kind, journey.Legs[2].Kind)
	}
	if journey.Legs[1].Arrival != minutes(8, 41) || journey.Legs[1].MinTransferTime != timeutil.Minutes(5) {
		t.Errorf("transfer leg = %+v; want arrival 08:41, dwell 5m", journey.Legs[1])
	}
}

// scenario 4: in-seat continuation merges two RouteIds into one leg and
// does not consume a round.
func TestInSeatContinuation(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 25), Departure: minutes(8, 25)},
	})
	route1 := buildRoute(1, []timetable.StopId{2, 4}, []timetable.StopTime{
		{Arrival: minutes(8, 25), Departure: minutes(8, 25)},
		{Arrival: minutes(8, 55), Departure: minutes(8, 55)},
	})
	adj := denseAdjacency(4, map[timetable.StopId][]timetable.RouteId{
		1: {0}, 2: {0, 1}, 4: {1},
	})
	serviceRoutes := []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}, {Type: timetable.Bus, Name: "R1"}}

	s2OnR0, err := packedid.EncodeTripStopId(1, 0, 0)
	if err != nil {
		t.Fatalf("EncodeTripStopId: %v", err)
	}
	continuations := map[packedid.TripStopId][]timetable.TripBoarding{
		s2OnR0: {{RouteID: 1, HopOnStopIndex: 0, TripIndex: 0}},
	}
	tt := timetable.New(adj, []*timetable.Route{route0, route1}, serviceRoutes, continuations)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(4)}, minutes(8, 0)))

	arrival, ok := res.EarliestArrivals[4]
	if !ok || arrival.Arrival != minutes(8, 55) || arrival.LegNumber != 1 {
		t.Fatalf("EarliestArrivals[4] = %+v, %v; want {08:55 1}", arrival, ok)
	}

	journey, ok := res.BestRoute(nil)
	if !ok {
		t.Fatalf("BestRoute() not found")
	}
	if len(journey.Legs) != 1 {
		t.Fatalf("BestRoute() legs = %d; want 1 (continuation merges into a single leg)", len(journey.Legs))
	}
	leg := journey.Legs[0]
	if leg.From != 1 || leg.To != 4 || leg.Arrival != minutes(8, 55) {
		t.Errorf("leg = %+v; want 1->4 @08:55", leg)
	}
	if len(leg.Vehicle) != 2 || leg.Vehicle[0].RouteID != 0 || leg.Vehicle[1].RouteID != 1 {
		t.Errorf("leg.Vehicle = %+v; want two segments on routes [0,1]", leg.Vehicle)
	}
}

// scenario 5: target pruning blocks edges, even at non-destination stops,
// once a faster path to a destination is known.
func TestTargetPruning(t *testing.T) {
	routeA := buildRoute(0, []timetable.StopId{1, 2}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(9, 0), Departure: minutes(9, 0)},
	})
	routeB := buildRoute(1, []timetable.StopId{1, 3}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 50), Departure: minutes(8, 50)},
	})
	routeC := buildRoute(2, []timetable.StopId{3, 5}, []timetable.StopTime{
		{Arrival: minutes(8, 50), Departure: minutes(8, 50)},
		{Arrival: minutes(9, 10), Departure: minutes(9, 10)},
	})
	adj := denseAdjacency(5, map[timetable.StopId][]timetable.RouteId{
		1: {0, 1}, 2: {0}, 3: {1, 2}, 5: {2},
	})
	serviceRoutes := []timetable.ServiceRoute{{Type: timetable.Bus, Name: "A"}, {Type: timetable.Bus, Name: "B"}, {Type: timetable.Bus, Name: "C"}}
	tt := timetable.New(adj, []*timetable.Route{routeA, routeB, routeC}, serviceRoutes, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(2)}, minutes(8, 0)))

	arrival, ok := res.EarliestArrivals[2]
	if !ok || arrival.Arrival != minutes(9, 0) {
		t.Fatalf("EarliestArrivals[2] = %+v, %v; want 09:00", arrival, ok)
	}
	if a, ok := res.EarliestArrivals[5]; ok {
		t.Errorf("EarliestArrivals[5] = %+v; want not reached (target-pruned, 09:10 >= 09:00)", a)
	}
	for round, g := range res.Graph {
		for _, e := range g.arena {
			if e.Arrival.Reached() && !e.Arrival.IsBefore(minutes(9, 0)) && round > 1 {
				t.Errorf("round %d wrote edge with arrival %v >= 09:00; want pruned", round, e.Arrival)
			}
		}
	}
}

// scenario 6: a destination with no routes and no transfers is never
// reached, but route() still completes and best_route()/arrival_at()
// report "not found" rather than erroring.
func TestUnreachableDestination(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 30), Departure: minutes(8, 30)},
	})
	adj := denseAdjacency(9, map[timetable.StopId][]timetable.RouteId{
		1: {0}, 2: {0},
	})
	tt := timetable.New(adj, []*timetable.Route{route0}, []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}}, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(9)}, minutes(8, 0)))

	if _, ok := res.EarliestArrivals[9]; ok {
		t.Errorf("EarliestArrivals[9] present; want unreached")
	}
	if _, ok := res.BestRoute(nil); ok {
		t.Errorf("BestRoute() found a route to an unreachable destination")
	}
	if _, ok := res.ArrivalAt([]StopId{9}, nil); ok {
		t.Errorf("ArrivalAt(9) found an arrival to an unreachable destination")
	}
}

// An unknown source stop (no equivalent stops) must not panic: route()
// completes with an empty origin set.
func TestUnknownSourceStopYieldsEmptyResult(t *testing.T) {
	tt := timetable.New(denseAdjacency(1, nil), nil, nil, nil)
	router := NewRouter(tt, fakeIndex{})
	res := router.Route(NewQuery(src(404), []SourceStopId{src(1)}, minutes(8, 0)))
	if len(res.EarliestArrivals) != 0 {
		t.Errorf("EarliestArrivals = %v; want empty", res.EarliestArrivals)
	}
}

type fakeIndex struct{}

func (fakeIndex) EquivalentStops(id SourceStopId) []timetable.StopId {
	if id == 404 {
		return nil
	}
	return []timetable.StopId{timetable.StopId(id)}
}

// Invariant: after k rounds, earliest_arrivals equals the minimum over all
// rounds <= k of graph[.][stop].arrival.
func TestMonotoneArrivalsInvariant(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2, 3}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 20), Departure: minutes(8, 20)},
		{Arrival: minutes(8, 40), Departure: minutes(8, 40)},
	})
	adj := denseAdjacency(3, map[timetable.StopId][]timetable.RouteId{1: {0}, 2: {0}, 3: {0}})
	tt := timetable.New(adj, []*timetable.Route{route0}, []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}}, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(3)}, minutes(8, 0)))

	for stop, ea := range res.EarliestArrivals {
		best := timeutil.Unreached
		for k := 0; k <= ea.LegNumber; k++ {
			if e, ok := res.Graph[k].get(stop); ok {
				best = best.Min(e.Arrival)
			}
		}
		if best != ea.Arrival {
			t.Errorf("stop %d: min over rounds <= %d = %v; earliest_arrivals = %v", stop, ea.LegNumber, best, ea.Arrival)
		}
	}
}

// Invariant: no reached destination uses more than max_transfers + 1 rounds.
func TestRoundBudgetInvariant(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 10), Departure: minutes(8, 10)},
	})
	adj := denseAdjacency(2, map[timetable.StopId][]timetable.RouteId{1: {0}, 2: {0}})
	tt := timetable.New(adj, []*timetable.Route{route0}, []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}}, nil)

	router := NewRouter(tt, nil)
	q := NewQuery(src(1), []SourceStopId{src(2)}, minutes(8, 0))
	q.Options.MaxTransfers = 0
	res := router.Route(q)

	ea, ok := res.EarliestArrivals[2]
	if !ok {
		t.Fatalf("EarliestArrivals[2] missing")
	}
	if ea.LegNumber > q.Options.MaxTransfers+1 {
		t.Errorf("leg_number = %d; want <= %d", ea.LegNumber, q.Options.MaxTransfers+1)
	}
}

// Invariant: every Vehicle edge has from_index < to_index.
func TestVehicleEdgeFromBeforeTo(t *testing.T) {
	route0 := buildRoute(0, []timetable.StopId{1, 2, 3}, []timetable.StopTime{
		{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
		{Arrival: minutes(8, 20), Departure: minutes(8, 20)},
		{Arrival: minutes(8, 40), Departure: minutes(8, 40)},
	})
	adj := denseAdjacency(3, map[timetable.StopId][]timetable.RouteId{1: {0}, 2: {0}, 3: {0}})
	tt := timetable.New(adj, []*timetable.Route{route0}, []timetable.ServiceRoute{{Type: timetable.Bus, Name: "R0"}}, nil)

	router := NewRouter(tt, nil)
	res := router.Route(NewQuery(src(1), []SourceStopId{src(3)}, minutes(8, 0)))

	for _, g := range res.Graph {
		for _, e := range g.arena {
			if e.Kind == VehicleEdge && e.FromIndex >= e.ToIndex {
				t.Errorf("Vehicle edge from_index=%d to_index=%d; want from < to", e.FromIndex, e.ToIndex)
			}
		}
	}
}
