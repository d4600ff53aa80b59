package raptor

import (
	"github.com/transitgo/raptor/timeutil"
	"github.com/transitgo/raptor/timetable"
)

// EdgeKind tags the three shapes a RoutingEdge can take.
type EdgeKind byte

const (
	// OriginEdge marks a query's starting stop; it carries no predecessor.
	OriginEdge EdgeKind = iota
	// VehicleEdge records boarding a route at FromIndex and alighting at
	// ToIndex on TripIndex.
	VehicleEdge
	// TransferEdge records a walk (or in-seat) connection from From to To.
	TransferEdge
)

func (k EdgeKind) String() string {
	switch k {
	case OriginEdge:
		return "origin"
	case VehicleEdge:
		return "vehicle"
	case TransferEdge:
		return "transfer"
	default:
		return "unknown"
	}
}

// Edge is one entry in a round's predecessor graph. Which fields are
// meaningful depends on Kind: Go has no tagged union, so this is a single
// struct wide enough for all three shapes rather than an interface, since
// Router needs to store these by value in a flat arena.
type Edge struct {
	Kind    EdgeKind
	Arrival timeutil.Time

	// Vehicle fields.
	FromIndex timetable.StopRouteIndex
	ToIndex   timetable.StopRouteIndex
	RouteID   timetable.RouteId
	TripIndex timetable.TripRouteIndex
	// ContinuationOf is the arena index, within the same round, of the
	// Vehicle edge this one continues in-seat from. Indices rather than
	// pointers, because a continuation chain is rebuilt from a stable
	// per-round arena, and multiple later edges may reference the same
	// predecessor.
	ContinuationOf    int
	HasContinuationOf bool

	// Transfer fields.
	From               StopId
	To                 StopId
	TransferType       timetable.TransferType
	MinTransferTime    timeutil.Duration
	HasMinTransferTime bool
}

// StopId is re-exported for readability in this package's public surface.
type StopId = timetable.StopId

// RoundGraph is one round's predecessor graph: an arena of every edge
// written during the round, plus a map from stop to the arena index of the
// current best edge reaching it. Superseded edges stay in the arena so
// that continuation chains recorded against them (ContinuationOf) remain
// resolvable even after a later edge displaces them as the round's best.
type RoundGraph struct {
	arena []Edge
	best  map[StopId]int
}

func newRoundGraph() *RoundGraph {
	return &RoundGraph{best: map[StopId]int{}}
}

// set appends e to the arena, records it as stop's current best edge, and
// returns its arena index.
func (g *RoundGraph) set(stop StopId, e Edge) int {
	idx := len(g.arena)
	g.arena = append(g.arena, e)
	g.best[stop] = idx
	return idx
}

// get returns the current best edge reaching stop in this round.
func (g *RoundGraph) get(stop StopId) (Edge, bool) {
	idx, ok := g.best[stop]
	if !ok {
		return Edge{}, false
	}
	return g.arena[idx], true
}

// EdgeAt returns the arena entry at idx, as recorded by a prior set call.
func (g *RoundGraph) EdgeAt(idx int) Edge {
	return g.arena[idx]
}
