package main

import (
	"github.com/transitgo/raptor/config"
	"github.com/transitgo/raptor/raptor"
	"github.com/transitgo/raptor/timetable"
	"github.com/transitgo/raptor/timeutil"
)

// RouteRequest is the POST /v1/route body. DepartureTime and the optional
// overrides are all in the query layer's native units: minutes since
// midnight, minutes of dwell.
type RouteRequest struct {
	From            int64    `json:"from"`
	To              []int64  `json:"to"`
	DepartureTime   int32    `json:"departure_time"`
	MaxTransfers    *int     `json:"max_transfers,omitempty"`
	MinTransferTime *int32   `json:"min_transfer_time,omitempty"`
	TransportModes  []string `json:"transport_modes,omitempty"`
}

// VehicleSegmentView is one trip-board-to-alight hop within a merged
// in-seat vehicle leg.
type VehicleSegmentView struct {
	RouteID   int32  `json:"route_id"`
	TripIndex int    `json:"trip_index"`
	From      int32  `json:"from"`
	To        int32  `json:"to"`
	Arrival   string `json:"arrival"`
}

// LegView is one Leg of a Journey, JSON-shaped.
type LegView struct {
	Kind               string               `json:"kind"`
	From               int32                `json:"from"`
	To                 int32                `json:"to"`
	Arrival            string               `json:"arrival"`
	Vehicle            []VehicleSegmentView `json:"vehicle,omitempty"`
	TransferType       string               `json:"transfer_type,omitempty"`
	MinTransferTime    int32                `json:"min_transfer_time,omitempty"`
	HasMinTransferTime bool                 `json:"has_min_transfer_time,omitempty"`
}

// RouteResponse is the POST /v1/route success body.
type RouteResponse struct {
	Destination int32     `json:"destination"`
	Arrival     string    `json:"arrival"`
	Transfers   int       `json:"transfers"`
	Legs        []LegView `json:"legs"`
}

// routeHandler closes over the server's Router and answers one journey
// query per request.
type routeHandler struct {
	router *raptor.Router
}

func (h routeHandler) handle(req RouteRequest) Result {
	if len(req.To) == 0 {
		return BadRequest(NewErrorResponse("/v1/route", "to must not be empty"))
	}

	opts := raptor.DefaultOptions()
	if req.MaxTransfers != nil {
		opts.MaxTransfers = *req.MaxTransfers
	}
	if req.MinTransferTime != nil {
		opts.MinTransferTime = timeutil.Minutes(*req.MinTransferTime)
	}
	if len(req.TransportModes) > 0 {
		modes, err := parseModes(req.TransportModes)
		if err != nil {
			return BadRequest(NewErrorResponse("/v1/route", err.Error()))
		}
		opts.TransportModes = modes
	}

	to := make([]raptor.SourceStopId, len(req.To))
	for i, s := range req.To {
		to[i] = raptor.SourceStopId(s)
	}
	q := raptor.NewQuery(raptor.SourceStopId(req.From), to, timeutil.Time(req.DepartureTime))
	q.Options = opts

	result := h.router.Route(q)
	journey, ok := result.BestRoute(result.Destinations)
	if !ok {
		return BadRequest(NewErrorResponse("/v1/route", "destination unreachable"))
	}
	return OK(routeResponseFrom(journey))
}

func parseModes(names []string) (map[timetable.RouteType]bool, error) {
	modes := make(map[timetable.RouteType]bool, len(names))
	for _, name := range names {
		rt, err := config.ParseRouteType(name)
		if err != nil {
			return nil, err
		}
		modes[rt] = true
	}
	return modes, nil
}

func routeResponseFrom(j raptor.Journey) RouteResponse {
	legs := make([]LegView, len(j.Legs))
	for i, leg := range j.Legs {
		legs[i] = legViewFrom(leg)
	}
	var arrival string
	if len(j.Legs) > 0 {
		arrival = j.Legs[len(j.Legs)-1].Arrival.String()
	}
	return RouteResponse{
		Destination: int32(j.Destination),
		Arrival:     arrival,
		Transfers:   countVehicleLegs(j.Legs) - 1,
		Legs:        legs,
	}
}

func countVehicleLegs(legs []raptor.Leg) int {
	n := 0
	for _, l := range legs {
		if l.Kind == raptor.VehicleEdge {
			n++
		}
	}
	return n
}

func legViewFrom(leg raptor.Leg) LegView {
	view := LegView{
		Kind:    leg.Kind.String(),
		From:    int32(leg.From),
		To:      int32(leg.To),
		Arrival: leg.Arrival.String(),
	}
	if leg.Kind == raptor.TransferEdge {
		view.TransferType = leg.TransferType.String()
		view.MinTransferTime = int32(leg.MinTransferTime)
		view.HasMinTransferTime = leg.HasMinTransferTime
	}
	if len(leg.Vehicle) > 0 {
		view.Vehicle = make([]VehicleSegmentView, len(leg.Vehicle))
		for i, seg := range leg.Vehicle {
			view.Vehicle[i] = VehicleSegmentView{
				RouteID:   int32(seg.RouteID),
				TripIndex: int(seg.TripIndex),
				From:      int32(seg.From),
				To:        int32(seg.To),
				Arrival:   seg.Arrival.String(),
			}
		}
	}
	return view
}
