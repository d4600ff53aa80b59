package main

import (
	"github.com/transitgo/raptor/loader"
	"github.com/transitgo/raptor/packedid"
	"github.com/transitgo/raptor/timetable"
	"github.com/transitgo/raptor/timeutil"
)

// buildDemoTimetable builds a small two-line timetable with one transfer,
// standing in for a real GTFS/ingester-backed feed. Parsing an external
// transit-data format is out of this module's scope; this fixture exists
// so the server has something to route over without one.
func buildDemoTimetable() *timetable.Timetable {
	b := loader.NewBuilder()

	redLine := b.AddServiceRoute(timetable.ServiceRoute{Type: timetable.Bus, Name: "Red Line"})
	blueLine := b.AddServiceRoute(timetable.ServiceRoute{Type: timetable.Tram, Name: "Blue Line"})

	b.AddRoute(redLine,
		[]timetable.StopId{1, 2, 3},
		2,
		[]timetable.StopTime{
			{Arrival: minutes(8, 0), Departure: minutes(8, 0)},
			{Arrival: minutes(8, 12), Departure: minutes(8, 14)},
			{Arrival: minutes(8, 28), Departure: minutes(8, 28)},
			{Arrival: minutes(8, 30), Departure: minutes(8, 30)},
			{Arrival: minutes(8, 42), Departure: minutes(8, 44)},
			{Arrival: minutes(8, 58), Departure: minutes(8, 58)},
		},
		regularPairs(6),
	)

	b.AddRoute(blueLine,
		[]timetable.StopId{2, 4, 5},
		2,
		[]timetable.StopTime{
			{Arrival: minutes(8, 20), Departure: minutes(8, 20)},
			{Arrival: minutes(8, 30), Departure: minutes(8, 30)},
			{Arrival: minutes(8, 40), Departure: minutes(8, 40)},
			{Arrival: minutes(8, 50), Departure: minutes(8, 50)},
			{Arrival: minutes(9, 0), Departure: minutes(9, 0)},
			{Arrival: minutes(9, 10), Departure: minutes(9, 10)},
		},
		regularPairs(6),
	)

	b.AddTransfer(3, timetable.Transfer{
		Destination:        5,
		Type:               timetable.RequiresMinimalTime,
		MinTransferTime:    timeutil.Minutes(5),
		HasMinTransferTime: true,
	})

	return b.Build()
}

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
