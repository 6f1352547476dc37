package services

import (
	"time"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

const (
	// Floor for the per-leg travel share, minutes.
	minSegmentMinutes = 5.0
	// Extra per-leg penalty applied on top of the globally adjusted duration
	// when conditions are congested. The two penalties compose.
	congestionPenalty = 1.5
)

// BuildSchedule walks an ordered stop sequence and emits one entry per stop.
//
// A single time cursor advances through the walk and never moves backward:
// it is clamped forward out of each stop's lunch window, then up to the work
// window start, before the visit is recorded. The estimate's aggregate
// duration is divided evenly across all stops rather than estimated per leg;
// no travel time is added after the last stop. A cursor that has drifted past
// a stop's work end is not clamped - the visit is recorded late as-is.
func BuildSchedule(
	stops []domain.Stop,
	estimate ports.TravelEstimate,
	clockStart time.Time,
	trafficAware bool,
) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, 0, len(stops))
	cursor := clockStart
	total := len(stops)

	for i, stop := range stops {
		cursor = adjustForWindows(cursor, stop)

		visit := stop.VisitDuration()
		departure := cursor.Add(visit)

		entries = append(entries, domain.ScheduleEntry{
			Order:        i + 1,
			StopID:       stop.ID,
			Address:      stop.Address,
			Tier:         stop.Tier,
			Arrival:      cursor,
			Departure:    departure,
			VisitMinutes: int(visit.Minutes()),
			WorkWindow:   stop.WorkWindow,
			LunchWindow:  stop.LunchWindow,
		})

		if i == total-1 {
			break
		}

		segment := estimate.DurationMin / float64(total)
		if segment < minSegmentMinutes {
			segment = minSegmentMinutes
		}
		if trafficAware && estimate.Traffic.Level.Congested() {
			segment *= congestionPenalty
		}
		cursor = departure.Add(time.Duration(segment * float64(time.Minute)))
	}

	return entries
}

// adjustForWindows clamps the cursor forward out of the stop's lunch window,
// or up to the start of its work window. Never moves the cursor backward.
func adjustForWindows(cursor time.Time, stop domain.Stop) time.Time {
	tod := domain.TimeOfDayOf(cursor)

	switch {
	case stop.LunchWindow.Contains(tod):
		return stop.LunchWindow.End.At(cursor)
	case tod < stop.WorkWindow.Start:
		return stop.WorkWindow.Start.At(cursor)
	}

	return cursor
}
