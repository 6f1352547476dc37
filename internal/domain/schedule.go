package domain

import "time"

// Represents one stop's computed slot in a visit schedule.
// A ScheduleEntry records when the visit starts and ends on a concrete date,
// along with the windows that constrained it. It is immutable planning data.
type ScheduleEntry struct {
	Order        int
	StopID       int
	Address      string
	Tier         Tier
	Arrival      time.Time
	Departure    time.Time
	VisitMinutes int
	WorkWindow   TimeWindow
	LunchWindow  TimeWindow
}
