package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time of day in minutes from midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse time of day: %q is not in HH:MM format", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("parse time of day: %q has invalid hour", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse time of day: %q has invalid minute", s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// At anchors the time of day to the calendar date of ref, in ref's location.
func (t TimeOfDay) At(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), int(t)/60, int(t)%60, 0, 0, ref.Location())
}

// TimeOfDayOf extracts the minute-resolution time of day from an instant.
func TimeOfDayOf(ref time.Time) TimeOfDay {
	return TimeOfDay(ref.Hour()*60 + ref.Minute())
}

// Daily time range with inclusive bounds.
type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseTimeWindow parses a pair of "HH:MM" strings.
func ParseTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeWindow{}, err
	}

	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeWindow{}, err
	}

	return TimeWindow{Start: s, End: e}, nil
}

func (w TimeWindow) Contains(t TimeOfDay) bool {
	return t >= w.Start && t <= w.End
}

func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}
