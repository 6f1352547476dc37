package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Client tier of a stop. Determines sequencing priority and visit duration.
type Tier string

const (
	TierVIP      Tier = "VIP"
	TierStandard Tier = "Standard"
)

// ParseTier canonicalizes a raw tier value. The legacy "Standart" misspelling
// and any unrecognized value map to Standard, matching the historical data.
func ParseTier(s string) Tier {
	if strings.EqualFold(strings.TrimSpace(s), string(TierVIP)) {
		return TierVIP
	}
	return TierStandard
}

func (t Tier) Priority() int {
	if t == TierVIP {
		return 0
	}
	return 1
}

// Malformed stop input (unparseable coordinate or time window field).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid stop data: %s: %s", e.Field, e.Reason)
}

// A single visit candidate: an address with geo-coordinates, a client tier
// and daily work/lunch windows. Stops are immutable once constructed; the
// scheduling engine never mutates them.
type Stop struct {
	ID          int
	Address     string
	Location    Coordinates
	Tier        Tier
	WorkWindow  TimeWindow
	LunchWindow TimeWindow
}

// Visit length is derived from the tier, not stored.
func (s Stop) VisitDuration() time.Duration {
	if s.Tier == TierVIP {
		return 45 * time.Minute
	}
	return 30 * time.Minute
}

// ParseStop builds a validated Stop from raw textual fields, as they arrive
// from a CSV row. All parse failures surface as *ValidationError.
func ParseStop(id int, address, tier, lat, lon, workStart, workEnd, lunchStart, lunchEnd string) (Stop, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Stop{}, &ValidationError{Field: "address", Reason: "must not be empty"}
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Stop{}, &ValidationError{Field: "lat", Reason: fmt.Sprintf("%q is not numeric", lat)}
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Stop{}, &ValidationError{Field: "lon", Reason: fmt.Sprintf("%q is not numeric", lon)}
	}

	work, err := ParseTimeWindow(workStart, workEnd)
	if err != nil {
		return Stop{}, &ValidationError{Field: "work_window", Reason: err.Error()}
	}

	lunch, err := ParseTimeWindow(lunchStart, lunchEnd)
	if err != nil {
		return Stop{}, &ValidationError{Field: "lunch_window", Reason: err.Error()}
	}

	return Stop{
		ID:          id,
		Address:     address,
		Location:    Coordinates{Lat: latitude, Lon: longitude},
		Tier:        ParseTier(tier),
		WorkWindow:  work,
		LunchWindow: lunch,
	}, nil
}
