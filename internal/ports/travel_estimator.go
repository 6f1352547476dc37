package ports

import (
	"context"
	"errors"

	"route-planner-service/internal/domain"
)

// Traffic severity classification reported by the traffic source.
type TrafficLevel string

const (
	TrafficLow      TrafficLevel = "low"
	TrafficMedium   TrafficLevel = "medium"
	TrafficHigh     TrafficLevel = "high"
	TrafficVeryHigh TrafficLevel = "very_high"
	TrafficUnknown  TrafficLevel = "unknown"
)

// Multiplier returns the duration inflation factor for the level.
// Unknown levels carry no inflation.
func (l TrafficLevel) Multiplier() float64 {
	switch l {
	case TrafficLow:
		return 1.0
	case TrafficMedium:
		return 1.3
	case TrafficHigh:
		return 1.8
	case TrafficVeryHigh:
		return 2.5
	default:
		return 1.0
	}
}

// Congested reports whether the level triggers the per-leg schedule penalty.
func (l TrafficLevel) Congested() bool {
	return l == TrafficHigh || l == TrafficVeryHigh
}

// A single road incident. Incident details are pass-through metadata for the
// API layer; scheduling logic does not consume them.
type Incident struct {
	Type        string
	Description string
	Severity    string
	Location    domain.Coordinates
}

// Road conditions for an area at a point in time.
type TrafficConditions struct {
	Level            TrafficLevel
	Message          string
	CurrentSpeedKmh  float64
	FreeFlowSpeedKmh float64
	CongestionRatio  *float64 // percent, nil when the source had no flow data
	Incidents        []Incident
	Source           string
}

// Aggregate estimate for an ordered coordinate path.
type TravelEstimate struct {
	DistanceKm  float64
	DurationMin float64
	Traffic     TrafficConditions
}

// ErrEstimateUnavailable marks provider failures the caller must absorb via
// the documented scheduling fallback rather than surface.
var ErrEstimateUnavailable = errors.New("travel estimate unavailable")

// Contract for retrieving an aggregate travel estimate for a path.
type TravelEstimator interface {
	// Estimate returns distance/duration for the whole path, plus a traffic
	// classification when wantTraffic is set. The path has at least 2 points.
	Estimate(ctx context.Context, path []domain.Coordinates, wantTraffic bool) (TravelEstimate, error)
}

// Contract for retrieving current traffic conditions for an area.
type TrafficProvider interface {
	Conditions(ctx context.Context, box domain.BoundingBox) (TrafficConditions, error)
}
