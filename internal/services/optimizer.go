package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// Bounded timeout for the single synchronous provider call per request.
const estimateTimeout = 15 * time.Second

// Duration assumed per leg when the provider is unavailable, minutes.
const fallbackLegMinutes = 15

type OptimizeRequest struct {
	Stops         []domain.Stop
	StartLocation *domain.Coordinates
	TrafficAware  bool
	// Scheduling starts from this instant; callers inject it (typically now,
	// truncated to the minute) so runs are deterministic under test.
	ClockStart time.Time
}

// Aggregate figures for the planned route.
type RouteMetadata struct {
	DistanceKm          float64
	DurationMin         float64
	AdjustedDurationMin float64
	TrafficImpact       string // "+N%", empty when traffic was not considered
	Congestion          string // "N%", empty when the source had no flow data
}

type RouteResult struct {
	Stops    []domain.Stop
	Schedule []domain.ScheduleEntry
	Metadata RouteMetadata
	Traffic  ports.TrafficConditions
}

// OptimizeRoute sequences the selected stops, obtains a travel estimate and
// builds the per-stop schedule.
//
// An empty selection returns empty results without calling the provider.
// Provider failure is absorbed: scheduling proceeds on a fixed per-leg
// fallback duration with unknown traffic, and always completes.
func OptimizeRoute(ctx context.Context, req OptimizeRequest, estimator ports.TravelEstimator) *RouteResult {
	if len(req.Stops) == 0 {
		return &RouteResult{
			Stops:    []domain.Stop{},
			Schedule: []domain.ScheduleEntry{},
			Traffic:  ports.TrafficConditions{Level: ports.TrafficUnknown},
		}
	}

	ordered := SequenceStops(req.Stops)

	path := make([]domain.Coordinates, 0, len(ordered)+1)
	if req.StartLocation != nil {
		path = append(path, *req.StartLocation)
	}
	for _, stop := range ordered {
		path = append(path, stop.Location)
	}

	estimate := fallbackEstimate(len(path) - 1)
	if len(path) >= 2 {
		ectx, cancel := context.WithTimeout(ctx, estimateTimeout)
		defer cancel()

		est, err := estimator.Estimate(ectx, path, req.TrafficAware)
		if err != nil {
			log.Printf("travel estimate failed, scheduling on fallback: %v", err)
		} else {
			estimate = est
		}
	}

	meta := RouteMetadata{
		DistanceKm:          estimate.DistanceKm,
		DurationMin:         estimate.DurationMin,
		AdjustedDurationMin: estimate.DurationMin,
	}

	// The scheduler consumes the traffic-adjusted duration, so the global
	// multiplier and the per-leg congestion penalty compose. Observed
	// behavior, kept pending product clarification.
	adjusted := estimate
	if req.TrafficAware {
		multiplier := estimate.Traffic.Level.Multiplier()
		adjusted.DurationMin = estimate.DurationMin * multiplier
		meta.AdjustedDurationMin = adjusted.DurationMin
		meta.TrafficImpact = fmt.Sprintf("+%d%%", int(math.Round((multiplier-1)*100)))
		if estimate.Traffic.CongestionRatio != nil {
			meta.Congestion = fmt.Sprintf("%.1f%%", *estimate.Traffic.CongestionRatio)
		}
	}

	clockStart := req.ClockStart
	if clockStart.IsZero() {
		clockStart = time.Now().Truncate(time.Minute)
	}

	schedule := BuildSchedule(ordered, adjusted, clockStart, req.TrafficAware)

	return &RouteResult{
		Stops:    ordered,
		Schedule: schedule,
		Metadata: meta,
		Traffic:  estimate.Traffic,
	}
}

// fallbackEstimate is used when the provider failed or the path was too short
// to query. Duration defaults to a fixed share per leg; traffic is unknown.
func fallbackEstimate(legs int) ports.TravelEstimate {
	if legs < 0 {
		legs = 0
	}
	return ports.TravelEstimate{
		DurationMin: float64(fallbackLegMinutes * legs),
		Traffic:     ports.TrafficConditions{Level: ports.TrafficUnknown},
	}
}
