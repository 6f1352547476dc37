package travel

import (
	"context"
	"math/rand"
	"time"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// SimulatedTraffic produces plausible traffic conditions from the time of
// day: rush hours are congested, midday is moderate, nights are clear.
// Used whenever live TomTom data cannot be obtained.
type SimulatedTraffic struct {
	now func() time.Time
}

func NewSimulatedTraffic() *SimulatedTraffic {
	return &SimulatedTraffic{now: time.Now}
}

var simulatedIncidentTypes = []string{"Accident", "Road works", "Road closed", "Jam"}

var simulatedSeverities = []string{"low", "medium", "high"}

func (s *SimulatedTraffic) Conditions(ctx context.Context, box domain.BoundingBox) (ports.TrafficConditions, error) {
	hour := s.now().Hour()

	var level ports.TrafficLevel
	switch {
	case (hour >= 7 && hour <= 10) || (hour >= 17 && hour <= 20):
		level = pick(ports.TrafficHigh, ports.TrafficVeryHigh)
	case hour >= 11 && hour <= 16:
		level = pick(ports.TrafficMedium, ports.TrafficHigh)
	default:
		level = ports.TrafficLow
	}

	conditions := ports.TrafficConditions{
		Level:   level,
		Message: trafficMessages[level],
		Source:  "simulated",
	}

	if level.Congested() {
		count := 1 + rand.Intn(3)
		for i := 0; i < count; i++ {
			kind := simulatedIncidentTypes[rand.Intn(len(simulatedIncidentTypes))]
			conditions.Incidents = append(conditions.Incidents, ports.Incident{
				Type:        kind,
				Description: kind + " on a road segment",
				Severity:    simulatedSeverities[rand.Intn(len(simulatedSeverities))],
				Location: domain.Coordinates{
					Lat: box.MinLat + (box.MaxLat-box.MinLat)*rand.Float64(),
					Lon: box.MinLon + (box.MaxLon-box.MinLon)*rand.Float64(),
				},
			})
		}
	}

	return conditions, nil
}

func pick(a, b ports.TrafficLevel) ports.TrafficLevel {
	if rand.Intn(2) == 0 {
		return a
	}
	return b
}
