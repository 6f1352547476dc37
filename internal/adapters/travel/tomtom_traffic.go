package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// Cache of traffic conditions keyed by bounding box.
// Implementations are injected by the composition root.
type TrafficCache interface {
	// Get returns nil without error on a cache miss.
	Get(ctx context.Context, key string) (*ports.TrafficConditions, error)
	Put(ctx context.Context, key string, conditions ports.TrafficConditions) error
}

var incidentTypeNames = map[string]string{
	"ACCIDENT":    "Accident",
	"ROAD_CLOSED": "Road closed",
	"ROAD_WORKS":  "Road works",
	"WEATHER":     "Weather",
	"JAM":         "Jam",
	"HAZARD":      "Hazard",
}

var trafficMessages = map[ports.TrafficLevel]string{
	ports.TrafficLow:      "Free flow",
	ports.TrafficMedium:   "Moderate traffic",
	ports.TrafficHigh:     "Heavy traffic",
	ports.TrafficVeryHigh: "Congested",
}

// TomTomTraffic implements TrafficProvider using the TomTom traffic services.
//
// It coordinates:
//   - Flow segment analysis near the area center
//   - Incident retrieval for the area
//   - A short-lived conditions cache to avoid repeated lookups
//   - Degradation to a simulated source when no key is set or a call fails
//
// The provider is safe for concurrent use.
type TomTomTraffic struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	cache    TrafficCache
	fallback ports.TrafficProvider
}

// NewTomTomTraffic builds the provider. An empty apiKey is allowed: every
// lookup then comes from the simulated source. cache may be nil.
func NewTomTomTraffic(apiKey string, trafficCache TrafficCache) *TomTomTraffic {
	return &TomTomTraffic{
		session:  &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		baseURL:  "https://api.tomtom.com/traffic/services/4",
		cache:    trafficCache,
		fallback: NewSimulatedTraffic(),
	}
}

// Conditions returns current traffic conditions for the area. This never
// fails outright: any TomTom error falls back to simulated conditions.
func (t *TomTomTraffic) Conditions(ctx context.Context, box domain.BoundingBox) (ports.TrafficConditions, error) {
	if t.apiKey == "" {
		return t.fallback.Conditions(ctx, box)
	}

	key := box.Key()
	if t.cache != nil {
		hit, err := t.cache.Get(ctx, key)
		if err != nil {
			log.Printf("traffic cache read failed: %v", err)
		} else if hit != nil {
			return *hit, nil
		}
	}

	conditions, err := t.fetch(ctx, box)
	if err != nil {
		log.Printf("tomtom lookup failed, using simulated conditions: %v", err)
		return t.fallback.Conditions(ctx, box)
	}

	if t.cache != nil {
		if err := t.cache.Put(ctx, key, conditions); err != nil {
			log.Printf("traffic cache write failed: %v", err)
		}
	}

	return conditions, nil
}

func (t *TomTomTraffic) fetch(ctx context.Context, box domain.BoundingBox) (ports.TrafficConditions, error) {
	conditions := ports.TrafficConditions{
		Level:   ports.TrafficLow,
		Message: trafficMessages[ports.TrafficLow],
		Source:  "tomtom",
	}

	flow, err := t.flowSegment(ctx, box)
	if err != nil {
		return ports.TrafficConditions{}, fmt.Errorf("flow segment: %w", err)
	}

	if flow.FreeFlowSpeed > 0 {
		ratio := flow.CurrentSpeed / flow.FreeFlowSpeed
		level := levelFromSpeedRatio(ratio)
		congestion := (1 - ratio) * 100

		conditions.Level = level
		conditions.Message = trafficMessages[level]
		conditions.CurrentSpeedKmh = flow.CurrentSpeed
		conditions.FreeFlowSpeedKmh = flow.FreeFlowSpeed
		conditions.CongestionRatio = &congestion
	}

	// Incidents are supplementary; their failure does not spoil flow data.
	incidents, err := t.incidents(ctx, box)
	if err != nil {
		log.Printf("tomtom incidents lookup failed: %v", err)
	} else {
		conditions.Incidents = incidents
		if n := len(incidents); n > 0 {
			conditions.Message = fmt.Sprintf("%s, %d incidents", conditions.Message, n)
		}
	}

	return conditions, nil
}

func levelFromSpeedRatio(ratio float64) ports.TrafficLevel {
	switch {
	case ratio >= 0.8:
		return ports.TrafficLow
	case ratio >= 0.5:
		return ports.TrafficMedium
	case ratio >= 0.3:
		return ports.TrafficHigh
	default:
		return ports.TrafficVeryHigh
	}
}

type flowSegment struct {
	CurrentSpeed  float64 `json:"currentSpeed"`
	FreeFlowSpeed float64 `json:"freeFlowSpeed"`
}

type flowResponse struct {
	FlowSegmentData flowSegment `json:"flowSegmentData"`
}

// flowSegment samples the traffic flow near the center of the area.
func (t *TomTomTraffic) flowSegment(ctx context.Context, box domain.BoundingBox) (flowSegment, error) {
	centerLat := (box.MinLat + box.MaxLat) / 2
	centerLon := (box.MinLon + box.MaxLon) / 2

	params := url.Values{}
	params.Set("point", fmt.Sprintf("%f,%f", centerLat, centerLon))
	params.Set("unit", "KMPH")
	params.Set("zoom", "12")
	params.Set("key", t.apiKey)

	endpoint := fmt.Sprintf("%s/flowSegmentData/absolute/10/json?%s", t.baseURL, params.Encode())

	resp, err := doWithRetry(ctx, t.session, func() (*http.Request, error) {
		return newJSONRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return flowSegment{}, err
	}
	defer resp.Body.Close()

	var body flowResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return flowSegment{}, fmt.Errorf("decode flow response: %w", err)
	}

	return body.FlowSegmentData, nil
}

type incidentProperties struct {
	Description      string `json:"description"`
	MagnitudeOfDelay string `json:"magnitudeOfDelay"`
}

type incidentGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // lon, lat for Point
}

type incidentItem struct {
	Type       string             `json:"type"`
	Geometry   incidentGeometry   `json:"geometry"`
	Properties incidentProperties `json:"properties"`
}

type incidentsResponse struct {
	Incidents []incidentItem `json:"incidents"`
}

func (t *TomTomTraffic) incidents(ctx context.Context, box domain.BoundingBox) ([]ports.Incident, error) {
	params := url.Values{}
	params.Set("bbox", fmt.Sprintf("%f,%f,%f,%f", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon))
	params.Set("fields", "{incidents{type,geometry,properties}}")
	params.Set("categoryFilter", "0,1,2,3,4,5,6,7,8,9,10,11,14")
	params.Set("key", t.apiKey)

	endpoint := fmt.Sprintf("%s/incidentDetails?%s", t.baseURL, params.Encode())

	resp, err := doWithRetry(ctx, t.session, func() (*http.Request, error) {
		return newJSONRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body incidentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode incidents response: %w", err)
	}

	out := make([]ports.Incident, 0, len(body.Incidents))
	for _, item := range body.Incidents {
		name, ok := incidentTypeNames[item.Type]
		if !ok {
			name = item.Type
		}

		severity := item.Properties.MagnitudeOfDelay
		if severity == "" {
			severity = "medium"
		}

		incident := ports.Incident{
			Type:        name,
			Description: item.Properties.Description,
			Severity:    severity,
		}
		if item.Geometry.Type == "Point" && len(item.Geometry.Coordinates) >= 2 {
			incident.Location = domain.Coordinates{
				Lon: item.Geometry.Coordinates[0],
				Lat: item.Geometry.Coordinates[1],
			}
		}

		out = append(out, incident)
	}

	return out, nil
}
