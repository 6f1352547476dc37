package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

// Padding in degrees around the route path when querying traffic conditions.
const trafficBoundsPadding = 0.1

// OSRMEstimator implements TravelEstimator using the public OSRM routing
// service, composed with a TrafficProvider for the traffic classification.
//
// The estimator is safe for concurrent use.
type OSRMEstimator struct {
	session *http.Client
	baseURL string
	traffic ports.TrafficProvider
}

func NewOSRMEstimator(traffic ports.TrafficProvider) *OSRMEstimator {
	return &OSRMEstimator{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: "http://router.project-osrm.org/route/v1/driving",
		traffic: traffic,
	}
}

type osrmRoute struct {
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// Estimate fetches an aggregate route for the path. Traffic conditions are
// looked up over the path's bounding box; a traffic lookup failure degrades
// to an unknown classification rather than failing the estimate.
func (o *OSRMEstimator) Estimate(
	ctx context.Context,
	path []domain.Coordinates,
	wantTraffic bool,
) (_ ports.TravelEstimate, err error) {
	defer obs.Time(ctx, "osrm.Estimate")(&err)

	if len(path) < 2 {
		return ports.TravelEstimate{}, errors.New("estimate route: path must have at least 2 points")
	}

	conditions := ports.TrafficConditions{Level: ports.TrafficUnknown}
	if wantTraffic && o.traffic != nil {
		box := domain.PathBounds(path, trafficBoundsPadding)
		c, terr := o.traffic.Conditions(ctx, box)
		if terr != nil {
			log.Printf("traffic conditions unavailable: %v", terr)
		} else {
			conditions = c
		}
	}

	coords := make([]string, 0, len(path))
	for _, p := range path {
		// OSRM expects lon,lat pairs.
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lon, p.Lat))
	}
	url := fmt.Sprintf("%s/%s?overview=false", o.baseURL, strings.Join(coords, ";"))

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		return newJSONRequest(ctx, http.MethodGet, url)
	})
	if err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("estimate route: %w: %v", ports.ErrEstimateUnavailable, err)
	}
	defer resp.Body.Close()

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("estimate route: decode response: %w: %v", ports.ErrEstimateUnavailable, err)
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return ports.TravelEstimate{}, fmt.Errorf("estimate route: %w: osrm code %q", ports.ErrEstimateUnavailable, body.Code)
	}

	route := body.Routes[0]
	return ports.TravelEstimate{
		DistanceKm:  route.Distance / 1000,
		DurationMin: route.Duration / 60,
		Traffic:     conditions,
	}, nil
}
