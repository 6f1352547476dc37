package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"route-planner-service/internal/adapters/repositories"
	"route-planner-service/internal/adapters/travel"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

func seededRepo(t *testing.T) *repositories.MemoryStopRepository {
	t.Helper()

	rows := [][2]string{
		{"Lenina 1", "Standard"},
		{"Pushkina 10", "VIP"},
		{"Sadovaya 5", "Standard"},
	}
	stops := make([]domain.Stop, 0, len(rows))
	for _, row := range rows {
		stop, err := domain.ParseStop(0, row[0], row[1], "47.22", "39.71", "09:00", "18:00", "13:00", "14:00")
		if err != nil {
			t.Fatalf("ParseStop(%q): %v", row[0], err)
		}
		stops = append(stops, stop)
	}
	return repositories.NewMemoryStopRepository(stops)
}

func newOptimizeHandler(repo ports.StopRepository, estimator ports.TravelEstimator) *OptimizeHandler {
	return &OptimizeHandler{
		Repo:      repo,
		Estimator: estimator,
		Now: func() time.Time {
			return time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func postOptimize(t *testing.T, h *OptimizeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

func TestOptimizeEndpoint(t *testing.T) {
	estimator := &travel.MockEstimator{
		Result: ports.TravelEstimate{
			DistanceKm:  8,
			DurationMin: 30,
			Traffic:     ports.TrafficConditions{Level: ports.TrafficMedium, Source: "tomtom"},
		},
	}
	h := newOptimizeHandler(seededRepo(t), estimator)

	rec := postOptimize(t, h, `{"points": [1, 2, 3], "user_location": [47.2, 39.7]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.TotalPoints != 3 || res.VIPCount != 1 || res.StandardCount != 2 {
		t.Errorf("counts = total %d, vip %d, standard %d", res.TotalPoints, res.VIPCount, res.StandardCount)
	}
	// The VIP stop leads the ordered route.
	if len(res.Points) == 0 || res.Points[0].StopID != 2 {
		t.Errorf("first point = %+v, want stop 2", res.Points)
	}
	if len(res.Schedule) != 3 {
		t.Fatalf("schedule has %d entries, want 3", len(res.Schedule))
	}
	if res.Schedule[0].ArrivalTime != "09:00" {
		t.Errorf("first arrival = %q, want 09:00", res.Schedule[0].ArrivalTime)
	}
	if res.Schedule[0].Date != "01.06.2026" {
		t.Errorf("date = %q, want 01.06.2026", res.Schedule[0].Date)
	}
	// Medium traffic at the default avoid_traffic=true carries the 1.3 multiplier.
	if res.DurationMin != 30 || res.RouteDurationMin != 39 {
		t.Errorf("durations = %f / %f, want 30 / 39", res.DurationMin, res.RouteDurationMin)
	}
	if res.TrafficInfo == nil {
		t.Fatal("traffic_info missing with avoid_traffic enabled")
	}
	if res.TrafficInfo.TrafficImpact != "+30%" {
		t.Errorf("traffic impact = %q, want +30%%", res.TrafficInfo.TrafficImpact)
	}
	if !res.TrafficInfo.HasTraffic {
		t.Error("has_traffic should be true for medium level")
	}

	if estimator.Calls != 1 {
		t.Errorf("estimator called %d times, want 1", estimator.Calls)
	}
}

func TestOptimizeTrafficDisabled(t *testing.T) {
	estimator := &travel.MockEstimator{
		Result: ports.TravelEstimate{DurationMin: 30, Traffic: ports.TrafficConditions{Level: ports.TrafficHigh}},
	}
	h := newOptimizeHandler(seededRepo(t), estimator)

	rec := postOptimize(t, h, `{"points": [1, 2], "avoid_traffic": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.RouteDurationMin != 30 {
		t.Errorf("route duration = %f, want 30 (no multiplier)", res.RouteDurationMin)
	}
	if res.TrafficInfo != nil {
		t.Errorf("traffic_info should be omitted, got %+v", res.TrafficInfo)
	}
}

func TestOptimizeSkipsUnknownIDs(t *testing.T) {
	estimator := &travel.MockEstimator{Result: ports.TravelEstimate{DurationMin: 10}}
	h := newOptimizeHandler(seededRepo(t), estimator)

	rec := postOptimize(t, h, `{"points": [1, 99]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalPoints != 1 {
		t.Errorf("total points = %d, want 1", res.TotalPoints)
	}
}

func TestOptimizeValidation(t *testing.T) {
	h := newOptimizeHandler(seededRepo(t), &travel.MockEstimator{})

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"points": [1`},
		{"unknown field", `{"points": [1], "bogus": true}`},
		{"no points", `{"points": []}`},
		{"bad user_location", `{"points": [1], "user_location": [47.2]}`},
		{"all ids unknown", `{"points": [404]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postOptimize(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestOptimizeMethodNotAllowed(t *testing.T) {
	h := newOptimizeHandler(seededRepo(t), &travel.MockEstimator{})

	req := httptest.NewRequest(http.MethodGet, "/optimize", nil)
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow = %q, want POST", allow)
	}
}
