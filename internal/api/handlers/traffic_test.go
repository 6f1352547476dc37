package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

type stubTrafficProvider struct {
	conditions ports.TrafficConditions
	lastBox    domain.BoundingBox
}

func (s *stubTrafficProvider) Conditions(ctx context.Context, box domain.BoundingBox) (ports.TrafficConditions, error) {
	s.lastBox = box
	return s.conditions, nil
}

func TestTrafficConditionsDefaultBounds(t *testing.T) {
	provider := &stubTrafficProvider{conditions: ports.TrafficConditions{
		Level:   ports.TrafficHigh,
		Message: "heavy traffic",
		Source:  "tomtom",
		Incidents: []ports.Incident{
			{Type: "Accident", Severity: "high", Location: domain.Coordinates{Lat: 47.2, Lon: 39.7}},
			{Type: "Accident", Severity: "medium", Location: domain.Coordinates{Lat: 47.3, Lon: 39.8}},
		},
	}}
	h := &TrafficHandler{
		Provider:      provider,
		DefaultBounds: domain.BoundingBox{MinLon: 39.5, MinLat: 47.1, MaxLon: 40.0, MaxLat: 47.4},
	}

	req := httptest.NewRequest(http.MethodGet, "/traffic", nil)
	rec := httptest.NewRecorder()
	h.Conditions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if provider.lastBox != h.DefaultBounds {
		t.Errorf("provider called with %+v, want default bounds", provider.lastBox)
	}

	var res dto.TrafficInfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Level != "high" || !res.HasTraffic {
		t.Errorf("level = %q, has_traffic = %v", res.Level, res.HasTraffic)
	}
	if res.IncidentsCount != 2 || !res.HasIncidents {
		t.Errorf("incidents_count = %d, has_incidents = %v", res.IncidentsCount, res.HasIncidents)
	}
	if res.Source != "tomtom" {
		t.Errorf("source = %q", res.Source)
	}
}

func TestTrafficConditionsCustomBBox(t *testing.T) {
	provider := &stubTrafficProvider{conditions: ports.TrafficConditions{Level: ports.TrafficLow, Source: "simulated"}}
	h := &TrafficHandler{Provider: provider}

	req := httptest.NewRequest(http.MethodGet, "/traffic?bbox=39.6,47.15,39.9,47.35", nil)
	rec := httptest.NewRecorder()
	h.Conditions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	want := domain.BoundingBox{MinLon: 39.6, MinLat: 47.15, MaxLon: 39.9, MaxLat: 47.35}
	if provider.lastBox != want {
		t.Errorf("provider called with %+v, want %+v", provider.lastBox, want)
	}

	var res dto.TrafficInfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.HasTraffic {
		t.Error("has_traffic should be false for low level")
	}
}

func TestTrafficConditionsBadBBox(t *testing.T) {
	h := &TrafficHandler{Provider: &stubTrafficProvider{}}

	for _, bbox := range []string{"1,2,3", "a,b,c,d"} {
		req := httptest.NewRequest(http.MethodGet, "/traffic?bbox="+bbox, nil)
		rec := httptest.NewRecorder()
		h.Conditions(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("bbox %q: status = %d, want 400", bbox, rec.Code)
		}
	}
}
