package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
)

type OptimizeHandler struct {
	Repo      ports.StopRepository
	Estimator ports.TravelEstimator
	// Now supplies the schedule start; injected so tests are deterministic.
	Now func() time.Time
}

// Optimize orders the selected stops and builds their visit schedule.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if len(req.Points) == 0 {
		writeError(w, r, http.StatusBadRequest, "points are required")
		return
	}

	var start *domain.Coordinates
	if len(req.UserLocation) > 0 {
		if len(req.UserLocation) != 2 {
			writeError(w, r, http.StatusBadRequest, "user_location must be [lat, lon]")
			return
		}
		start = &domain.Coordinates{Lat: req.UserLocation[0], Lon: req.UserLocation[1]}
	}

	avoidTraffic := true
	if req.AvoidTraffic != nil {
		avoidTraffic = *req.AvoidTraffic
	}

	all, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	byID := make(map[int]domain.Stop, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}

	// Unknown ids are skipped; only a selection with no known ids is an error.
	selected := make([]domain.Stop, 0, len(req.Points))
	for _, id := range req.Points {
		if s, ok := byID[id]; ok {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		writeError(w, r, http.StatusBadRequest, "no known stop ids in points")
		return
	}

	result := services.OptimizeRoute(r.Context(), services.OptimizeRequest{
		Stops:         selected,
		StartLocation: start,
		TrafficAware:  avoidTraffic,
		ClockStart:    h.Now(),
	}, h.Estimator)

	writeJSON(w, r, http.StatusOK, optimizeResponse(result, avoidTraffic))
}

func optimizeResponse(result *services.RouteResult, avoidTraffic bool) dto.OptimizeResponse {
	res := dto.OptimizeResponse{
		Points:           make([]dto.RoutePointResponse, 0, len(result.Stops)),
		Schedule:         make([]dto.ScheduleEntryResponse, 0, len(result.Schedule)),
		TotalPoints:      len(result.Stops),
		TotalDistanceKm:  result.Metadata.DistanceKm,
		DurationMin:      result.Metadata.DurationMin,
		RouteDurationMin: result.Metadata.AdjustedDurationMin,
		AvoidTraffic:     avoidTraffic,
	}

	for i, s := range result.Stops {
		res.Points = append(res.Points, dto.RoutePointResponse{
			Order:     i + 1,
			StopID:    s.ID,
			Lat:       s.Location.Lat,
			Lon:       s.Location.Lon,
			Address:   s.Address,
			Type:      string(s.Tier),
			WorkTime:  s.WorkWindow.String(),
			LunchTime: s.LunchWindow.String(),
		})
		if s.Tier == domain.TierVIP {
			res.VIPCount++
		} else {
			res.StandardCount++
		}
	}

	for _, e := range result.Schedule {
		res.Schedule = append(res.Schedule, dto.ScheduleEntryResponse{
			Order:         e.Order,
			StopID:        e.StopID,
			Address:       e.Address,
			ArrivalTime:   e.Arrival.Format("15:04"),
			DepartureTime: e.Departure.Format("15:04"),
			Date:          e.Arrival.Format("02.01.2006"),
			ClientType:    string(e.Tier),
			Duration:      e.VisitMinutes,
			WorkTime:      e.WorkWindow.String(),
			LunchTime:     e.LunchWindow.String(),
		})
	}

	if avoidTraffic {
		info := trafficInfo(result.Traffic, result.Metadata.TrafficImpact, result.Metadata.Congestion)
		res.TrafficInfo = &info
	}

	return res
}

// trafficInfo shapes a traffic conditions summary for API responses.
func trafficInfo(conditions ports.TrafficConditions, impact, congestion string) dto.TrafficInfoResponse {
	details := []string{fmt.Sprintf("Traffic level: %s", conditions.Level)}

	if conditions.CurrentSpeedKmh > 0 && conditions.FreeFlowSpeedKmh > 0 {
		details = append(details, fmt.Sprintf(
			"Speed: %.0f km/h (free flow: %.0f km/h)",
			conditions.CurrentSpeedKmh, conditions.FreeFlowSpeedKmh,
		))
	}
	if congestion != "" {
		details = append(details, "Congestion: "+congestion)
	}

	incidents := make([]dto.IncidentResponse, 0, len(conditions.Incidents))
	counts := map[string]int{}
	kinds := make([]string, 0)
	for _, incident := range conditions.Incidents {
		if _, seen := counts[incident.Type]; !seen {
			kinds = append(kinds, incident.Type)
		}
		counts[incident.Type]++
		incidents = append(incidents, dto.IncidentResponse{
			Type:        incident.Type,
			Description: incident.Description,
			Severity:    incident.Severity,
			Lat:         incident.Location.Lat,
			Lon:         incident.Location.Lon,
		})
	}

	if len(incidents) == 0 {
		details = append(details, "Incidents: none")
	} else {
		line := "Incidents:"
		for i, kind := range kinds {
			if i > 0 {
				line += ","
			}
			line += fmt.Sprintf(" %s: %d", kind, counts[kind])
		}
		details = append(details, line)
	}

	if impact != "" {
		details = append(details, "Impact on travel time: "+impact)
	}

	source := "simulated data"
	if conditions.Source == "tomtom" {
		source = "TomTom live data"
	}
	details = append(details, "Source: "+source)

	return dto.TrafficInfoResponse{
		Level:          string(conditions.Level),
		Message:        conditions.Message,
		IncidentsCount: len(incidents),
		TrafficImpact:  impact,
		Congestion:     congestion,
		Source:         conditions.Source,
		Details:        details,
		HasTraffic:     conditions.Level != ports.TrafficLow && conditions.Level != ports.TrafficUnknown,
		HasIncidents:   len(incidents) > 0,
		Incidents:      incidents,
	}
}
