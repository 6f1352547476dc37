package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// TrafficHandler reports current road conditions for an area.
type TrafficHandler struct {
	Provider ports.TrafficProvider
	// Area used when the request carries no bbox parameter.
	DefaultBounds domain.BoundingBox
}

// Conditions handles GET /traffic?bbox=lonMin,latMin,lonMax,latMax.
func (h *TrafficHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	box := h.DefaultBounds
	if raw := r.URL.Query().Get("bbox"); raw != "" {
		parsed, err := parseBounds(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "bbox must be lonMin,latMin,lonMax,latMax")
			return
		}
		box = parsed
	}

	conditions, err := h.Provider.Conditions(r.Context(), box)
	if err != nil {
		log.Printf("traffic conditions failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, trafficInfo(conditions, "", ""))
}

func parseBounds(raw string) (domain.BoundingBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return domain.BoundingBox{}, strconv.ErrSyntax
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.BoundingBox{}, err
		}
		vals[i] = v
	}

	return domain.BoundingBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}, nil
}
