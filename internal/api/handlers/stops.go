package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/csvio"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

const maxUploadBytes = 5 << 20

// StopHandler exposes stop list management endpoints.
type StopHandler struct {
	Repo ports.StopRepository
}

// Collection dispatches GET (list) and POST (add one) for /stops.
func (h *StopHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *StopHandler) list(w http.ResponseWriter, r *http.Request) {
	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopsResponse{Stops: make([]dto.StopResponse, 0, len(stops))}
	for _, s := range stops {
		res.Stops = append(res.Stops, stopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *StopHandler) add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddStopRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.Address) == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}
	if req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}

	work, err := parseWindowOrDefault(req.WorkTimeStart, req.WorkTimeEnd, "09:00", "18:00")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid work window: "+err.Error())
		return
	}

	lunch, err := parseWindowOrDefault(req.LunchStart, req.LunchEnd, "13:00", "14:00")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid lunch window: "+err.Error())
		return
	}

	stop := domain.Stop{
		Address:     strings.TrimSpace(req.Address),
		Location:    domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon},
		Tier:        domain.ParseTier(req.ClientType),
		WorkWindow:  work,
		LunchWindow: lunch,
	}

	id, err := h.Repo.AddStop(r.Context(), stop)
	if err != nil {
		log.Printf("add stop failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	total, err := h.countStops(r)
	if err != nil {
		log.Printf("count stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AddStopResponse{StopID: id, TotalStops: total})
}

// Delete removes a single stop by id.
func (h *StopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DeleteStopRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.StopID == nil {
		writeError(w, r, http.StatusBadRequest, "stop_id is required")
		return
	}

	if err := h.Repo.DeleteStop(r.Context(), *req.StopID); err != nil {
		if errors.Is(err, ports.ErrStopNotFound) {
			writeError(w, r, http.StatusNotFound, "stop "+strconv.Itoa(*req.StopID)+" not found")
			return
		}
		log.Printf("delete stop failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	total, err := h.countStops(r)
	if err != nil {
		log.Printf("count stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeleteStopsResponse{Deleted: 1, TotalStops: total})
}

// DeleteAll clears the stored stop list.
func (h *StopHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deleted, err := h.Repo.DeleteAllStops(r.Context())
	if err != nil {
		log.Printf("delete all stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeleteStopsResponse{Deleted: deleted, TotalStops: 0})
}

// Upload replaces the stop list from a multipart CSV file (field "csv_file").
func (h *StopHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("csv_file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "csv_file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, r, http.StatusBadRequest, "file must be a .csv")
		return
	}

	stops, err := csvio.ParseStops(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.ReplaceStops(r.Context(), stops); err != nil {
		log.Printf("replace stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	total, err := h.countStops(r)
	if err != nil {
		log.Printf("count stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("stop list replaced: imported=%d", len(stops))
	writeJSON(w, r, http.StatusOK, dto.UploadStopsResponse{Imported: len(stops), TotalStops: total})
}

// ExportCSV serves the stored stop list in the canonical CSV format.
func (h *StopHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="stops.csv"`)
	if err := csvio.WriteStops(w, stops); err != nil {
		log.Printf("export stops failed: %v", err)
	}
}

func (h *StopHandler) countStops(r *http.Request) (int, error) {
	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		return 0, err
	}
	return len(stops), nil
}

func parseWindowOrDefault(start, end, defStart, defEnd string) (domain.TimeWindow, error) {
	if strings.TrimSpace(start) == "" {
		start = defStart
	}
	if strings.TrimSpace(end) == "" {
		end = defEnd
	}
	return domain.ParseTimeWindow(start, end)
}

func stopResponse(s domain.Stop) dto.StopResponse {
	return dto.StopResponse{
		ID:            s.ID,
		Address:       s.Address,
		Lat:           s.Location.Lat,
		Lon:           s.Location.Lon,
		ClientType:    string(s.Tier),
		WorkTimeStart: s.WorkWindow.Start.String(),
		WorkTimeEnd:   s.WorkWindow.End.String(),
		LunchStart:    s.LunchWindow.Start.String(),
		LunchEnd:      s.LunchWindow.End.String(),
		VisitDuration: int(s.VisitDuration().Minutes()),
	}
}
