package api

import (
	"net/http"
	"time"

	"route-planner-service/internal/api/handlers"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.StopRepository,
	estimator ports.TravelEstimator,
	traffic ports.TrafficProvider,
	defaultBounds domain.BoundingBox,
	now func() time.Time,
) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: repo}
	optimizeHandler := &handlers.OptimizeHandler{Repo: repo, Estimator: estimator, Now: now}
	trafficHandler := &handlers.TrafficHandler{Provider: traffic, DefaultBounds: defaultBounds}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.Collection)
	mux.HandleFunc("/stops.csv", stopHandler.ExportCSV)
	mux.HandleFunc("/stops/upload", stopHandler.Upload)
	mux.HandleFunc("/stops/delete", stopHandler.Delete)
	mux.HandleFunc("/stops/delete_all", stopHandler.DeleteAll)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/traffic", trafficHandler.Conditions)

	return requestIDMiddleware(loggingMiddleware(mux))
}
