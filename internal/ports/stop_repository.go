package ports

import (
	"context"
	"errors"

	"route-planner-service/internal/domain"
)

var ErrStopNotFound = errors.New("stop not found")

// Port: a boundary for persisting and retrieving Stop entities.
type StopRepository interface {
	// Retrieve all stops in stable id order.
	ListStops(ctx context.Context) ([]domain.Stop, error)
	// Persist a new stop and return its assigned id.
	AddStop(ctx context.Context, stop domain.Stop) (int, error)
	// Remove one stop. Returns ErrStopNotFound when the id is unknown.
	DeleteStop(ctx context.Context, id int) error
	// Remove every stop and return how many were removed.
	DeleteAllStops(ctx context.Context) (int, error)
	// Atomically replace the whole stop list.
	ReplaceStops(ctx context.Context, stops []domain.Stop) error
}
