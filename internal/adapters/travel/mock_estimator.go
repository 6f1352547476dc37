package travel

import (
	"context"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// Scripted TravelEstimator for tests.
type MockEstimator struct {
	Result ports.TravelEstimate
	Err    error
	Calls  int
}

func (m *MockEstimator) Estimate(ctx context.Context, path []domain.Coordinates, wantTraffic bool) (ports.TravelEstimate, error) {
	m.Calls++
	if m.Err != nil {
		return ports.TravelEstimate{}, m.Err
	}
	return m.Result, nil
}
