package repositories

import (
	"context"
	"sync"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// In-memory StopRepository used by tests and local experiments.
type MemoryStopRepository struct {
	mu     sync.Mutex
	stops  []domain.Stop
	nextID int
}

func NewMemoryStopRepository(initial []domain.Stop) *MemoryStopRepository {
	repo := &MemoryStopRepository{nextID: 1}
	for _, stop := range initial {
		stop.ID = repo.nextID
		repo.nextID++
		repo.stops = append(repo.stops, stop)
	}
	return repo
}

func (m *MemoryStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Stop, len(m.stops))
	copy(out, m.stops)
	return out, nil
}

func (m *MemoryStopRepository) AddStop(ctx context.Context, stop domain.Stop) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stop.ID = m.nextID
	m.nextID++
	m.stops = append(m.stops, stop)
	return stop.ID, nil
}

func (m *MemoryStopRepository) DeleteStop(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, stop := range m.stops {
		if stop.ID == id {
			m.stops = append(m.stops[:i], m.stops[i+1:]...)
			return nil
		}
	}
	return ports.ErrStopNotFound
}

func (m *MemoryStopRepository) DeleteAllStops(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.stops)
	m.stops = nil
	return n, nil
}

func (m *MemoryStopRepository) ReplaceStops(ctx context.Context, stops []domain.Stop) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stops = nil
	m.nextID = 1
	for _, stop := range stops {
		stop.ID = m.nextID
		m.nextID++
		m.stops = append(m.stops, stop)
	}
	return nil
}
