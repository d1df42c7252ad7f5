package providers

import (
	"context"
	"fmt"
	"sync"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

// Mock is an in-memory RouteProvider for tests and offline runs. Places and
// legs are registered up front; anything unregistered behaves like a provider
// miss (not found / no route).
type Mock struct {
	mu             sync.Mutex
	places         map[string]domain.Coordinates
	legs           map[string]ports.LegEstimate
	Recommendation *ports.OrderRecommendation
	OptimizeErr    error
	GeocodeCalls   int
}

func NewMock() *Mock {
	return &Mock{
		places: make(map[string]domain.Coordinates),
		legs:   make(map[string]ports.LegEstimate),
	}
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) AddPlace(query string, lat, lon float64) domain.Coordinates {
	c := domain.Coordinates{Lat: lat, Lon: lon}
	m.places[query] = c
	return c
}

func (m *Mock) AddLeg(from, to domain.Coordinates, durationMinutes, distanceMeters int) {
	m.legs[legKey(from, to)] = ports.LegEstimate{
		DurationMinutes: durationMinutes,
		DistanceMeters:  distanceMeters,
		Geometry:        []domain.Coordinates{from, to},
	}
}

func legKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%s|%s", coordLabel(from), coordLabel(to))
}

func (m *Mock) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	m.mu.Lock()
	m.GeocodeCalls++
	m.mu.Unlock()

	c, ok := m.places[query]
	if !ok {
		return domain.Coordinates{}, domain.NewNotFound(query)
	}
	return c, nil
}

func (m *Mock) RouteLeg(ctx context.Context, from, to domain.Coordinates) (ports.LegEstimate, error) {
	leg, ok := m.legs[legKey(from, to)]
	if !ok {
		return ports.LegEstimate{}, domain.NewNoRoute(coordLabel(from), coordLabel(to))
	}
	return leg, nil
}

func (m *Mock) OptimizeOrder(ctx context.Context, points []domain.Coordinates) (ports.OrderRecommendation, error) {
	if m.OptimizeErr != nil {
		return ports.OrderRecommendation{}, m.OptimizeErr
	}
	if m.Recommendation == nil {
		return ports.OrderRecommendation{}, domain.ErrOptimizationUnavailable
	}
	return *m.Recommendation, nil
}
