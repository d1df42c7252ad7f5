package ports

import (
	"context"

	"journey-planner-service/internal/domain"
)

// GeocodeCache is a persistent address -> coordinates cache. Planning results
// are never cached; only stable geocoding facts pass through this port.
type GeocodeCache interface {
	// GetMany returns cached coordinates for the queries that have them.
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinates, error)
	// PutMany stores freshly geocoded coordinates.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
