package ports

import (
	"context"

	"journey-planner-service/internal/domain"
)

// LegEstimate is a provider's answer for one routed segment.
type LegEstimate struct {
	DurationMinutes int
	DistanceMeters  int
	Geometry        []domain.Coordinates
}

// RouteEstimate is a provider's answer for a whole multi-point route.
// Geometry is the single decoded polyline covering every leg.
type RouteEstimate struct {
	Legs     []LegEstimate
	Geometry []domain.Coordinates
}

// OrderRecommendation is a provider's suggested interior-stop reordering.
// StopOrder holds zero-based indices into the caller's stop list, in
// recommended visit order; adapters translate any provider-local index scheme
// before returning.
type OrderRecommendation struct {
	StopOrder       []int
	DurationMinutes int
	DistanceMeters  int
}

// RouteProvider is the uniform capability set a geolocation/routing backend
// must expose. Each call issues exactly one outbound request. All
// implementations return coordinates in the same (lat, lon) orientation;
// provider-specific axis-order translation happens inside the adapter.
type RouteProvider interface {
	// Name identifies the backend for logs and metrics.
	Name() string

	// Geocode resolves a free-text location to coordinates, using the first
	// result. Returns a not_found PlanningError when there are zero results.
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)

	// RouteLeg computes the drivable segment between two points. Returns a
	// no_route PlanningError when the backend reports no route.
	RouteLeg(ctx context.Context, from, to domain.Coordinates) (LegEstimate, error)

	// OptimizeOrder asks the backend for an interior-stop reordering of the
	// full point sequence, keeping the first and last points fixed. Callers
	// treat any error as "no recommendation", never as a run failure.
	OptimizeOrder(ctx context.Context, points []domain.Coordinates) (OrderRecommendation, error)
}

// Optional extension of RouteProvider for backends that can route through all
// points in a single call instead of chained pairwise requests.
type MultiPointRouter interface {
	RouteProvider
	// Route computes a multi-leg route through the ordered points. The result
	// always carries exactly len(points)-1 legs.
	Route(ctx context.Context, points []domain.Coordinates) (RouteEstimate, error)
}
