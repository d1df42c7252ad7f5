package services

import (
	"context"
	"fmt"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

// BuildRoute computes a multi-leg route through the ordered waypoints.
// Providers that support multi-point routing get a single call; everything
// else is chained pairwise. The result always carries len(points)-1 legs, and
// no partial result is returned on failure.
func BuildRoute(
	ctx context.Context,
	provider ports.RouteProvider,
	points []domain.Waypoint,
) (domain.RouteResult, error) {
	if len(points) < 2 {
		return domain.RouteResult{}, fmt.Errorf("build route: need at least 2 points, got %d", len(points))
	}

	coords := make([]domain.Coordinates, len(points))
	for i, p := range points {
		coords[i] = p.Coords
	}

	if mp, ok := provider.(ports.MultiPointRouter); ok {
		estimate, err := mp.Route(ctx, coords)
		if err != nil {
			return domain.RouteResult{}, fmt.Errorf("build route: %w", err)
		}
		if len(estimate.Legs) != len(points)-1 {
			return domain.RouteResult{}, fmt.Errorf(
				"build route: provider returned %d legs for %d points",
				len(estimate.Legs), len(points),
			)
		}

		legs := make([]domain.RouteLeg, 0, len(estimate.Legs))
		for i, le := range estimate.Legs {
			legs = append(legs, domain.RouteLeg{
				From:            points[i],
				To:              points[i+1],
				DurationMinutes: le.DurationMinutes,
				DistanceMeters:  le.DistanceMeters,
				Geometry:        le.Geometry,
			})
		}
		return domain.NewRouteResult(legs, estimate.Geometry), nil
	}

	legs := make([]domain.RouteLeg, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		le, err := provider.RouteLeg(ctx, coords[i], coords[i+1])
		if err != nil {
			return domain.RouteResult{}, fmt.Errorf(
				"build route: leg %q -> %q: %w",
				points[i].Label, points[i+1].Label, err,
			)
		}
		legs = append(legs, domain.RouteLeg{
			From:            points[i],
			To:              points[i+1],
			DurationMinutes: le.DurationMinutes,
			DistanceMeters:  le.DistanceMeters,
			Geometry:        le.Geometry,
		})
	}
	return domain.NewRouteResult(legs, nil), nil
}
