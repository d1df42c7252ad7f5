package services

import (
	"context"
	"log"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

// OptimizeStopOrder asks the provider to reorder the interior stops, keeping
// start and destination fixed. A nil result means "no recommendation": the
// provider lacks the capability, the call failed, or the returned order was
// not a valid permutation. None of these abort the plan.
func OptimizeStopOrder(
	ctx context.Context,
	provider ports.RouteProvider,
	start domain.Waypoint,
	stops []domain.Waypoint,
	destination domain.Waypoint,
) *domain.OptimizationResult {
	// With fewer than two stops there is nothing to reorder.
	if len(stops) < 2 {
		return nil
	}

	points := make([]domain.Coordinates, 0, len(stops)+2)
	points = append(points, start.Coords)
	for _, s := range stops {
		points = append(points, s.Coords)
	}
	points = append(points, destination.Coords)

	rec, err := provider.OptimizeOrder(ctx, points)
	if err != nil {
		log.Printf("optimization unavailable: provider=%s err=%v", provider.Name(), err)
		return nil
	}

	if !isStopPermutation(rec.StopOrder, len(stops)) {
		log.Printf("optimization unavailable: provider=%s returned invalid stop order %v", provider.Name(), rec.StopOrder)
		return nil
	}

	labels := make([]string, 0, len(rec.StopOrder))
	for _, idx := range rec.StopOrder {
		labels = append(labels, stops[idx].Label)
	}

	return &domain.OptimizationResult{
		StopOrder:            rec.StopOrder,
		Labels:               labels,
		TotalDurationMinutes: rec.DurationMinutes,
		TotalDistanceMeters:  rec.DistanceMeters,
	}
}

// isStopPermutation validates the recommended order by position, not value:
// stop labels may repeat, indices may not.
func isStopPermutation(order []int, nStops int) bool {
	if len(order) != nStops {
		return false
	}
	seen := make([]bool, nStops)
	for _, idx := range order {
		if idx < 0 || idx >= nStops || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
