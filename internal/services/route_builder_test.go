package services

import (
	"context"
	"errors"
	"testing"

	"journey-planner-service/internal/adapters/providers"
	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

func waypoint(label string, role domain.WaypointRole, lat, lon float64) domain.Waypoint {
	return domain.Waypoint{Label: label, Role: role, Coords: domain.Coordinates{Lat: lat, Lon: lon}}
}

func TestBuildRoutePairwise(t *testing.T) {
	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	stop := waypoint("Stop", domain.RoleStop, 33.50, -112.00)
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	mock := providers.NewMock()
	mock.AddLeg(start.Coords, stop.Coords, 12, 9000)
	mock.AddLeg(stop.Coords, dest.Coords, 18, 15000)

	route, err := BuildRoute(context.Background(), mock, []domain.Waypoint{start, stop, dest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Legs) != 2 {
		t.Fatalf("legs = %d, want 2", len(route.Legs))
	}
	if route.Legs[0].From.Label != "Start" || route.Legs[0].To.Label != "Stop" {
		t.Fatalf("first leg %q -> %q, want Start -> Stop", route.Legs[0].From.Label, route.Legs[0].To.Label)
	}
	if route.TotalDurationMinutes != 30 {
		t.Fatalf("total duration = %d, want 30", route.TotalDurationMinutes)
	}
	if route.TotalDistanceMeters != 24000 {
		t.Fatalf("total distance = %d, want 24000", route.TotalDistanceMeters)
	}
	// Per-leg geometry concatenates in travel order.
	if len(route.Geometry) != 4 {
		t.Fatalf("geometry points = %d, want 4", len(route.Geometry))
	}
}

func TestBuildRouteMissingLeg(t *testing.T) {
	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	mock := providers.NewMock()

	_, err := BuildRoute(context.Background(), mock, []domain.Waypoint{start, dest})
	if err == nil {
		t.Fatal("expected error for unroutable leg")
	}

	var perr *domain.PlanningError
	if !errors.As(err, &perr) || perr.Kind != domain.ErrKindNoRoute {
		t.Fatalf("error = %v, want no_route planning error", err)
	}
}

func TestBuildRouteTooFewPoints(t *testing.T) {
	mock := providers.NewMock()
	if _, err := BuildRoute(context.Background(), mock, []domain.Waypoint{{Label: "only"}}); err == nil {
		t.Fatal("expected error for a single point")
	}
}

// multiPointStub upgrades the provider interface to single-call routing.
type multiPointStub struct {
	*providers.Mock
	estimate ports.RouteEstimate
	calls    int
}

func (s *multiPointStub) Route(ctx context.Context, points []domain.Coordinates) (ports.RouteEstimate, error) {
	s.calls++
	return s.estimate, nil
}

func TestBuildRouteMultiPoint(t *testing.T) {
	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	stop := waypoint("Stop", domain.RoleStop, 33.50, -112.00)
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	wholeRoute := []domain.Coordinates{start.Coords, stop.Coords, dest.Coords}
	stub := &multiPointStub{
		Mock: providers.NewMock(),
		estimate: ports.RouteEstimate{
			Legs: []ports.LegEstimate{
				{DurationMinutes: 10, DistanceMeters: 8000},
				{DurationMinutes: 20, DistanceMeters: 16000},
			},
			Geometry: wholeRoute,
		},
	}

	route, err := BuildRoute(context.Background(), stub, []domain.Waypoint{start, stop, dest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("Route calls = %d, want 1", stub.calls)
	}
	if route.TotalDurationMinutes != 30 || route.TotalDistanceMeters != 24000 {
		t.Fatalf("totals = %d min / %d m, want 30 / 24000",
			route.TotalDurationMinutes, route.TotalDistanceMeters)
	}
	if len(route.Geometry) != len(wholeRoute) {
		t.Fatalf("geometry points = %d, want %d", len(route.Geometry), len(wholeRoute))
	}
}

func TestBuildRouteMultiPointLegCountMismatch(t *testing.T) {
	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	stub := &multiPointStub{
		Mock: providers.NewMock(),
		estimate: ports.RouteEstimate{
			Legs: []ports.LegEstimate{
				{DurationMinutes: 10, DistanceMeters: 8000},
				{DurationMinutes: 20, DistanceMeters: 16000},
			},
		},
	}

	if _, err := BuildRoute(context.Background(), stub, []domain.Waypoint{start, dest}); err == nil {
		t.Fatal("expected error for mismatched leg count")
	}
}
