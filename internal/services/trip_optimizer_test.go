package services

import (
	"context"
	"errors"
	"testing"

	"journey-planner-service/internal/adapters/providers"
	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

func TestOptimizeStopOrderSingleStopSkipped(t *testing.T) {
	mock := providers.NewMock()
	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	stop := waypoint("A", domain.RoleStop, 33.50, -112.00)
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	if got := OptimizeStopOrder(context.Background(), mock, start, []domain.Waypoint{stop}, dest); got != nil {
		t.Fatalf("result = %+v, want nil for a single stop", got)
	}
}

func TestOptimizeStopOrderProviderFailureIsAbsorbed(t *testing.T) {
	mock := providers.NewMock()
	mock.OptimizeErr = errors.New("upstream 500")

	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	stops := []domain.Waypoint{
		waypoint("A", domain.RoleStop, 33.50, -112.00),
		waypoint("B", domain.RoleStop, 33.55, -111.95),
	}
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	if got := OptimizeStopOrder(context.Background(), mock, start, stops, dest); got != nil {
		t.Fatalf("result = %+v, want nil on provider failure", got)
	}
}

func TestOptimizeStopOrderRecommendation(t *testing.T) {
	mock := providers.NewMock()
	mock.Recommendation = &ports.OrderRecommendation{
		StopOrder:       []int{1, 0},
		DurationMinutes: 42,
		DistanceMeters:  31000,
	}

	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	stops := []domain.Waypoint{
		waypoint("A", domain.RoleStop, 33.50, -112.00),
		waypoint("B", domain.RoleStop, 33.55, -111.95),
	}
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	got := OptimizeStopOrder(context.Background(), mock, start, stops, dest)
	if got == nil {
		t.Fatal("expected a recommendation")
	}
	if got.StopOrder[0] != 1 || got.StopOrder[1] != 0 {
		t.Fatalf("stop order = %v, want [1 0]", got.StopOrder)
	}
	if got.Labels[0] != "B" || got.Labels[1] != "A" {
		t.Fatalf("labels = %v, want [B A]", got.Labels)
	}
	if got.TotalDurationMinutes != 42 || got.TotalDistanceMeters != 31000 {
		t.Fatalf("totals = %d min / %d m, want 42 / 31000",
			got.TotalDurationMinutes, got.TotalDistanceMeters)
	}
}

func TestOptimizeStopOrderRejectsInvalidOrder(t *testing.T) {
	cases := [][]int{
		{0, 0},    // duplicate position
		{0},       // too short
		{0, 2},    // out of range
		{-1, 0},   // negative
		{0, 1, 1}, // too long
	}

	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	stops := []domain.Waypoint{
		waypoint("A", domain.RoleStop, 33.50, -112.00),
		waypoint("B", domain.RoleStop, 33.55, -111.95),
	}
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	for _, order := range cases {
		mock := providers.NewMock()
		mock.Recommendation = &ports.OrderRecommendation{StopOrder: order}

		if got := OptimizeStopOrder(context.Background(), mock, start, stops, dest); got != nil {
			t.Fatalf("order %v accepted, want rejection", order)
		}
	}
}

func TestOptimizeStopOrderAllowsRepeatedLabels(t *testing.T) {
	mock := providers.NewMock()
	mock.Recommendation = &ports.OrderRecommendation{StopOrder: []int{1, 0}}

	start := waypoint("Start", domain.RoleStart, 33.45, -112.07)
	// The same address entered twice is still two distinct stops.
	stops := []domain.Waypoint{
		waypoint("Coffee", domain.RoleStop, 33.50, -112.00),
		waypoint("Coffee", domain.RoleStop, 33.50, -112.00),
	}
	dest := waypoint("Dest", domain.RoleDestination, 33.60, -111.90)

	got := OptimizeStopOrder(context.Background(), mock, start, stops, dest)
	if got == nil {
		t.Fatal("expected a recommendation for repeated labels")
	}
}
