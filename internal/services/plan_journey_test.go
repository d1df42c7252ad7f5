package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"journey-planner-service/internal/adapters/providers"
	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

type tzStub struct{ zone string }

func (s tzStub) TimezoneFor(domain.Coordinates) string { return s.zone }

type flightStub struct {
	info ports.FlightInfo
	err  error
}

func (s flightStub) Lookup(ctx context.Context, flightIATA string) (ports.FlightInfo, error) {
	if s.err != nil {
		return ports.FlightInfo{}, s.err
	}
	return s.info, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// twoStopFixture registers a start, two stops and a destination with legs for
// both the entered order and the reversed order.
func twoStopFixture() (*providers.Mock, PlanRequest) {
	mock := providers.NewMock()
	home := mock.AddPlace("Home", 33.45, -112.07)
	a := mock.AddPlace("A", 33.50, -112.00)
	b := mock.AddPlace("B", 33.55, -111.95)
	dest := mock.AddPlace("Dest", 33.60, -111.90)

	mock.AddLeg(home, a, 10, 8000)
	mock.AddLeg(a, b, 20, 16000)
	mock.AddLeg(b, dest, 30, 24000)

	mock.AddLeg(home, b, 12, 9000)
	mock.AddLeg(b, a, 8, 6000)
	mock.AddLeg(a, dest, 5, 4000)

	req := PlanRequest{
		StartAddress: "Home",
		Stops: []StopRequest{
			{Address: "A", BufferMinutes: 15},
			{Address: "B"},
		},
		Destination: "Dest",
	}
	return mock, req
}

func TestPlanAddressModeWithOptimization(t *testing.T) {
	mock, req := twoStopFixture()
	mock.Recommendation = &ports.OrderRecommendation{
		StopOrder:       []int{1, 0},
		DurationMinutes: 25,
		DistanceMeters:  19000,
	}

	depart := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	planner := &Planner{
		Provider:  mock,
		Timezones: tzStub{zone: "America/Phoenix"},
		Now:       fixedClock(depart),
	}

	it, err := planner.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if it.Start.Label != "Home" || it.Destination.Label != "Dest" {
		t.Fatalf("endpoints = %q -> %q", it.Start.Label, it.Destination.Label)
	}
	if len(it.Stops) != 2 || it.Stops[0].BufferMinutes != 15 {
		t.Fatalf("stops = %+v", it.Stops)
	}

	if it.Route.TotalDurationMinutes != 60 || it.Route.TotalDistanceMeters != 48000 {
		t.Fatalf("as-entered totals = %d min / %d m, want 60 / 48000",
			it.Route.TotalDurationMinutes, it.Route.TotalDistanceMeters)
	}

	if it.Optimization == nil {
		t.Fatal("expected an optimization recommendation")
	}
	if !reflect.DeepEqual(it.Optimization.StopOrder, []int{1, 0}) {
		t.Fatalf("stop order = %v, want [1 0]", it.Optimization.StopOrder)
	}
	if it.OptimizedRoute == nil {
		t.Fatal("expected an optimized route")
	}
	if it.OptimizedRoute.TotalDurationMinutes != 25 {
		t.Fatalf("optimized duration = %d, want 25", it.OptimizedRoute.TotalDurationMinutes)
	}

	// depart, arrive A, leave A, arrive B, arrive destination
	if len(it.Timeline) != 5 {
		t.Fatalf("timeline events = %d, want 5", len(it.Timeline))
	}
	last := it.Timeline[len(it.Timeline)-1]
	if last.Kind != domain.EventArriveDestination {
		t.Fatalf("last event kind = %q", last.Kind)
	}
	// 10 + 15 buffer + 20 + 30 minutes of driving and dwell.
	if want := depart.Add(75 * time.Minute); !last.Time.Equal(want) {
		t.Fatalf("arrival = %v, want %v", last.Time, want)
	}

	if len(it.OptimizedTimeline) == 0 {
		t.Fatal("expected an optimized timeline")
	}
	optLast := it.OptimizedTimeline[len(it.OptimizedTimeline)-1]
	// 12 + 8 + 15 buffer + 5 minutes in the recommended order.
	if want := depart.Add(40 * time.Minute); !optLast.Time.Equal(want) {
		t.Fatalf("optimized arrival = %v, want %v", optLast.Time, want)
	}

	if it.OriginTimezone != "America/Phoenix" || it.DestinationTimezone != "America/Phoenix" {
		t.Fatalf("timezones = %q / %q", it.OriginTimezone, it.DestinationTimezone)
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	mock, req := twoStopFixture()
	mock.Recommendation = &ports.OrderRecommendation{StopOrder: []int{1, 0}}

	depart := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	planner := &Planner{Provider: mock, Now: fixedClock(depart)}

	first, err := planner.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := planner.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over identical inputs diverged")
	}
}

func TestPlanWithoutOptimization(t *testing.T) {
	mock, req := twoStopFixture()
	// No recommendation configured: the provider reports unavailability.

	depart := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	planner := &Planner{Provider: mock, Now: fixedClock(depart)}

	it, err := planner.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Optimization != nil || it.OptimizedRoute != nil {
		t.Fatalf("optimization = %+v, route = %+v, want none", it.Optimization, it.OptimizedRoute)
	}
	if len(it.OptimizedTimeline) != 0 {
		t.Fatalf("optimized timeline events = %d, want 0", len(it.OptimizedTimeline))
	}
	if len(it.Timeline) != 5 {
		t.Fatalf("timeline events = %d, want 5", len(it.Timeline))
	}
}

func TestPlanOptimizedRouteFailureDegradesToEstimates(t *testing.T) {
	mock := providers.NewMock()
	home := mock.AddPlace("Home", 33.45, -112.07)
	a := mock.AddPlace("A", 33.50, -112.00)
	b := mock.AddPlace("B", 33.55, -111.95)
	dest := mock.AddPlace("Dest", 33.60, -111.90)

	// Only the as-entered order is routable; the recommended order has no
	// registered legs, so the optimized route computation fails.
	mock.AddLeg(home, a, 10, 8000)
	mock.AddLeg(a, b, 20, 16000)
	mock.AddLeg(b, dest, 30, 24000)
	mock.Recommendation = &ports.OrderRecommendation{StopOrder: []int{1, 0}}

	depart := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	planner := &Planner{Provider: mock, Now: fixedClock(depart)}

	it, err := planner.Plan(context.Background(), PlanRequest{
		StartAddress: "Home",
		Stops:        []StopRequest{{Address: "A"}, {Address: "B"}},
		Destination:  "Dest",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if it.Optimization == nil {
		t.Fatal("recommendation should survive an optimized route failure")
	}
	if it.OptimizedRoute != nil {
		t.Fatalf("optimized route = %+v, want nil", it.OptimizedRoute)
	}
	if len(it.OptimizedTimeline) == 0 {
		t.Fatal("expected an estimated optimized timeline")
	}
	if it.OptimizedTimeline[1].Detail != "~20 min drive to B (estimated)" {
		t.Fatalf("estimated detail = %q", it.OptimizedTimeline[1].Detail)
	}
}

func TestPlanFlightMode(t *testing.T) {
	mock := providers.NewMock()
	airport := mock.AddPlace("Sky Harbor International (PHX)", 33.43, -112.01)
	dest := mock.AddPlace("Dest", 33.60, -111.90)
	mock.AddLeg(airport, dest, 25, 20000)

	planner := &Planner{
		Provider:  mock,
		Timezones: tzStub{zone: "UTC"},
		Flights: flightStub{info: ports.FlightInfo{
			FlightIATA:       "UA123",
			DepartureIATA:    "SFO",
			ArrivalAirport:   "Sky Harbor International",
			ArrivalIATA:      "PHX",
			ArrivalEstimated: "2026-03-01T14:30:00+00:00",
		}},
	}

	it, err := planner.Plan(context.Background(), PlanRequest{
		StartMode:   domain.StartFromFlight,
		FlightCode:  "UA123",
		Destination: "Dest",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if it.Start.Label != "Sky Harbor International (PHX)" {
		t.Fatalf("start label = %q", it.Start.Label)
	}

	// flight arrival, leave airport, arrive destination
	if len(it.Timeline) != 3 {
		t.Fatalf("timeline events = %d, want 3", len(it.Timeline))
	}
	arrival := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	if !it.Timeline[0].Time.Equal(arrival) {
		t.Fatalf("flight arrival = %v, want %v", it.Timeline[0].Time, arrival)
	}
	if want := arrival.Add(45 * time.Minute); !it.Timeline[1].Time.Equal(want) {
		t.Fatalf("airport departure = %v, want %v", it.Timeline[1].Time, want)
	}
	if want := arrival.Add(70 * time.Minute); !it.Timeline[2].Time.Equal(want) {
		t.Fatalf("destination arrival = %v, want %v", it.Timeline[2].Time, want)
	}
}

func TestPlanFlightNotFound(t *testing.T) {
	planner := &Planner{
		Provider: providers.NewMock(),
		Flights:  flightStub{err: domain.NewNotFound("flight XX999")},
	}

	_, err := planner.Plan(context.Background(), PlanRequest{
		StartMode:   domain.StartFromFlight,
		FlightCode:  "XX999",
		Destination: "Dest",
	})

	var perr *domain.PlanningError
	if !errors.As(err, &perr) || perr.Kind != domain.ErrKindNotFound {
		t.Fatalf("error = %v, want not_found", err)
	}
}

func TestPlanGeocodeMissIsFatal(t *testing.T) {
	mock := providers.NewMock()
	mock.AddPlace("Home", 33.45, -112.07)
	// "Nowhere" is never registered.

	planner := &Planner{Provider: mock}
	_, err := planner.Plan(context.Background(), PlanRequest{
		StartAddress: "Home",
		Destination:  "Nowhere",
	})

	var perr *domain.PlanningError
	if !errors.As(err, &perr) || perr.Kind != domain.ErrKindNotFound {
		t.Fatalf("error = %v, want not_found", err)
	}
}

func TestPlanValidation(t *testing.T) {
	planner := &Planner{Provider: providers.NewMock()}

	cases := []struct {
		name string
		req  PlanRequest
	}{
		{"missing destination", PlanRequest{StartAddress: "Home"}},
		{"missing start address", PlanRequest{Destination: "Dest"}},
		{"missing flight code", PlanRequest{StartMode: domain.StartFromFlight, Destination: "Dest"}},
		{"unknown mode", PlanRequest{StartMode: "teleport", StartAddress: "Home", Destination: "Dest"}},
		{"negative buffer", PlanRequest{
			StartAddress: "Home",
			Destination:  "Dest",
			Stops:        []StopRequest{{Address: "A", BufferMinutes: -5}},
		}},
	}

	for _, tc := range cases {
		_, err := planner.Plan(context.Background(), tc.req)
		var perr *domain.PlanningError
		if !errors.As(err, &perr) || perr.Kind != domain.ErrKindInput {
			t.Fatalf("%s: error = %v, want input error", tc.name, err)
		}
	}
}

func TestPlanDropsBlankStops(t *testing.T) {
	mock := providers.NewMock()
	home := mock.AddPlace("Home", 33.45, -112.07)
	a := mock.AddPlace("A", 33.50, -112.00)
	dest := mock.AddPlace("Dest", 33.60, -111.90)
	mock.AddLeg(home, a, 10, 8000)
	mock.AddLeg(a, dest, 30, 24000)

	planner := &Planner{Provider: mock, Now: fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))}

	it, err := planner.Plan(context.Background(), PlanRequest{
		StartAddress: "Home",
		Stops: []StopRequest{
			{Address: "   "},
			{Address: "A", BufferMinutes: 10},
		},
		Destination: "Dest",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(it.Stops) != 1 || it.Stops[0].Label != "A" || it.Stops[0].BufferMinutes != 10 {
		t.Fatalf("stops = %+v, want only A with its buffer", it.Stops)
	}
}

func TestParseLocalWallClock(t *testing.T) {
	cases := []struct {
		in   string
		zone string
		want time.Time
	}{
		{"2026-03-01T14:30:00+00:00", "UTC", time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)},
		// Offsets are discarded: the value is already airport-local.
		{"2026-03-01T14:30:00-07:00", "UTC", time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)},
		{"2026-03-01T14:30:00Z", "UTC", time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)},
		{"2026-03-01T14:30", "UTC", time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := parseLocalWallClock(tc.in, tc.zone)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := parseLocalWallClock("", "UTC"); err == nil {
		t.Fatal("expected error for empty timestamp")
	}
	if _, err := parseLocalWallClock("yesterday", "UTC"); err == nil {
		t.Fatal("expected error for junk timestamp")
	}
}
