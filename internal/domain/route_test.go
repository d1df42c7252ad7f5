package domain

import "testing"

func TestNewRouteResultSumsLegs(t *testing.T) {
	a := Waypoint{Label: "A"}
	b := Waypoint{Label: "B"}
	c := Waypoint{Label: "C"}

	legs := []RouteLeg{
		{From: a, To: b, DurationMinutes: 10, DistanceMeters: 8000,
			Geometry: []Coordinates{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}},
		{From: b, To: c, DurationMinutes: 20, DistanceMeters: 16000,
			Geometry: []Coordinates{{Lat: 2, Lon: 2}, {Lat: 3, Lon: 3}}},
	}

	r := NewRouteResult(legs, nil)
	if r.TotalDurationMinutes != 30 {
		t.Fatalf("duration = %d, want 30", r.TotalDurationMinutes)
	}
	if r.TotalDistanceMeters != 24000 {
		t.Fatalf("distance = %d, want 24000", r.TotalDistanceMeters)
	}
	if len(r.Geometry) != 4 {
		t.Fatalf("geometry points = %d, want 4", len(r.Geometry))
	}

	points := r.Waypoints()
	if len(points) != 3 || points[0].Label != "A" || points[2].Label != "C" {
		t.Fatalf("waypoints = %v", points)
	}
}

func TestNewRouteResultWholeRouteGeometry(t *testing.T) {
	whole := []Coordinates{{Lat: 1, Lon: 1}, {Lat: 3, Lon: 3}}
	legs := []RouteLeg{
		{DurationMinutes: 10, Geometry: []Coordinates{{Lat: 9, Lon: 9}}},
	}

	r := NewRouteResult(legs, whole)
	if len(r.Geometry) != 2 || r.Geometry[1].Lat != 3 {
		t.Fatalf("geometry = %v, want the whole-route path", r.Geometry)
	}
}

func TestCoordinatesValidate(t *testing.T) {
	valid := Coordinates{Lat: 33.45, Lon: -112.07}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid coordinates rejected: %v", err)
	}

	bad := []Coordinates{
		{Lat: 91, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 181},
		{Lat: 0, Lon: -181},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("coordinates %v accepted, want error", c)
		}
	}
}
