package domain

// RouteLeg is a routed segment between two consecutive waypoints.
// Immutable once computed; owned by the RouteResult that created it.
type RouteLeg struct {
	From            Waypoint
	To              Waypoint
	DurationMinutes int
	DistanceMeters  int

	// Geometry is the decoded polyline for this leg. Empty when the provider
	// returned a single geometry for the whole route instead of per-leg paths.
	Geometry []Coordinates
}

// RouteResult is the drivable route through an ordered waypoint sequence.
// Totals are always the sums of the legs, and Geometry is the concatenated
// path in travel order.
type RouteResult struct {
	Legs                 []RouteLeg
	TotalDurationMinutes int
	TotalDistanceMeters  int
	Geometry             []Coordinates
}

// NewRouteResult assembles a RouteResult from computed legs, summing totals
// and concatenating per-leg geometry. When geometry is non-nil it is used as
// the whole-route path instead (multi-point providers return one polyline).
func NewRouteResult(legs []RouteLeg, geometry []Coordinates) RouteResult {
	r := RouteResult{Legs: legs, Geometry: geometry}
	for _, leg := range legs {
		r.TotalDurationMinutes += leg.DurationMinutes
		r.TotalDistanceMeters += leg.DistanceMeters
		if geometry == nil {
			r.Geometry = append(r.Geometry, leg.Geometry...)
		}
	}
	return r
}

// Waypoints returns the ordered waypoint sequence the route passes through.
func (r RouteResult) Waypoints() []Waypoint {
	if len(r.Legs) == 0 {
		return nil
	}
	points := make([]Waypoint, 0, len(r.Legs)+1)
	points = append(points, r.Legs[0].From)
	for _, leg := range r.Legs {
		points = append(points, leg.To)
	}
	return points
}
