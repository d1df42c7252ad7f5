package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/platform/obs"
	"journey-planner-service/internal/ports"
)

const mapboxBaseURL = "https://api.mapbox.com"

// Mapbox implements geocoding, multi-point directions and optimized trips
// against the Mapbox APIs. The driving-traffic profile is used throughout.
type Mapbox struct {
	http    *client
	token   string
	baseURL string
}

func NewMapbox(accessToken string) (*Mapbox, error) {
	if accessToken == "" {
		return nil, errors.New("mapbox access token is empty")
	}
	return &Mapbox{http: newClient(), token: accessToken, baseURL: mapboxBaseURL}, nil
}

func (m *Mapbox) Name() string { return "mapbox" }

func (m *Mapbox) auth() url.Values {
	q := url.Values{}
	q.Set("access_token", m.token)
	return q
}

type mapboxGeocodeResponse struct {
	Features []struct {
		Center []float64 `json:"center"`
	} `json:"features"`
}

func (m *Mapbox) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer func() { obs.ObserveProviderCall(m.Name(), "geocode", err) }()

	q := m.auth()
	q.Set("limit", "1")

	endpoint := m.baseURL + "/geocoding/v5/mapbox.places/" + url.PathEscape(query) + ".json"

	var resp mapboxGeocodeResponse
	if err := m.http.getJSON(ctx, endpoint, q, &resp); err != nil {
		return domain.Coordinates{}, fmt.Errorf("mapbox geocode %q: %w", query, err)
	}
	if len(resp.Features) == 0 {
		return domain.Coordinates{}, domain.NewNotFound(query)
	}

	center := resp.Features[0].Center
	if len(center) != 2 {
		return domain.Coordinates{}, fmt.Errorf("mapbox returned malformed center for %q", query)
	}

	// Mapbox centers are [lng, lat].
	return domain.Coordinates{Lon: center[0], Lat: center[1]}, nil
}

type mapboxDirectionsResponse struct {
	Routes []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route computes a multi-leg route in a single directions call.
func (m *Mapbox) Route(ctx context.Context, points []domain.Coordinates) (_ ports.RouteEstimate, err error) {
	defer func() { obs.ObserveProviderCall(m.Name(), "route", err) }()

	if len(points) < 2 {
		return ports.RouteEstimate{}, fmt.Errorf("mapbox route: need at least 2 points, got %d", len(points))
	}

	q := m.auth()
	q.Set("geometries", "polyline")
	q.Set("overview", "full")

	endpoint := m.baseURL + "/directions/v5/mapbox/driving-traffic/" + lonLatPath(points)

	var resp mapboxDirectionsResponse
	if err := m.http.getJSON(ctx, endpoint, q, &resp); err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("mapbox directions: %w", err)
	}
	if len(resp.Routes) == 0 {
		return ports.RouteEstimate{}, domain.NewNoRoute(coordLabel(points[0]), coordLabel(points[len(points)-1]))
	}

	route := resp.Routes[0]
	if len(route.Legs) != len(points)-1 {
		return ports.RouteEstimate{}, fmt.Errorf(
			"mapbox directions: %d legs returned for %d points",
			len(route.Legs), len(points),
		)
	}

	geometry, err := decodeGeometry(route.Geometry)
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("mapbox directions: %w", err)
	}

	estimate := ports.RouteEstimate{Geometry: geometry}
	for _, leg := range route.Legs {
		estimate.Legs = append(estimate.Legs, ports.LegEstimate{
			DurationMinutes: minutes(leg.Duration),
			DistanceMeters:  meters(leg.Distance),
		})
	}
	return estimate, nil
}

func (m *Mapbox) RouteLeg(ctx context.Context, from, to domain.Coordinates) (ports.LegEstimate, error) {
	route, err := m.Route(ctx, []domain.Coordinates{from, to})
	if err != nil {
		return ports.LegEstimate{}, err
	}

	leg := route.Legs[0]
	leg.Geometry = route.Geometry
	return leg, nil
}

type mapboxTripResponse struct {
	Trips []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"trips"`
	Waypoints []struct {
		WaypointIndex int `json:"waypoint_index"`
	} `json:"waypoints"`
}

func (m *Mapbox) OptimizeOrder(ctx context.Context, points []domain.Coordinates) (_ ports.OrderRecommendation, err error) {
	defer obs.Time(ctx, "mapbox.OptimizeOrder")(&err)
	defer func() { obs.ObserveProviderCall(m.Name(), "optimize", err) }()

	q := m.auth()
	q.Set("source", "first")
	q.Set("destination", "last")
	q.Set("roundtrip", "false")

	endpoint := m.baseURL + "/optimized-trips/v1/mapbox/driving-traffic/" + lonLatPath(points)

	var resp mapboxTripResponse
	if err := m.http.getJSON(ctx, endpoint, q, &resp); err != nil {
		return ports.OrderRecommendation{}, fmt.Errorf("mapbox optimized trip: %w", err)
	}
	if len(resp.Trips) == 0 {
		return ports.OrderRecommendation{}, errors.New("mapbox optimized trip: no trips returned")
	}
	if len(resp.Waypoints) != len(points) {
		return ports.OrderRecommendation{}, fmt.Errorf(
			"mapbox optimized trip: %d waypoints returned for %d points",
			len(resp.Waypoints), len(points),
		)
	}

	positions := make([]int, len(resp.Waypoints))
	for i, wp := range resp.Waypoints {
		positions[i] = wp.WaypointIndex
	}

	order, err := stopOrderFromTripPositions(positions)
	if err != nil {
		return ports.OrderRecommendation{}, fmt.Errorf("mapbox optimized trip: %w", err)
	}

	return ports.OrderRecommendation{
		StopOrder:       order,
		DurationMinutes: minutes(resp.Trips[0].Duration),
		DistanceMeters:  meters(resp.Trips[0].Distance),
	}, nil
}
