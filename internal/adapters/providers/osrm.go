package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/platform/obs"
	"journey-planner-service/internal/ports"
)

// OSRM routes against the public OSRM demo server (or any compatible
// instance) and geocodes through Nominatim.
type OSRM struct {
	http          *client
	routerBase    string
	nominatimBase string
}

func NewOSRM(routerBaseURL, nominatimBaseURL string) *OSRM {
	c := newClient()
	// Nominatim usage policy requires an identifying User-Agent.
	c.userAgent = "journey-planner-service/1.0"

	return &OSRM{
		http:          c,
		routerBase:    routerBaseURL,
		nominatimBase: nominatimBaseURL,
	}
}

func (o *OSRM) Name() string { return "osrm" }

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (o *OSRM) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer func() { obs.ObserveProviderCall(o.Name(), "geocode", err) }()

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []nominatimResult
	if err := o.http.getJSON(ctx, o.nominatimBase+"/search", q, &results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: %w", query, err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, domain.NewNotFound(query)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim returned malformed coordinates for %q", query)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

type osrmRouteResponse struct {
	Code   string `json:"code"`
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

func (o *OSRM) RouteLeg(ctx context.Context, from, to domain.Coordinates) (_ ports.LegEstimate, err error) {
	defer func() { obs.ObserveProviderCall(o.Name(), "route", err) }()

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "polyline")

	endpoint := o.routerBase + "/route/v1/driving/" + lonLatPath([]domain.Coordinates{from, to})

	var resp osrmRouteResponse
	if err := o.http.getJSON(ctx, endpoint, q, &resp); err != nil {
		return ports.LegEstimate{}, fmt.Errorf("osrm route: %w", err)
	}
	if len(resp.Routes) == 0 {
		return ports.LegEstimate{}, domain.NewNoRoute(coordLabel(from), coordLabel(to))
	}

	route := resp.Routes[0]
	geometry, err := decodeGeometry(route.Geometry)
	if err != nil {
		return ports.LegEstimate{}, fmt.Errorf("osrm route: %w", err)
	}

	return ports.LegEstimate{
		DurationMinutes: minutes(route.Duration),
		DistanceMeters:  meters(route.Distance),
		Geometry:        geometry,
	}, nil
}

type osrmTripResponse struct {
	Code  string `json:"code"`
	Trips []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"trips"`
	Waypoints []struct {
		WaypointIndex int `json:"waypoint_index"`
	} `json:"waypoints"`
}

func (o *OSRM) OptimizeOrder(ctx context.Context, points []domain.Coordinates) (_ ports.OrderRecommendation, err error) {
	defer obs.Time(ctx, "osrm.OptimizeOrder")(&err)
	defer func() { obs.ObserveProviderCall(o.Name(), "optimize", err) }()

	q := url.Values{}
	q.Set("source", "first")
	q.Set("destination", "last")
	q.Set("roundtrip", "false")

	endpoint := o.routerBase + "/trip/v1/driving/" + lonLatPath(points)

	var resp osrmTripResponse
	if err := o.http.getJSON(ctx, endpoint, q, &resp); err != nil {
		return ports.OrderRecommendation{}, fmt.Errorf("osrm trip: %w", err)
	}
	if len(resp.Trips) == 0 {
		return ports.OrderRecommendation{}, errors.New("osrm trip: no trips returned")
	}
	if len(resp.Waypoints) != len(points) {
		return ports.OrderRecommendation{}, fmt.Errorf(
			"osrm trip: %d waypoints returned for %d points",
			len(resp.Waypoints), len(points),
		)
	}

	positions := make([]int, len(resp.Waypoints))
	for i, wp := range resp.Waypoints {
		positions[i] = wp.WaypointIndex
	}

	order, err := stopOrderFromTripPositions(positions)
	if err != nil {
		return ports.OrderRecommendation{}, fmt.Errorf("osrm trip: %w", err)
	}

	return ports.OrderRecommendation{
		StopOrder:       order,
		DurationMinutes: minutes(resp.Trips[0].Duration),
		DistanceMeters:  meters(resp.Trips[0].Distance),
	}, nil
}
