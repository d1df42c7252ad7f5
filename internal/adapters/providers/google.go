package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/platform/obs"
	"journey-planner-service/internal/ports"
)

const googleBaseURL = "https://maps.googleapis.com"

// Google implements geocoding and directions against the Google Maps web
// service APIs. Waypoint optimization uses the Directions API's
// optimize:true waypoints mode.
type Google struct {
	http    *client
	apiKey  string
	baseURL string
}

func NewGoogle(apiKey string) (*Google, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	return &Google{http: newClient(), apiKey: apiKey, baseURL: googleBaseURL}, nil
}

func (g *Google) Name() string { return "google" }

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *Google) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer func() { obs.ObserveProviderCall(g.Name(), "geocode", err) }()

	q := url.Values{}
	q.Set("address", query)
	q.Set("key", g.apiKey)

	var resp googleGeocodeResponse
	if err := g.http.getJSON(ctx, g.baseURL+"/maps/api/geocode/json", q, &resp); err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", query, err)
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return domain.Coordinates{}, domain.NewNotFound(query)
	}
	if resp.Status != "OK" {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: status %s", query, resp.Status)
	}

	loc := resp.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng}, nil
}

type googleDirectionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

func (g *Google) directions(ctx context.Context, q url.Values) (googleDirectionsResponse, error) {
	q.Set("key", g.apiKey)

	var resp googleDirectionsResponse
	if err := g.http.getJSON(ctx, g.baseURL+"/maps/api/directions/json", q, &resp); err != nil {
		return googleDirectionsResponse{}, err
	}
	return resp, nil
}

func (g *Google) RouteLeg(ctx context.Context, from, to domain.Coordinates) (_ ports.LegEstimate, err error) {
	defer func() { obs.ObserveProviderCall(g.Name(), "route", err) }()

	q := url.Values{}
	q.Set("origin", latLngParam(from))
	q.Set("destination", latLngParam(to))

	resp, err := g.directions(ctx, q)
	if err != nil {
		return ports.LegEstimate{}, fmt.Errorf("google directions: %w", err)
	}
	if resp.Status == "ZERO_RESULTS" || len(resp.Routes) == 0 {
		return ports.LegEstimate{}, domain.NewNoRoute(coordLabel(from), coordLabel(to))
	}
	if resp.Status != "OK" {
		return ports.LegEstimate{}, fmt.Errorf("google directions: status %s", resp.Status)
	}

	route := resp.Routes[0]
	if len(route.Legs) == 0 {
		return ports.LegEstimate{}, domain.NewNoRoute(coordLabel(from), coordLabel(to))
	}

	geometry, err := decodeGeometry(route.OverviewPolyline.Points)
	if err != nil {
		return ports.LegEstimate{}, fmt.Errorf("google directions: %w", err)
	}

	leg := route.Legs[0]
	return ports.LegEstimate{
		DurationMinutes: minutes(leg.Duration.Value),
		DistanceMeters:  meters(leg.Distance.Value),
		Geometry:        geometry,
	}, nil
}

func (g *Google) OptimizeOrder(ctx context.Context, points []domain.Coordinates) (_ ports.OrderRecommendation, err error) {
	defer obs.Time(ctx, "google.OptimizeOrder")(&err)
	defer func() { obs.ObserveProviderCall(g.Name(), "optimize", err) }()

	if len(points) < 3 {
		return ports.OrderRecommendation{}, fmt.Errorf("google optimize: need interior stops, got %d points", len(points))
	}

	stops := points[1 : len(points)-1]
	waypoints := make([]string, 0, len(stops))
	for _, s := range stops {
		waypoints = append(waypoints, latLngParam(s))
	}

	q := url.Values{}
	q.Set("origin", latLngParam(points[0]))
	q.Set("destination", latLngParam(points[len(points)-1]))
	q.Set("waypoints", "optimize:true|"+strings.Join(waypoints, "|"))

	resp, err := g.directions(ctx, q)
	if err != nil {
		return ports.OrderRecommendation{}, fmt.Errorf("google optimize: %w", err)
	}
	if resp.Status != "OK" || len(resp.Routes) == 0 {
		return ports.OrderRecommendation{}, fmt.Errorf("google optimize: status %s", resp.Status)
	}

	route := resp.Routes[0]

	// waypoint_order lists stop indices directly, in recommended visit order.
	order := route.WaypointOrder
	if err := validateStopPermutation(order, len(stops)); err != nil {
		return ports.OrderRecommendation{}, fmt.Errorf("google optimize: %w", err)
	}

	var durationSeconds, distanceMeters float64
	for _, leg := range route.Legs {
		durationSeconds += leg.Duration.Value
		distanceMeters += leg.Distance.Value
	}

	return ports.OrderRecommendation{
		StopOrder:       order,
		DurationMinutes: minutes(durationSeconds),
		DistanceMeters:  meters(distanceMeters),
	}, nil
}
