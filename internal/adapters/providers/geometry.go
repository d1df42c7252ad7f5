package providers

import (
	"fmt"
	"math"
	"strings"

	"github.com/twpayne/go-polyline"

	"journey-planner-service/internal/domain"
)

// decodeGeometry decodes an encoded polyline into coordinates. All three
// backends return precision-5 Google polylines with latitude first.
func decodeGeometry(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return nil, nil
	}

	pairs, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	coords := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		coords = append(coords, domain.Coordinates{Lat: p[0], Lon: p[1]})
	}
	return coords, nil
}

// lonLatPath formats points as the "lng,lat;lng,lat" path segment Mapbox and
// OSRM URLs expect.
func lonLatPath(points []domain.Coordinates) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, fmt.Sprintf("%f,%f", p.Lon, p.Lat))
	}
	return strings.Join(parts, ";")
}

// latLngParam formats a point as the "lat,lng" query value Google expects.
func latLngParam(p domain.Coordinates) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lon)
}

func coordLabel(p domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon)
}

// minutes converts provider seconds to whole minutes, rounded per leg.
func minutes(seconds float64) int {
	return int(math.Round(seconds / 60))
}

// meters rounds provider float distances to whole meters.
func meters(distance float64) int {
	return int(math.Round(distance))
}
