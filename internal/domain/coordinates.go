package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Validate checks that the coordinates lie within WGS84 bounds.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// LonLat returns the coordinates as [lon, lat] for providers that take
// GeoJSON-ordered pairs (Mapbox, OSRM).
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

// LatLng returns the coordinates as [lat, lng] for rendering layers and
// providers that take latitude-first pairs (Google).
func (c Coordinates) LatLng() []float64 { return []float64{c.Lat, c.Lon} }
