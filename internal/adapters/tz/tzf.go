// Package tz resolves coordinates to IANA timezone identifiers using an
// embedded timezone boundary dataset.
package tz

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"journey-planner-service/internal/domain"
)

// Locator wraps a tzf finder. Safe for concurrent use.
type Locator struct {
	finder tzf.F
}

func NewLocator() (*Locator, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("init timezone finder: %w", err)
	}
	return &Locator{finder: finder}, nil
}

// TimezoneFor returns the IANA zone containing the coordinates, or "UTC"
// when the point falls outside every known zone.
func (l *Locator) TimezoneFor(c domain.Coordinates) string {
	if name := l.finder.GetTimezoneName(c.Lon, c.Lat); name != "" {
		return name
	}
	return "UTC"
}
