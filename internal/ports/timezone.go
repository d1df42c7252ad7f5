package ports

import "journey-planner-service/internal/domain"

// TimezoneLocator resolves coordinates to an IANA timezone identifier.
// Implementations return "UTC" when the location cannot be resolved.
type TimezoneLocator interface {
	TimezoneFor(c domain.Coordinates) string
}
