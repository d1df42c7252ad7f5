package ports

import "context"

// FlightInfo is the subset of a flight record the planner needs to anchor a
// journey at an arrival airport. Arrival timestamps are kept as the raw
// provider strings: they follow the source's local wall-clock convention and
// are reinterpreted in the destination timezone by the engine.
type FlightInfo struct {
	FlightIATA       string
	DepartureIATA    string
	ArrivalAirport   string
	ArrivalIATA      string
	ArrivalEstimated string
	ArrivalScheduled string
}

// ArrivalTimestamp returns the estimated arrival when present, otherwise the
// scheduled one.
func (f FlightInfo) ArrivalTimestamp() string {
	if f.ArrivalEstimated != "" {
		return f.ArrivalEstimated
	}
	return f.ArrivalScheduled
}

// FlightLookup resolves a flight code to its arrival data.
type FlightLookup interface {
	// Lookup returns flight data for an IATA flight code. Returns a not_found
	// PlanningError when the flight does not exist.
	Lookup(ctx context.Context, flightIATA string) (FlightInfo, error)
}
