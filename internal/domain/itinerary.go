package domain

// TimezoneMode selects which journey timezone is used to render wall-clock
// times at the edges.
type TimezoneMode string

const (
	TimezoneOrigin      TimezoneMode = "origin"
	TimezoneDestination TimezoneMode = "destination"
)

// StartMode selects how the journey start is resolved.
type StartMode string

const (
	StartFromAddress StartMode = "address"
	StartFromFlight  StartMode = "flight"
)

// Itinerary is the terminal output of one planning run. It is created fresh
// per run, fully immutable after construction, and owned by the caller; the
// engine holds no reference to it afterward.
type Itinerary struct {
	Start       Waypoint
	Stops       []Waypoint
	Destination Waypoint

	Route RouteResult

	// Optimization and OptimizedRoute are nil when the provider offered no
	// recommendation. OptimizedRoute may also be nil while Optimization is
	// set, if the follow-up route computation failed; the optimized timeline
	// then carries estimated durations.
	Optimization   *OptimizationResult
	OptimizedRoute *RouteResult

	Timeline          []TimelineEvent
	OptimizedTimeline []TimelineEvent

	OriginTimezone      string
	DestinationTimezone string
}

// DisplayTimezone returns the IANA zone matching the requested display mode.
func (it *Itinerary) DisplayTimezone(mode TimezoneMode) string {
	if mode == TimezoneOrigin {
		return it.OriginTimezone
	}
	return it.DestinationTimezone
}
