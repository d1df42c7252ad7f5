package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/platform/obs"
	"journey-planner-service/internal/ports"
)

// StopRequest is one intermediate stop as entered by the caller.
type StopRequest struct {
	Address       string
	BufferMinutes int
}

// PlanRequest describes one journey to plan. The zero StartMode means
// address mode.
type PlanRequest struct {
	StartMode    domain.StartMode
	FlightCode   string
	StartAddress string
	Stops        []StopRequest
	Destination  string
	TimezoneMode domain.TimezoneMode
}

// Planner is the journey planning engine. It owns no state across runs:
// every Plan call is a clean computation over freshly fetched provider data,
// and the returned Itinerary belongs to the caller. Cancel the context to
// abandon an in-flight run.
type Planner struct {
	Provider  ports.RouteProvider
	Flights   ports.FlightLookup
	Timezones ports.TimezoneLocator
	Cache     ports.GeocodeCache

	// AirportBufferMinutes pads a flight arrival before the drive departs.
	// Zero means the default of 45 minutes.
	AirportBufferMinutes int

	// Now supplies the address-mode departure time. Defaults to time.Now.
	Now func() time.Time
}

const defaultAirportBufferMinutes = 45

func (p *Planner) airportBuffer() int {
	if p.AirportBufferMinutes > 0 {
		return p.AirportBufferMinutes
	}
	return defaultAirportBufferMinutes
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

type routeOutcome struct {
	route domain.RouteResult
	err   error
}

// Plan resolves, routes, optimizes and schedules one journey. On failure it
// returns a *domain.PlanningError; optimization trouble never fails a run.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (_ *domain.Itinerary, err error) {
	started := time.Now()
	defer func() { obs.ObservePlan(time.Since(started).Seconds(), err) }()
	defer obs.Time(ctx, "planner.Plan")(&err)

	mode, stops, perr := validateRequest(req)
	if perr != nil {
		return nil, perr
	}

	// Flight-mode starts need the arrival airport before any geocoding.
	var flightInfo *ports.FlightInfo
	startLabel := normalizeQuery(req.StartAddress)
	if mode == domain.StartFromFlight {
		if p.Flights == nil {
			return nil, domain.NewInputError("flight lookup is not configured")
		}
		info, err := p.Flights.Lookup(ctx, req.FlightCode)
		if err != nil {
			return nil, domain.AsPlanningError(err)
		}
		flightInfo = &info
		startLabel = fmt.Sprintf("%s (%s)", info.ArrivalAirport, info.ArrivalIATA)
	}

	// Start, destination and every stop are independent; resolve them all
	// concurrently and fail on the first miss.
	queries := make([]string, 0, len(stops)+2)
	queries = append(queries, startLabel, req.Destination)
	for _, s := range stops {
		queries = append(queries, s.Address)
	}

	resolver := &GeocodeResolver{Provider: p.Provider, Cache: p.Cache}
	coords, err := resolver.ResolveAll(ctx, queries)
	if err != nil {
		return nil, domain.AsPlanningError(err)
	}

	start := domain.Waypoint{Label: startLabel, Role: domain.RoleStart, Coords: coords[0]}
	destination := domain.Waypoint{
		Label:  normalizeQuery(req.Destination),
		Role:   domain.RoleDestination,
		Coords: coords[1],
	}
	stopPoints := make([]domain.Waypoint, 0, len(stops))
	for i, s := range stops {
		stopPoints = append(stopPoints, domain.Waypoint{
			Label:         normalizeQuery(s.Address),
			Role:          domain.RoleStop,
			Coords:        coords[2+i],
			BufferMinutes: s.BufferMinutes,
		})
	}

	optimization := OptimizeStopOrder(ctx, p.Provider, start, stopPoints, destination)

	// Both orderings are known here, so the two route computations are
	// independent and run in parallel. The as-entered route is mandatory;
	// a failed optimized route degrades to estimated timeline durations.
	points := journeyPoints(start, stopPoints, destination, nil)

	asEnteredCh := make(chan routeOutcome, 1)
	go func() {
		r, err := BuildRoute(ctx, p.Provider, points)
		asEnteredCh <- routeOutcome{route: r, err: err}
	}()

	var optimizedCh chan routeOutcome
	if optimization != nil {
		optimizedPoints := journeyPoints(start, stopPoints, destination, optimization.StopOrder)
		optimizedCh = make(chan routeOutcome, 1)
		go func() {
			r, err := BuildRoute(ctx, p.Provider, optimizedPoints)
			optimizedCh <- routeOutcome{route: r, err: err}
		}()
	}

	asEntered := <-asEnteredCh
	var optimizedRoute *domain.RouteResult
	if optimizedCh != nil {
		optimized := <-optimizedCh
		if optimized.err != nil {
			log.Printf("optimized route computation failed, timeline will use estimates: %v", optimized.err)
		} else {
			optimizedRoute = &optimized.route
		}
	}
	if asEntered.err != nil {
		return nil, domain.AsPlanningError(asEntered.err)
	}

	originTZ, destinationTZ := "UTC", "UTC"
	if p.Timezones != nil {
		originTZ = p.Timezones.TimezoneFor(start.Coords)
		destinationTZ = p.Timezones.TimezoneFor(destination.Coords)
	}

	departAt := p.now()
	var flightArrival *FlightArrival
	if flightInfo != nil {
		arrival, err := parseLocalWallClock(flightInfo.ArrivalTimestamp(), destinationTZ)
		if err != nil {
			return nil, domain.NewProviderError("flight "+req.FlightCode, err)
		}
		departAt = arrival.Add(time.Duration(p.airportBuffer()) * time.Minute)
		flightArrival = &FlightArrival{
			Time:        arrival,
			FlightIATA:  flightInfo.FlightIATA,
			OriginIATA:  flightInfo.DepartureIATA,
			AirportIATA: flightInfo.ArrivalIATA,
		}
	}

	builder := TimelineBuilder{
		Flight:               flightArrival,
		DepartAt:             departAt,
		StartLabel:           startLabel,
		AirportBufferMinutes: p.airportBuffer(),
	}

	timeline := builder.Build(asEntered.route, stopPoints, destination.Label)
	var optimizedTimeline []domain.TimelineEvent
	if optimization != nil {
		optimizedTimeline = builder.BuildOptimized(
			optimization, optimizedRoute, asEntered.route, stopPoints, destination.Label,
		)
	}

	return &domain.Itinerary{
		Start:               start,
		Stops:               stopPoints,
		Destination:         destination,
		Route:               asEntered.route,
		Optimization:        optimization,
		OptimizedRoute:      optimizedRoute,
		Timeline:            timeline,
		OptimizedTimeline:   optimizedTimeline,
		OriginTimezone:      originTZ,
		DestinationTimezone: destinationTZ,
	}, nil
}

// validateRequest checks required fields before any network call is issued.
// Blank stop entries are dropped; their buffers go with them.
func validateRequest(req PlanRequest) (domain.StartMode, []StopRequest, *domain.PlanningError) {
	mode := req.StartMode
	if mode == "" {
		mode = domain.StartFromAddress
	}

	switch mode {
	case domain.StartFromAddress:
		if strings.TrimSpace(req.StartAddress) == "" {
			return "", nil, domain.NewInputError("start address is required")
		}
	case domain.StartFromFlight:
		if strings.TrimSpace(req.FlightCode) == "" {
			return "", nil, domain.NewInputError("flight code is required")
		}
	default:
		return "", nil, domain.NewInputError(fmt.Sprintf("unknown start mode %q", req.StartMode))
	}

	if strings.TrimSpace(req.Destination) == "" {
		return "", nil, domain.NewInputError("destination is required")
	}

	stops := make([]StopRequest, 0, len(req.Stops))
	for _, s := range req.Stops {
		if strings.TrimSpace(s.Address) == "" {
			continue
		}
		if s.BufferMinutes < 0 {
			return "", nil, domain.NewInputError(fmt.Sprintf("stop %q has negative buffer", s.Address))
		}
		stops = append(stops, s)
	}

	return mode, stops, nil
}

// journeyPoints assembles start -> stops -> destination, reordering the
// stops when an optimized order is given.
func journeyPoints(
	start domain.Waypoint,
	stops []domain.Waypoint,
	destination domain.Waypoint,
	order []int,
) []domain.Waypoint {
	points := make([]domain.Waypoint, 0, len(stops)+2)
	points = append(points, start)
	if order == nil {
		points = append(points, stops...)
	} else {
		for _, idx := range order {
			points = append(points, stops[idx])
		}
	}
	return append(points, destination)
}

var utcOffsetSuffix = regexp.MustCompile(`([+-]\d{2}:\d{2}|Z)$`)

// parseLocalWallClock interprets a flight timestamp as local wall-clock time
// in the given zone. Any explicit UTC offset or Z suffix is stripped first:
// the source data already carries airport-local times.
func parseLocalWallClock(timestamp, zone string) (time.Time, error) {
	clean := utcOffsetSuffix.ReplaceAllString(strings.TrimSpace(timestamp), "")
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty arrival timestamp")
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, clean, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable arrival timestamp %q", timestamp)
}
