package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"journey-planner-service/internal/api/dto"
	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
	"journey-planner-service/internal/services"
)

type PlanHandler struct {
	// Providers maps a provider name from the request body to its adapter.
	Providers       map[string]ports.RouteProvider
	DefaultProvider string

	Flights   ports.FlightLookup
	Timezones ports.TimezoneLocator
	Cache     ports.GeocodeCache

	DefaultTimezoneMode  string
	AirportBufferMinutes int
}

// Plan runs one journey planning request end to end: geocode, route,
// optimize and schedule. Provider selection happens per request so a single
// deployment can serve all configured routing backends.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	providerName := strings.TrimSpace(req.Provider)
	if providerName == "" {
		providerName = h.DefaultProvider
	}
	provider, ok := h.Providers[providerName]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown provider "+providerName)
		return
	}

	tzMode := strings.TrimSpace(req.TimezoneMode)
	if tzMode == "" {
		tzMode = h.DefaultTimezoneMode
	}
	switch domain.TimezoneMode(tzMode) {
	case domain.TimezoneOrigin, domain.TimezoneDestination:
	default:
		writeError(w, r, http.StatusBadRequest, "timezone_mode must be origin or destination")
		return
	}

	stops := make([]services.StopRequest, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, services.StopRequest{
			Address:       s.Address,
			BufferMinutes: s.BufferMinutes,
		})
	}

	planner := &services.Planner{
		Provider:             provider,
		Flights:              h.Flights,
		Timezones:            h.Timezones,
		Cache:                h.Cache,
		AirportBufferMinutes: h.AirportBufferMinutes,
	}

	itinerary, err := planner.Plan(r.Context(), services.PlanRequest{
		StartMode:    domain.StartMode(req.StartMode),
		StartAddress: req.StartAddress,
		FlightCode:   req.FlightCode,
		Stops:        stops,
		Destination:  req.Destination,
		TimezoneMode: domain.TimezoneMode(tzMode),
	})
	if err != nil {
		status, msg := planErrorStatus(err)
		if status == http.StatusBadGateway {
			log.Printf("plan failed: provider=%s err=%v", providerName, err)
		}
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(itinerary, domain.TimezoneMode(tzMode)))
}

// planErrorStatus maps the planning error taxonomy onto HTTP status codes.
// Provider trouble is reported as a bad gateway with a generic message so
// upstream API keys or URLs never leak into responses.
func planErrorStatus(err error) (int, string) {
	var perr *domain.PlanningError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch perr.Kind {
	case domain.ErrKindInput:
		return http.StatusBadRequest, perr.Error()
	case domain.ErrKindNotFound:
		return http.StatusNotFound, perr.Error()
	case domain.ErrKindNoRoute:
		return http.StatusUnprocessableEntity, perr.Error()
	default:
		return http.StatusBadGateway, "routing provider unavailable"
	}
}

func planResponse(it *domain.Itinerary, mode domain.TimezoneMode) dto.PlanResponse {
	res := dto.PlanResponse{
		Start:               waypointResponse(it.Start),
		Stops:               make([]dto.WaypointResponse, 0, len(it.Stops)),
		Destination:         waypointResponse(it.Destination),
		Route:               routeResponse(it.Route),
		Timeline:            timelineResponse(it.Timeline),
		OriginTimezone:      it.OriginTimezone,
		DestinationTimezone: it.DestinationTimezone,
		DisplayTimezone:     it.DisplayTimezone(mode),
	}
	for _, s := range it.Stops {
		res.Stops = append(res.Stops, waypointResponse(s))
	}
	if it.Optimization != nil {
		res.Optimization = &dto.OptimizationResponse{
			StopOrder:            it.Optimization.StopOrder,
			Labels:               it.Optimization.Labels,
			TotalDurationMinutes: it.Optimization.TotalDurationMinutes,
			TotalDistanceMeters:  it.Optimization.TotalDistanceMeters,
		}
	}
	if it.OptimizedRoute != nil {
		rr := routeResponse(*it.OptimizedRoute)
		res.OptimizedRoute = &rr
	}
	if len(it.OptimizedTimeline) > 0 {
		res.OptimizedTimeline = timelineResponse(it.OptimizedTimeline)
	}
	return res
}

func waypointResponse(w domain.Waypoint) dto.WaypointResponse {
	return dto.WaypointResponse{
		Label:         w.Label,
		Coords:        dto.CoordinatesResponse{Lat: w.Coords.Lat, Lon: w.Coords.Lon},
		BufferMinutes: w.BufferMinutes,
	}
}

func routeResponse(r domain.RouteResult) dto.RouteResponse {
	res := dto.RouteResponse{
		Legs:                 make([]dto.LegResponse, 0, len(r.Legs)),
		TotalDurationMinutes: r.TotalDurationMinutes,
		TotalDistanceMeters:  r.TotalDistanceMeters,
	}
	for _, leg := range r.Legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			From:            leg.From.Label,
			To:              leg.To.Label,
			DurationMinutes: leg.DurationMinutes,
			DistanceMeters:  leg.DistanceMeters,
		})
	}
	for _, c := range r.Geometry {
		res.Geometry = append(res.Geometry, dto.CoordinatesResponse{Lat: c.Lat, Lon: c.Lon})
	}
	return res
}

func timelineResponse(events []domain.TimelineEvent) []dto.TimelineEventResponse {
	res := make([]dto.TimelineEventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, dto.TimelineEventResponse{
			Time:   e.Time,
			Kind:   string(e.Kind),
			Label:  e.Label,
			Detail: e.Detail,
		})
	}
	return res
}
