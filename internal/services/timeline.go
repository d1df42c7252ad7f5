package services

import (
	"fmt"
	"log"
	"time"

	"journey-planner-service/internal/domain"
)

// FlightArrival anchors a flight-mode timeline.
type FlightArrival struct {
	Time        time.Time
	FlightIATA  string
	OriginIATA  string
	AirportIATA string
}

// TimelineBuilder synthesizes the ordered event sequence of one journey:
//
//	(flight-arrival ->)? depart -> (arrive-at-stop -> (leave-stop)?)* -> arrive-at-destination
//
// Events are emitted in non-decreasing time order and the sequence always
// terminates with an arrive-at-destination event.
type TimelineBuilder struct {
	// Flight is set only for flight-mode starts.
	Flight               *FlightArrival
	DepartAt             time.Time
	StartLabel           string
	AirportBufferMinutes int
}

func (b TimelineBuilder) prelude() []domain.TimelineEvent {
	if b.Flight != nil {
		return []domain.TimelineEvent{
			{
				Time:   b.Flight.Time,
				Kind:   domain.EventFlightArrival,
				Label:  "Flight Arrives at " + b.Flight.AirportIATA,
				Detail: fmt.Sprintf("Flight %s from %s", b.Flight.FlightIATA, b.Flight.OriginIATA),
			},
			{
				Time:   b.DepartAt,
				Kind:   domain.EventDepart,
				Label:  "Leave Airport",
				Detail: fmt.Sprintf("Includes %d min buffer for deplaning & baggage", b.AirportBufferMinutes),
			},
		}
	}

	return []domain.TimelineEvent{
		{
			Time:   b.DepartAt,
			Kind:   domain.EventDepart,
			Label:  "Depart from Start",
			Detail: "Starting from " + b.StartLabel,
		},
	}
}

func stopEvents(
	current time.Time,
	position int,
	stop domain.Waypoint,
	detail string,
	legMinutes int,
) ([]domain.TimelineEvent, time.Time) {
	arrive := current.Add(time.Duration(legMinutes) * time.Minute)

	events := []domain.TimelineEvent{{
		Time:   arrive,
		Kind:   domain.EventArriveStop,
		Label:  fmt.Sprintf("Arrive at Stop %d", position),
		Detail: detail,
	}}

	if stop.BufferMinutes > 0 {
		leave := arrive.Add(time.Duration(stop.BufferMinutes) * time.Minute)
		events = append(events, domain.TimelineEvent{
			Time:   leave,
			Kind:   domain.EventLeaveStop,
			Label:  fmt.Sprintf("Leave Stop %d", position),
			Detail: fmt.Sprintf("%d min buffer at stop", stop.BufferMinutes),
		})
		return events, leave
	}

	return events, arrive
}

// Build synthesizes the as-entered timeline from the as-entered route.
// route always carries len(stops)+1 legs.
func (b TimelineBuilder) Build(
	route domain.RouteResult,
	stops []domain.Waypoint,
	destination string,
) []domain.TimelineEvent {
	events := b.prelude()
	current := b.DepartAt

	for i, stop := range stops {
		leg := route.Legs[i]
		detail := fmt.Sprintf("%d min drive to %s", leg.DurationMinutes, stop.Label)

		var stepEvents []domain.TimelineEvent
		stepEvents, current = stopEvents(current, i+1, stop, detail, leg.DurationMinutes)
		events = append(events, stepEvents...)
	}

	finalLeg := route.Legs[len(route.Legs)-1]
	arrival := current.Add(time.Duration(finalLeg.DurationMinutes) * time.Minute)

	detail := fmt.Sprintf("%d min drive to %s", route.TotalDurationMinutes, destination)
	if len(stops) > 0 {
		detail = fmt.Sprintf("%d min drive from last stop to %s", finalLeg.DurationMinutes, destination)
	}

	return append(events, domain.TimelineEvent{
		Time:   arrival,
		Kind:   domain.EventArriveDestination,
		Label:  "Arrive at Destination",
		Detail: detail,
	})
}

// BuildOptimized synthesizes the timeline for the recommended stop order.
// When the optimized route has fewer legs than stops+1, the affected stops
// fall back to the as-entered leg duration at their original position and are
// flagged as estimates; a stop with no duration data at all is skipped with a
// logged warning rather than aborting the timeline.
func (b TimelineBuilder) BuildOptimized(
	opt *domain.OptimizationResult,
	optimizedRoute *domain.RouteResult,
	asEntered domain.RouteResult,
	stops []domain.Waypoint,
	destination string,
) []domain.TimelineEvent {
	events := b.prelude()
	current := b.DepartAt

	var optLegs []domain.RouteLeg
	if optimizedRoute != nil {
		optLegs = optimizedRoute.Legs
	}
	asLegs := asEntered.Legs

	position := 0
	for i, stopIdx := range opt.StopOrder {
		stop := stops[stopIdx]

		var legMinutes int
		var detail string
		if i < len(optLegs) {
			legMinutes = optLegs[i].DurationMinutes
			detail = fmt.Sprintf("%d min drive to %s", legMinutes, stop.Label)
		} else {
			legMinutes = asLegs[stopIdx].DurationMinutes
			if legMinutes == 0 {
				log.Printf("optimized timeline: no duration data for stop %q, skipping", stop.Label)
				continue
			}
			detail = fmt.Sprintf("~%d min drive to %s (estimated)", legMinutes, stop.Label)
		}

		position++
		var stepEvents []domain.TimelineEvent
		stepEvents, current = stopEvents(current, position, stop, detail, legMinutes)
		events = append(events, stepEvents...)
	}

	var finalMinutes int
	if len(optLegs) > len(opt.StopOrder) {
		finalMinutes = optLegs[len(optLegs)-1].DurationMinutes
	} else {
		finalMinutes = asLegs[len(asLegs)-1].DurationMinutes
	}
	arrival := current.Add(time.Duration(finalMinutes) * time.Minute)

	return append(events, domain.TimelineEvent{
		Time:   arrival,
		Kind:   domain.EventArriveDestination,
		Label:  "Arrive at Destination",
		Detail: fmt.Sprintf("%d min drive to %s (optimized route)", finalMinutes, destination),
	})
}
