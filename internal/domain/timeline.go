package domain

import "time"

// EventKind identifies a timeline event type.
type EventKind string

const (
	EventFlightArrival     EventKind = "flight-arrival"
	EventDepart            EventKind = "depart"
	EventArriveStop        EventKind = "arrive-at-stop"
	EventLeaveStop         EventKind = "leave-stop"
	EventArriveDestination EventKind = "arrive-at-destination"
)

// TimelineEvent is one timestamped step of a journey. A synthesized timeline
// is ordered by time ascending and always terminates with an
// arrive-at-destination event.
type TimelineEvent struct {
	Time   time.Time
	Kind   EventKind
	Label  string
	Detail string
}
