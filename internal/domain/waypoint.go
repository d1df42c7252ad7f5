package domain

// WaypointRole tags a waypoint's position in the journey.
type WaypointRole string

const (
	RoleStart       WaypointRole = "start"
	RoleStop        WaypointRole = "stop"
	RoleDestination WaypointRole = "destination"
)

// Waypoint is a resolved location in a journey. Ordering within a list is
// significant; the engine tracks both the as-entered and the optimized
// ordering of the same stop waypoints, while start and destination are fixed.
type Waypoint struct {
	Label  string
	Role   WaypointRole
	Coords Coordinates

	// BufferMinutes is the dwell time at a stop before the journey is assumed
	// to continue. Always zero for start and destination waypoints.
	BufferMinutes int
}
