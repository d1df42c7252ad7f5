package dto

import "time"

type StopRequest struct {
	Address       string `json:"address"`
	BufferMinutes int    `json:"buffer_minutes"`
}

type PlanRequest struct {
	StartMode    string        `json:"start_mode"`
	StartAddress string        `json:"start_address"`
	FlightCode   string        `json:"flight_code"`
	Stops        []StopRequest `json:"stops"`
	Destination  string        `json:"destination"`
	Provider     string        `json:"provider"`
	TimezoneMode string        `json:"timezone_mode"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type WaypointResponse struct {
	Label         string              `json:"label"`
	Coords        CoordinatesResponse `json:"coords"`
	BufferMinutes int                 `json:"buffer_minutes,omitempty"`
}

type LegResponse struct {
	From            string `json:"from"`
	To              string `json:"to"`
	DurationMinutes int    `json:"duration_minutes"`
	DistanceMeters  int    `json:"distance_meters"`
}

type RouteResponse struct {
	Legs                 []LegResponse         `json:"legs"`
	TotalDurationMinutes int                   `json:"total_duration_minutes"`
	TotalDistanceMeters  int                   `json:"total_distance_meters"`
	Geometry             []CoordinatesResponse `json:"geometry,omitempty"`
}

type OptimizationResponse struct {
	StopOrder            []int    `json:"stop_order"`
	Labels               []string `json:"labels"`
	TotalDurationMinutes int      `json:"total_duration_minutes"`
	TotalDistanceMeters  int      `json:"total_distance_meters"`
}

type TimelineEventResponse struct {
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Label  string    `json:"label"`
	Detail string    `json:"detail,omitempty"`
}

type PlanResponse struct {
	Start               WaypointResponse        `json:"start"`
	Stops               []WaypointResponse      `json:"stops"`
	Destination         WaypointResponse        `json:"destination"`
	Route               RouteResponse           `json:"route"`
	Optimization        *OptimizationResponse   `json:"optimization,omitempty"`
	OptimizedRoute      *RouteResponse          `json:"optimized_route,omitempty"`
	Timeline            []TimelineEventResponse `json:"timeline"`
	OptimizedTimeline   []TimelineEventResponse `json:"optimized_timeline,omitempty"`
	OriginTimezone      string                  `json:"origin_timezone"`
	DestinationTimezone string                  `json:"destination_timezone"`
	DisplayTimezone     string                  `json:"display_timezone"`
}
