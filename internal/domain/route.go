package domain

import "encoding/json"

// RouteData is the planner's summary of the driven route, independent of
// the time spent at stops.
type RouteData struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`

	// Legs are present when the planner reports them.
	CurrentToPickup *RouteLeg `json:"current_to_pickup,omitempty"`
	PickupToDropoff *RouteLeg `json:"pickup_to_dropoff,omitempty"`

	// Geometry is passed through untouched for map clients.
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

// RouteLeg is the distance and driving time of one section of the route.
type RouteLeg struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}
