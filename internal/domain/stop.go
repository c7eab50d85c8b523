package domain

import "time"

// StopType classifies the purpose of a RouteStop.
// The planner may introduce new types; unknown values are kept verbatim and
// fall into CategoryNone.
type StopType string

const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopFuel    StopType = "fuel"
	StopRest    StopType = "rest"
	StopSleep   StopType = "sleep"
)

// StopCategory is the rollup bucket a stop's dwell time is added to.
type StopCategory int

const (
	// CategoryNone receives nothing: unknown stop types are excluded from totals.
	CategoryNone StopCategory = iota
	CategoryRest
	CategoryService
)

func (c StopCategory) String() string {
	switch c {
	case CategoryRest:
		return "rest"
	case CategoryService:
		return "service"
	default:
		return "none"
	}
}

// Category maps a stop type onto its rollup bucket.
func (t StopType) Category() StopCategory {
	switch t {
	case StopRest, StopSleep:
		return CategoryRest
	case StopPickup, StopDropoff, StopFuel:
		return CategoryService
	default:
		return CategoryNone
	}
}

// Known reports whether t is one of the stop types this service understands.
func (t StopType) Known() bool {
	return t.Category() != CategoryNone
}

// Label is the human-readable name of the stop type. Unknown types render
// as their raw value.
func (t StopType) Label() string {
	switch t {
	case StopPickup:
		return "Pickup"
	case StopDropoff:
		return "Dropoff"
	case StopFuel:
		return "Fuel Stop"
	case StopRest:
		return "Required Rest"
	case StopSleep:
		return "Sleep Break"
	default:
		return string(t)
	}
}

// RouteStop is a single waypoint produced by the planner.
// DepartureTime is nil when the planner left it open; consumers treat that
// as a zero-length dwell.
type RouteStop struct {
	ID            int64      `json:"id"`
	Type          StopType   `json:"stop_type"`
	LocationID    int64      `json:"location"`
	Location      *Location  `json:"location_details,omitempty"`
	ArrivalTime   time.Time  `json:"arrival_time"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Departure returns the departure time, falling back to the arrival time
// when the planner did not provide one.
func (s RouteStop) Departure() time.Time {
	if s.DepartureTime == nil {
		return s.ArrivalTime
	}
	return *s.DepartureTime
}

// LocationName returns the embedded location name, or "" when the planner
// did not include location details.
func (s RouteStop) LocationName() string {
	if s.Location == nil {
		return ""
	}
	return s.Location.Name
}
