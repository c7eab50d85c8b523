// Package domain contains the core data types for the ELD trip planner.
// Every record here is produced by the external planner service; this
// package only describes its shape and the closed value sets it uses.
package domain

import (
	"strings"
	"time"
)

// TripStatus is the lifecycle state asserted by the planner service.
// Values outside the known set are kept verbatim.
type TripStatus string

const (
	TripPlanned    TripStatus = "planned"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

// Label renders the status for a badge, e.g. "IN PROGRESS".
func (s TripStatus) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

// Colour returns the badge colour name used by presentation clients.
func (s TripStatus) Colour() string {
	switch s {
	case TripPlanned:
		return "primary"
	case TripInProgress:
		return "warning"
	case TripCompleted:
		return "success"
	case TripCancelled:
		return "danger"
	default:
		return "secondary"
	}
}

// Trip is a single planned haul from the driver's current location through
// a pickup to a dropoff.
//
// The *Details pointers are nil when the planner did not embed the resolved
// locations in its response.
type Trip struct {
	ID                int64      `json:"id"`
	CurrentLocationID int64      `json:"current_location"`
	PickupLocationID  int64      `json:"pickup_location"`
	DropoffLocationID int64      `json:"dropoff_location"`
	CurrentLocation   *Location  `json:"current_location_details,omitempty"`
	PickupLocation    *Location  `json:"pickup_location_details,omitempty"`
	DropoffLocation   *Location  `json:"dropoff_location_details,omitempty"`
	CurrentCycleHours float64    `json:"current_cycle_hours"`
	Status            TripStatus `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Plan is everything the planner returned for one trip: the trip itself,
// the route summary, the ordered stops and the per-day logs.
type Plan struct {
	Trip       Trip        `json:"trip"`
	Route      RouteData   `json:"route"`
	Stops      []RouteStop `json:"stops"`
	DailyLogs  []DailyLog  `json:"daily_logs"`
	ReceivedAt time.Time   `json:"received_at"`
}
