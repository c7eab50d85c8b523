package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedPlan is a plan recorded after it reached ready. Listing queries
// leave Plan nil and fill only the summary columns.
type ArchivedPlan struct {
	ID            uuid.UUID
	TripID        int64
	TripStatus    TripStatus
	DistanceMiles float64
	DurationHours float64
	StopCount     int
	DayCount      int
	ReceivedAt    time.Time
	ArchivedAt    time.Time
	UpdatedAt     time.Time
	Plan          *Plan
}
