package planner

import (
	"encoding/json"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/eld-planner/backend/internal/domain"
)

// createTripRequest is the POST trips/ body.
type createTripRequest struct {
	CurrentLocation   int64             `json:"current_location"`
	PickupLocation    int64             `json:"pickup_location"`
	DropoffLocation   int64             `json:"dropoff_location"`
	CurrentCycleHours float64           `json:"current_cycle_hours"`
	Driver            int64             `json:"driver"`
	Status            domain.TripStatus `json:"status"`
}

// routeResponse is the body of GET trips/{id}/calculate_route/.
type routeResponse struct {
	Route     domain.RouteData   `json:"route"`
	Stops     []domain.RouteStop `json:"stops"`
	DailyLogs []dailyLog         `json:"daily_logs"`
}

// dailyLog differs from domain.DailyLog only in its date, which the planner
// sends as a bare calendar date.
type dailyLog struct {
	ID       int64              `json:"id"`
	Trip     int64              `json:"trip"`
	Date     openapi_types.Date `json:"date"`
	LogImage *string            `json:"log_image"`
	Entries  []domain.LogEntry  `json:"entries"`
	JSONData json.RawMessage    `json:"json_data,omitempty"`
}

func (l dailyLog) toDomain() domain.DailyLog {
	out := domain.DailyLog{
		ID:      l.ID,
		TripID:  l.Trip,
		Date:    l.Date.Time,
		Entries: l.Entries,
	}
	if l.LogImage != nil {
		out.LogImage = *l.LogImage
	}
	if out.Entries == nil {
		out.Entries = []domain.LogEntry{}
	}
	return out
}

// RouteResult is what the planner computed for one trip.
type RouteResult struct {
	Route     domain.RouteData
	Stops     []domain.RouteStop
	DailyLogs []domain.DailyLog
}

func (r routeResponse) toResult() RouteResult {
	res := RouteResult{
		Route:     r.Route,
		Stops:     r.Stops,
		DailyLogs: make([]domain.DailyLog, len(r.DailyLogs)),
	}
	if res.Stops == nil {
		res.Stops = []domain.RouteStop{}
	}
	for i, l := range r.DailyLogs {
		res.DailyLogs[i] = l.toDomain()
	}
	return res
}
