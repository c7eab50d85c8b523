package handler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/eld-planner/backend/internal/dayindex"
	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
	"github.com/pkordes/eld-planner/backend/internal/rollup"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

// SessionResponse is the JSON view of a planning session.
type SessionResponse struct {
	ID          uuid.UUID               `json:"id"`
	State       session.State           `json:"state"`
	Error       string                  `json:"error,omitempty"`
	Locations   []domain.Location       `json:"locations"`
	Defaults    domain.DefaultSelection `json:"defaults"`
	Trip        *TripResponse           `json:"trip,omitempty"`
	Plan        *PlanResponse           `json:"plan,omitempty"`
	SelectedDay int                     `json:"selected_day"`
	Days        []dayindex.Tab          `json:"days"`
	CurrentDay  *dayindex.DayView       `json:"current_day,omitempty"`
}

// TripResponse adds display fields to a trip.
type TripResponse struct {
	domain.Trip
	StatusLabel  string `json:"status_label"`
	StatusColour string `json:"status_colour"`
	CreatedLabel string `json:"created_label"`
}

// PlanResponse is a plan with its rollup rendered for display.
type PlanResponse struct {
	Trip       TripResponse   `json:"trip"`
	Summary    rollup.View    `json:"summary"`
	Route      RouteResponse  `json:"route"`
	Stops      []StopResponse `json:"stops"`
	ReceivedAt time.Time      `json:"received_at"`
}

// RouteResponse is the route summary with its legs and geometry.
type RouteResponse struct {
	DistanceMiles   float64          `json:"distance_miles"`
	DurationHours   float64          `json:"duration_hours"`
	DistanceLabel   string           `json:"distance_label"`
	DurationLabel   string           `json:"duration_label"`
	CurrentToPickup *domain.RouteLeg `json:"current_to_pickup,omitempty"`
	PickupToDropoff *domain.RouteLeg `json:"pickup_to_dropoff,omitempty"`
	Geometry        json.RawMessage  `json:"geometry,omitempty"`
}

// StopResponse is a stop rendered for the stop list.
type StopResponse struct {
	ID           int64           `json:"id"`
	Type         domain.StopType `json:"type"`
	TypeLabel    string          `json:"type_label"`
	Category     string          `json:"category"`
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name"`
	Arrival      string          `json:"arrival"`
	Departure    string          `json:"departure"`
	DwellLabel   string          `json:"dwell"`
	Notes        string          `json:"notes,omitempty"`
}

func (s *Server) tripResponse(t domain.Trip) TripResponse {
	return TripResponse{
		Trip:         t,
		StatusLabel:  t.Status.Label(),
		StatusColour: t.Status.Colour(),
		CreatedLabel: interval.FormatDateTime(inZone(t.CreatedAt, s.display)),
	}
}

func (s *Server) planResponse(p domain.Plan, sum rollup.Summary) PlanResponse {
	out := PlanResponse{
		Trip:    s.tripResponse(p.Trip),
		Summary: sum.View(),
		Route: RouteResponse{
			DistanceMiles:   p.Route.DistanceMiles,
			DurationHours:   p.Route.DurationHours,
			DistanceLabel:   interval.FormatDistance(p.Route.DistanceMiles),
			DurationLabel:   interval.FormatDuration(p.Route.DurationHours),
			CurrentToPickup: p.Route.CurrentToPickup,
			PickupToDropoff: p.Route.PickupToDropoff,
			Geometry:        p.Route.Geometry,
		},
		Stops:      make([]StopResponse, len(p.Stops)),
		ReceivedAt: p.ReceivedAt,
	}
	for i, st := range p.Stops {
		out.Stops[i] = s.stopResponse(st)
	}
	return out
}

func (s *Server) stopResponse(st domain.RouteStop) StopResponse {
	name := st.LocationName()
	if name == "" {
		name = interval.NotAvailable
	}
	return StopResponse{
		ID:           st.ID,
		Type:         st.Type,
		TypeLabel:    st.Type.Label(),
		Category:     st.Type.Category().String(),
		LocationID:   st.LocationID,
		LocationName: name,
		Arrival:      interval.FormatDateTime(inZone(st.ArrivalTime, s.display)),
		Departure:    interval.FormatDateTime(inZone(st.Departure(), s.display)),
		DwellLabel:   interval.FormatDuration(interval.DurationHours(st.ArrivalTime, st.Departure())),
		Notes:        st.Notes,
	}
}

func (s *Server) sessionResponse(id uuid.UUID, c *session.Controller) SessionResponse {
	snap := c.Snapshot()
	out := SessionResponse{
		ID:          id,
		State:       snap.State,
		Error:       snap.Error,
		Locations:   snap.Locations,
		Defaults:    snap.Defaults,
		SelectedDay: snap.SelectedDay,
		Days:        snap.Days,
	}
	if out.Locations == nil {
		out.Locations = []domain.Location{}
	}
	if snap.Trip != nil {
		t := s.tripResponse(*snap.Trip)
		out.Trip = &t
	}
	if snap.Plan != nil && snap.Summary != nil {
		p := s.planResponse(*snap.Plan, *snap.Summary)
		out.Plan = &p
	}
	if v, err := c.Day(snap.SelectedDay, s.display); err == nil {
		out.CurrentDay = &v
	}
	return out
}

// inZone keeps the zero time zero so it still renders as not available.
func inZone(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(loc)
}
