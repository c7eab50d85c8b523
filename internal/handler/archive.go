package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
	"github.com/pkordes/eld-planner/backend/internal/rollup"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// ArchivedPlanSummary is one row of GET /archive/plans.
type ArchivedPlanSummary struct {
	ID            uuid.UUID         `json:"id"`
	TripID        int64             `json:"trip_id"`
	TripStatus    domain.TripStatus `json:"trip_status"`
	StatusLabel   string            `json:"status_label"`
	DistanceLabel string            `json:"distance_label"`
	DurationLabel string            `json:"duration_label"`
	StopCount     int               `json:"stop_count"`
	DayCount      int               `json:"day_count"`
	ReceivedAt    time.Time         `json:"received_at"`
	ArchivedAt    time.Time         `json:"archived_at"`
}

// ArchivedPlanList is the body of GET /archive/plans.
type ArchivedPlanList struct {
	Items      []ArchivedPlanSummary `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

// ArchivedPlanResponse is the body of GET /archive/plans/{tripId}.
type ArchivedPlanResponse struct {
	ArchivedPlanSummary
	Plan      PlanResponse      `json:"plan"`
	DailyLogs []domain.DailyLog `json:"daily_logs"`
}

// ListArchivedPlans handles GET /archive/plans.
func (s *Server) ListArchivedPlans(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		badRequest(w, "invalid page")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest(w, "invalid limit")
		return
	}
	params := domain.NewPaginationParams(page, limit)

	result, err := s.archive.List(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	out := ArchivedPlanList{
		Items: make([]ArchivedPlanSummary, 0, len(result.Items)),
		Pagination: Pagination{
			Page:    params.Page,
			Limit:   params.Limit,
			Total:   result.Total,
			HasMore: result.HasMore(),
		},
	}
	for _, a := range result.Items {
		out.Items = append(out.Items, archivedSummary(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetArchivedPlan handles GET /archive/plans/{tripId}.
func (s *Server) GetArchivedPlan(w http.ResponseWriter, r *http.Request) {
	var tripID int64
	if err := pathParam(r, "tripId", &tripID); err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	a, err := s.archive.Get(r.Context(), tripID)
	if err != nil {
		writeDomainError(w, r, err, "archived plan not found")
		return
	}
	if a.Plan == nil {
		notFound(w, "archived plan not found")
		return
	}

	sum := rollup.Summarize(a.Plan.Route, a.Plan.Stops)
	writeJSON(w, http.StatusOK, ArchivedPlanResponse{
		ArchivedPlanSummary: archivedSummary(a),
		Plan:                s.planResponse(*a.Plan, sum),
		DailyLogs:           a.Plan.DailyLogs,
	})
}

func archivedSummary(a domain.ArchivedPlan) ArchivedPlanSummary {
	return ArchivedPlanSummary{
		ID:            a.ID,
		TripID:        a.TripID,
		TripStatus:    a.TripStatus,
		StatusLabel:   a.TripStatus.Label(),
		DistanceLabel: interval.FormatDistance(a.DistanceMiles),
		DurationLabel: interval.FormatDuration(a.DurationHours),
		StopCount:     a.StopCount,
		DayCount:      a.DayCount,
		ReceivedAt:    a.ReceivedAt,
		ArchivedAt:    a.ArchivedAt,
	}
}
