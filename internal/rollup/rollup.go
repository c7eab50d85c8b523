// Package rollup reduces a trip's ordered stops and route summary into the
// named totals shown on a trip summary: driving, rest and service time, the
// overall trip span, stop count and distance.
package rollup

import (
	"strconv"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
)

// Span is the time from the first stop's arrival to the last stop's
// departure. Available is false when there were no stops.
type Span struct {
	Hours     float64
	Available bool
}

// Summary is the immutable result of Summarize.
type Summary struct {
	DistanceMiles float64
	DrivingHours  float64
	RestHours     float64
	ServiceHours  float64
	Span          Span
	StopCount     int

	// ClampedStops counts stops whose departure preceded their arrival.
	// Their dwell contributed 0 to its bucket.
	ClampedStops int
}

// Summarize computes a Summary from scratch. stops must be in the order the
// planner returned them; they are never re-sorted.
//
// Driving time comes from route, not from stops: driving happens between
// stops and no stop interval represents it.
func Summarize(route domain.RouteData, stops []domain.RouteStop) Summary {
	s := Summary{
		DistanceMiles: max(route.DistanceMiles, 0),
		DrivingHours:  max(route.DurationHours, 0),
		StopCount:     len(stops),
	}

	for _, stop := range stops {
		departure := stop.Departure()
		if interval.IsInverted(stop.ArrivalTime, departure) {
			s.ClampedStops++
		}
		dwell := interval.DurationHours(stop.ArrivalTime, departure)

		switch stop.Type.Category() {
		case domain.CategoryRest:
			s.RestHours += dwell
		case domain.CategoryService:
			s.ServiceHours += dwell
		}
	}

	if len(stops) > 0 {
		first, last := stops[0], stops[len(stops)-1]
		s.Span = Span{
			Hours:     interval.DurationHours(first.ArrivalTime, last.Departure()),
			Available: true,
		}
	}

	return s
}

// View is a Summary rendered for display.
type View struct {
	TotalDistance string `json:"total_distance"`
	TotalDuration string `json:"total_duration"`
	DrivingTime   string `json:"driving_time"`
	RestTime      string `json:"rest_time"`
	ServiceTime   string `json:"service_time"`
	TotalStops    string `json:"total_stops"`
}

// View renders the summary. An unavailable span renders as "N/A".
func (s Summary) View() View {
	total := interval.NotAvailable
	if s.Span.Available {
		total = interval.FormatDuration(s.Span.Hours)
	}
	return View{
		TotalDistance: interval.FormatDistance(s.DistanceMiles),
		TotalDuration: total,
		DrivingTime:   interval.FormatDuration(s.DrivingHours),
		RestTime:      interval.FormatDuration(s.RestHours),
		ServiceTime:   interval.FormatDuration(s.ServiceHours),
		TotalStops:    strconv.Itoa(s.StopCount),
	}
}
