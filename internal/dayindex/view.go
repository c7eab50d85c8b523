package dayindex

import (
	"time"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
)

// DayView is one daily log rendered for display.
type DayView struct {
	Index     int    `json:"index"`
	LogID     int64  `json:"log_id"`
	Date      string `json:"date"`
	DateLabel string `json:"date_label"`

	// ImageURL is empty when the planner has no log-sheet image for the day;
	// Placeholder then carries the text to show instead.
	ImageURL    string `json:"image_url,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`

	Entries []EntryView   `json:"entries"`
	Totals  []StatusTotal `json:"totals"`
}

// HasImage reports whether a log-sheet image reference is available.
func (v DayView) HasImage() bool {
	return v.ImageURL != ""
}

// EntryView is a LogEntry rendered for display. End is "" for an open entry.
type EntryView struct {
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// StatusTotal is the time spent in one duty status over a day.
type StatusTotal struct {
	Status   string  `json:"status"`
	Label    string  `json:"label"`
	Hours    float64 `json:"hours"`
	Duration string  `json:"duration"`
}

// Render builds the view of a single daily log. Entries keep their received
// order; unknown statuses render with their raw value as label.
func Render(i int, l domain.DailyLog, loc *time.Location) DayView {
	if loc == nil {
		loc = time.UTC
	}

	v := DayView{
		Index:     i,
		LogID:     l.ID,
		Date:      l.Date.UTC().Format(time.DateOnly),
		DateLabel: interval.FormatCalendarDate(l.Date),
		ImageURL:  l.LogImage,
		Entries:   make([]EntryView, 0, len(l.Entries)),
	}
	if !v.HasImage() {
		v.Placeholder = ImagePlaceholder
	}

	for _, e := range l.Entries {
		ev := EntryView{
			Status:      string(e.Status),
			StatusLabel: e.Status.Label(),
			Start:       interval.FormatTime(e.StartTime.In(loc)),
			Location:    e.Location,
			Remarks:     e.Remarks,
		}
		if e.EndTime != nil {
			ev.End = interval.FormatTime(e.EndTime.In(loc))
		}
		v.Entries = append(v.Entries, ev)
	}

	hours := Totals(l)
	for _, s := range domain.DutyStatuses {
		v.Totals = append(v.Totals, StatusTotal{
			Status:   string(s),
			Label:    s.Label(),
			Hours:    hours[s],
			Duration: interval.FormatDuration(hours[s]),
		})
	}

	return v
}

// Totals sums closed entry durations per duty status. Open entries and
// inverted intervals contribute nothing; overlapping entries are counted as
// given.
func Totals(l domain.DailyLog) map[domain.DutyStatus]float64 {
	out := make(map[domain.DutyStatus]float64, len(domain.DutyStatuses))
	for _, e := range l.Entries {
		if e.EndTime == nil {
			continue
		}
		out[e.Status] += interval.DurationHours(e.StartTime, *e.EndTime)
	}
	return out
}
