// Package dayindex provides ordered, random-access navigation over a trip's
// daily logs with a single active selection, and renders the selected day.
//
// An Index is not safe for concurrent use; the session controller owns it
// and serialises access.
package dayindex

import (
	"time"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
)

// ImagePlaceholder is shown when a day has no rendered log-sheet image.
const ImagePlaceholder = "Log image not available"

// Index holds the daily logs in the order received and a cursor into them.
type Index struct {
	logs     []domain.DailyLog
	cursor   int
	selected bool // true once the user has chosen a day explicitly
}

// New returns an Index over logs with the first day selected.
func New(logs []domain.DailyLog) *Index {
	x := &Index{}
	x.Reset(logs)
	return x
}

// Reset replaces the logs and moves the cursor back to the first day.
// Used when a new plan arrives.
func (x *Index) Reset(logs []domain.DailyLog) {
	x.logs = logs
	x.cursor = 0
	x.selected = false
}

// Update replaces the logs but keeps the user's current choice, clamped to
// the new length. Until the user has chosen a day the cursor stays on the first.
func (x *Index) Update(logs []domain.DailyLog) {
	x.logs = logs
	if !x.selected {
		x.cursor = 0
		return
	}
	if x.cursor >= len(logs) {
		x.cursor = max(len(logs)-1, 0)
	}
}

// Select moves the cursor to i. An out-of-range i is ignored and Select
// reports false; selection is driven by user input and must never fail loudly.
func (x *Index) Select(i int) bool {
	if i < 0 || i >= len(x.logs) {
		return false
	}
	x.cursor = i
	x.selected = true
	return true
}

// Selected returns the cursor. It is 0 for an empty index.
func (x *Index) Selected() int {
	return x.cursor
}

// Len returns the number of days.
func (x *Index) Len() int {
	return len(x.logs)
}

// Log returns the i-th daily log.
func (x *Index) Log(i int) (domain.DailyLog, bool) {
	if i < 0 || i >= len(x.logs) {
		return domain.DailyLog{}, false
	}
	return x.logs[i], true
}

// Tab is one entry in the day navigation strip.
type Tab struct {
	Index  int    `json:"index"`
	LogID  int64  `json:"log_id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Tabs lists every day, labelled with its formatted date, in received order.
func (x *Index) Tabs() []Tab {
	tabs := make([]Tab, len(x.logs))
	for i, l := range x.logs {
		tabs[i] = Tab{
			Index:  i,
			LogID:  l.ID,
			Label:  interval.FormatCalendarDate(l.Date),
			Active: i == x.cursor,
		}
	}
	return tabs
}

// View renders day i with times shown in loc (UTC when nil).
func (x *Index) View(i int, loc *time.Location) (DayView, bool) {
	l, ok := x.Log(i)
	if !ok {
		return DayView{}, false
	}
	return Render(i, l, loc), true
}

// Current renders the selected day.
func (x *Index) Current(loc *time.Location) (DayView, bool) {
	return x.View(x.cursor, loc)
}
