package service

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
)

// ExportRows flattens a plan's daily logs into one row per log entry, in
// received order. Days with no entries contribute a single row with empty
// entry fields.
func ExportRows(plan domain.Plan) []domain.ExportRow {
	rows := []domain.ExportRow{}
	for _, l := range plan.DailyLogs {
		day := domain.ExportRow{
			TripID:     plan.Trip.ID,
			TripStatus: string(plan.Trip.Status),
			LogDate:    l.Date.UTC().Format(time.DateOnly),
		}
		if len(l.Entries) == 0 {
			rows = append(rows, day)
			continue
		}
		for _, e := range l.Entries {
			row := day
			row.Status = string(e.Status)
			row.StatusLabel = e.Status.Label()
			row.StartTime = e.StartTime.UTC().Format(time.RFC3339)
			if e.EndTime != nil {
				row.EndTime = e.EndTime.UTC().Format(time.RFC3339)
				row.Hours = interval.DurationHours(e.StartTime, *e.EndTime)
			}
			row.Location = e.Location
			row.Remarks = e.Remarks
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteCSV writes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("service.WriteCSV: %w", err)
	}
	return nil
}
