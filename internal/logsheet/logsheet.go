// Package logsheet draws a day's duty-status record as a one-page PDF in
// the familiar four-row, 24-hour grid layout.
package logsheet

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/pkordes/eld-planner/backend/internal/dayindex"
	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/interval"
)

// Grid geometry in millimetres on landscape A4.
const (
	gridLeft   = 45.0
	gridTop    = 40.0
	hourWidth  = 9.0
	rowHeight  = 10.0
	totalsLeft = gridLeft + 24*hourWidth + 4
)

// Sheet is everything printed on one page.
type Sheet struct {
	Trip     domain.Trip
	Log      domain.DailyLog
	Location *time.Location // display zone; UTC when nil
}

// Write renders s as PDF to w.
func Write(w io.Writer, s Sheet) error {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	view := dayindex.Render(0, s.Log, loc)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Driver's Daily Log "+view.Date, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, "Driver's Daily Log")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s    Trip #%d    Status: %s",
		view.DateLabel, s.Trip.ID, s.Trip.Status.Label()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("From: %s    Pickup: %s    Dropoff: %s",
		locationName(s.Trip.CurrentLocation, s.Trip.CurrentLocationID),
		locationName(s.Trip.PickupLocation, s.Trip.PickupLocationID),
		locationName(s.Trip.DropoffLocation, s.Trip.DropoffLocationID)))

	drawGrid(pdf, view)
	drawSegments(pdf, segments(s.Log, loc))
	drawRemarks(pdf, view)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("logsheet.Write: %w", err)
	}
	return nil
}

func drawGrid(pdf *gofpdf.Fpdf, view dayindex.DayView) {
	pdf.SetFont("Helvetica", "", 7)
	for h := 0; h <= 24; h++ {
		x := gridLeft + float64(h)*hourWidth
		pdf.Text(x-1.5, gridTop-2, hourLabel(h))
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i, st := range domain.DutyStatuses {
		y := gridTop + float64(i)*rowHeight

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(10, y)
		pdf.CellFormat(gridLeft-12, rowHeight, st.Label(), "", 0, "R", false, 0, "")

		pdf.Rect(gridLeft, y, 24*hourWidth, rowHeight, "D")
		for h := 1; h < 24; h++ {
			x := gridLeft + float64(h)*hourWidth
			pdf.Line(x, y, x, y+rowHeight)
		}

		pdf.SetXY(totalsLeft, y)
		pdf.CellFormat(20, rowHeight, view.Totals[i].Duration, "1", 0, "C", false, 0, "")
	}
}

func drawSegments(pdf *gofpdf.Fpdf, segs []segment) {
	pdf.SetDrawColor(0, 70, 160)
	pdf.SetLineWidth(0.8)

	var prev *segment
	for i := range segs {
		s := &segs[i]
		y := rowCentre(s.row)
		pdf.Line(hourX(s.from), y, hourX(s.to), y)
		if prev != nil && prev.row != s.row && prev.to == s.from {
			pdf.Line(hourX(s.from), rowCentre(prev.row), hourX(s.from), y)
		}
		prev = s
	}
}

func drawRemarks(pdf *gofpdf.Fpdf, view dayindex.DayView) {
	y := gridTop + float64(len(domain.DutyStatuses))*rowHeight + 8
	pdf.SetXY(10, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Remarks")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 8)
	if len(view.Entries) == 0 {
		pdf.Cell(0, 5, "No entries recorded.")
		return
	}
	for _, e := range view.Entries {
		end := e.End
		if end == "" {
			end = "..."
		}
		line := fmt.Sprintf("%s - %s  %s", e.Start, end, e.StatusLabel)
		if e.Location != "" {
			line += "  " + e.Location
		}
		if e.Remarks != "" {
			line += "  (" + e.Remarks + ")"
		}
		pdf.Cell(0, 4.5, line)
		pdf.Ln(4.5)
	}
}

// segment is one entry's extent on the grid, in hours from local midnight.
type segment struct {
	row      int
	from, to float64
}

// segments places each entry of l on its status row. Open entries run to the
// end of the day; unknown statuses and entries outside the day are skipped.
func segments(l domain.DailyLog, loc *time.Location) []segment {
	d := l.Date.UTC()
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)

	var out []segment
	for _, e := range l.Entries {
		row := statusRow(e.Status)
		if row < 0 {
			continue
		}
		from := clampHours(e.StartTime.Sub(midnight).Hours())
		to := 24.0
		if e.EndTime != nil {
			to = clampHours(e.EndTime.Sub(midnight).Hours())
		}
		if to <= from {
			continue
		}
		out = append(out, segment{row: row, from: from, to: to})
	}
	return out
}

func statusRow(s domain.DutyStatus) int {
	for i, st := range domain.DutyStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

func clampHours(h float64) float64 {
	return min(max(h, 0), 24)
}

func hourX(h float64) float64 {
	return gridLeft + h*hourWidth
}

func rowCentre(row int) float64 {
	return gridTop + float64(row)*rowHeight + rowHeight/2
}

func hourLabel(h int) string {
	switch h {
	case 0, 24:
		return "M"
	case 12:
		return "N"
	default:
		return fmt.Sprint(h % 12)
	}
}

func locationName(l *domain.Location, id int64) string {
	if l != nil && l.Name != "" {
		return l.Name
	}
	if id == 0 {
		return interval.NotAvailable
	}
	return fmt.Sprintf("#%d", id)
}
