package domain

// ExportRow is a single row in the duty-status export.
// It is a flat, denormalized view: one row per log entry, with trip and day
// fields repeated for every entry on that day. Days with no entries yield one
// row with empty entry fields.
type ExportRow struct {
	TripID     int64  `csv:"trip_id" json:"trip_id"`
	TripStatus string `csv:"trip_status" json:"trip_status"`
	LogDate    string `csv:"log_date" json:"log_date"` // 2006-01-02

	// Times are RFC 3339 in UTC; EndTime is empty for an open entry.
	Status      string  `csv:"status" json:"status"`
	StatusLabel string  `csv:"status_label" json:"status_label"`
	StartTime   string  `csv:"start_time" json:"start_time"`
	EndTime     string  `csv:"end_time" json:"end_time"`
	Hours       float64 `csv:"hours" json:"hours"`
	Location    string  `csv:"location" json:"location"`
	Remarks     string  `csv:"remarks" json:"remarks"`
}
