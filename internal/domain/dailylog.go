package domain

import "time"

// DutyStatus is the regulatory state recorded by a LogEntry.
// Unknown values are kept verbatim and rendered as-is.
type DutyStatus string

const (
	DutyOffDuty DutyStatus = "off_duty"
	DutySleeper DutyStatus = "sleeper"
	DutyDriving DutyStatus = "driving"
	DutyOnDuty  DutyStatus = "on_duty"
)

// DutyStatuses lists the known statuses in log-sheet row order.
var DutyStatuses = []DutyStatus{DutyOffDuty, DutySleeper, DutyDriving, DutyOnDuty}

// Label is the display name for the status.
func (s DutyStatus) Label() string {
	switch s {
	case DutyOffDuty:
		return "Off Duty"
	case DutySleeper:
		return "Sleeper Berth"
	case DutyDriving:
		return "Driving"
	case DutyOnDuty:
		return "On Duty (Not Driving)"
	default:
		return string(s)
	}
}

// Known reports whether s is one of the four ELD duty statuses.
func (s DutyStatus) Known() bool {
	switch s {
	case DutyOffDuty, DutySleeper, DutyDriving, DutyOnDuty:
		return true
	}
	return false
}

// DailyLog is one calendar day of a driver's record of duty status.
// Date carries only the calendar day, at midnight UTC.
type DailyLog struct {
	ID       int64      `json:"id"`
	TripID   int64      `json:"trip"`
	Date     time.Time  `json:"date"`
	LogImage string     `json:"log_image,omitempty"`
	Entries  []LogEntry `json:"entries"`
}

// LogEntry is a single duty-status interval within a DailyLog.
// EndTime is nil for an entry still open when the log was produced.
type LogEntry struct {
	ID        int64      `json:"id"`
	Status    DutyStatus `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Location  string     `json:"location,omitempty"`
	Remarks   string     `json:"remarks,omitempty"`
}
