// Package interval converts timestamp pairs into durations and renders
// durations, dates and times in the fixed en-US shapes used by every
// presentation surface.
//
// Formatting functions render t in its own location; convert with t.In first
// to display in another zone.
package interval

import (
	"fmt"
	"math"
	"time"
)

// NotAvailable is rendered in place of a value that cannot be computed.
const NotAvailable = "N/A"

const (
	dateLayout     = "Mon, Jan 2"
	timeLayout     = "03:04 PM"
	dateTimeLayout = "Jan 2, 2006, 03:04 PM"
)

// DurationHours returns b-a in fractional hours.
// A pair with b before a yields 0: a single malformed interval must not
// poison the totals it feeds.
func DurationHours(a, b time.Time) float64 {
	if b.Before(a) {
		return 0
	}
	return b.Sub(a).Hours()
}

// IsInverted reports whether b precedes a, i.e. DurationHours clamped the pair.
func IsInverted(a, b time.Time) bool {
	return b.Before(a)
}

// FormatDuration renders hours as "{H}h {M}m", rounded to the nearest
// minute with half a minute rounding up. Negative and NaN input render as
// "0h 0m".
func FormatDuration(hours float64) string {
	if math.IsNaN(hours) || hours <= 0 {
		return "0h 0m"
	}
	total := roundHalfUp(hours * 60)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// FormatDistance renders miles rounded to a whole number, e.g. "1500 mi".
func FormatDistance(miles float64) string {
	if math.IsNaN(miles) || miles < 0 {
		miles = 0
	}
	return fmt.Sprintf("%d mi", roundHalfUp(miles))
}

// FormatDate renders t as e.g. "Mon, Jun 2".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatCalendarDate renders a date-only value (midnight UTC) as e.g.
// "Mon, Jun 2" without shifting it into another zone.
func FormatCalendarDate(d time.Time) string {
	return d.UTC().Format(dateLayout)
}

// FormatTime renders t as e.g. "09:05 AM".
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// FormatOptionalTime renders t like FormatTime, or "" when t is nil.
func FormatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

// FormatDateTime renders t as e.g. "Jun 2, 2025, 09:05 AM".
// The zero time renders as NotAvailable.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(dateTimeLayout)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
