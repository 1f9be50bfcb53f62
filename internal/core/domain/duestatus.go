package domain

import "time"

// DueStatus classifies how an entry's due date relates to a reference date.
// It is derived state: recomputed from the due date, never authoritative in
// the persisted file once the entry is settled.
type DueStatus string

const (
	DueOverdue     DueStatus = "overdue"
	DueToday       DueStatus = "due_today"
	DueSoon        DueStatus = "due_soon" // within the next 7 days
	DueOnTime      DueStatus = "on_time"
	DueInvalidDate DueStatus = "invalid_date"
	// Terminal overrides, set when the entry is settled.
	DuePaid     DueStatus = "paid"
	DueReceived DueStatus = "received"
)

// dueSoonWindowDays is the inclusive upper bound of the due_soon window.
const dueSoonWindowDays = 7

// ResolveDueStatus maps a due date and a reference date to a DueStatus.
// It is total: an unparseable due date yields DueInvalidDate, never an error.
// The day difference is counted in whole calendar days.
func ResolveDueStatus(dueDate string, ref time.Time) DueStatus {
	due, err := ParseDate(dueDate)
	if err != nil {
		return DueInvalidDate
	}
	days := daysBetween(ref, due)
	switch {
	case days < 0:
		return DueOverdue
	case days == 0:
		return DueToday
	case days <= dueSoonWindowDays:
		return DueSoon
	default:
		return DueOnTime
	}
}

// daysBetween returns to-minus-from in whole calendar days, ignoring the
// time-of-day component. Both dates are normalized to UTC midnight so DST
// transitions cannot skew the count.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
