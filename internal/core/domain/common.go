package domain

import "time"

const (
	// DateLayout is the calendar date format used across all persisted records.
	DateLayout = "2006-01-02"
	// TimestampLayout is the creation/update timestamp format. Timestamps are
	// naive local wall-clock values; there is no timezone field.
	TimestampLayout = "2006-01-02 15:04:05"
)

// AuditFields holds creation and last-update attribution, embedded by records.
type AuditFields struct {
	CreatedAt     string `json:"createdAt"`
	CreatedBy     string `json:"createdBy"`
	LastUpdatedAt string `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy string `json:"lastUpdatedBy,omitempty"`
}

// NewAuditFields stamps fresh audit fields for a record created now by actor.
func NewAuditFields(now time.Time, actor string) AuditFields {
	ts := now.Format(TimestampLayout)
	return AuditFields{
		CreatedAt:     ts,
		CreatedBy:     actor,
		LastUpdatedAt: ts,
		LastUpdatedBy: actor,
	}
}

// Touch records a mutation by actor at now.
func (a *AuditFields) Touch(now time.Time, actor string) {
	a.LastUpdatedAt = now.Format(TimestampLayout)
	a.LastUpdatedBy = actor
}

// ParseDate parses a calendar date in the fixed YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// ValidDate reports whether s is a parseable calendar date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
