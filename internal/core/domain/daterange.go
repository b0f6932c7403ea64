package domain

import "time"

// DateLayout is the ISO date format used on every external surface.
const DateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] filter on journal dates.
// A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange builds a range from optional bounds, truncating both to dates.
func NewDateRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		s := TruncateDate(*start)
		r.Start = &s
	}
	if end != nil {
		e := TruncateDate(*end)
		r.End = &e
	}
	return r
}

// IsInverted reports whether both bounds are set and Start is after End.
func (r DateRange) IsInverted() bool {
	return r.Start != nil && r.End != nil && r.Start.After(*r.End)
}

// Contains reports whether the date of t lies inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDate(t)
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

// TruncateDate drops the clock part and normalizes to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
