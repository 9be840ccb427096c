package ordering

import "time"

// DateRange is an inclusive calendar-date window. Either bound may be
// nil, meaning unbounded on that side. A range whose start is after its
// end is valid and matches nothing.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange builds a range from optional bounds, normalizing both to
// midnight so comparisons operate on calendar dates
func NewDateRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		s := truncateToDate(*start)
		r.Start = &s
	}
	if end != nil {
		e := truncateToDate(*end)
		r.End = &e
	}
	return r
}

// LastNDays returns the range covering the n days up to and including
// the reference day
func LastNDays(n int, ref time.Time) DateRange {
	end := truncateToDate(ref)
	start := end.AddDate(0, 0, -(n - 1))
	return DateRange{Start: &start, End: &end}
}

// Contains reports whether the given date falls inside the range,
// bounds included
func (r DateRange) Contains(t time.Time) bool {
	d := truncateToDate(t)
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

// IsEmpty reports whether the range can never match (start after end)
func (r DateRange) IsEmpty() bool {
	return r.Start != nil && r.End != nil && r.Start.After(*r.End)
}
