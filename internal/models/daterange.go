package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a range starts after it ends.
var ErrInvalidRange = errors.New("invalid date range: start is after end")

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a validated range from two days. Times of day are dropped.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: TruncateDay(start), End: TruncateDay(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD strings into a validated range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDay(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

// Validate returns ErrInvalidRange when Start is after End.
func (r DateRange) Validate() error {
	if TruncateDay(r.Start).After(TruncateDay(r.End)) {
		return fmt.Errorf("%w (%s > %s)", ErrInvalidRange,
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether the day of t falls within the range, inclusive.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(TruncateDay(r.Start)) && !d.After(TruncateDay(r.End))
}

// Days returns the number of calendar days covered, inclusive.
func (r DateRange) Days() int {
	if r.Validate() != nil {
		return 0
	}
	return int(TruncateDay(r.End).Sub(TruncateDay(r.Start)).Hours()/24) + 1
}

// Within reports whether the range lies entirely inside bounds.
func (r DateRange) Within(bounds DateRange) bool {
	return !TruncateDay(r.Start).Before(TruncateDay(bounds.Start)) &&
		!TruncateDay(r.End).After(TruncateDay(bounds.End))
}

// String formats the range as "YYYY-MM-DD → YYYY-MM-DD".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + " → " + r.End.Format(DateLayout)
}

// RangePreset is a quick-select date range shown in the range bar.
type RangePreset int

const (
	// RangeAllTime covers the whole dataset.
	RangeAllTime RangePreset = iota
	// RangeFirstYear covers the calendar year of year code 0.
	RangeFirstYear
	// RangeSecondYear covers the calendar year of year code 1.
	RangeSecondYear
	// RangeLast30Days covers the final 30 days of the dataset.
	RangeLast30Days
	// RangeLast7Days covers the final 7 days of the dataset.
	RangeLast7Days
	// RangeCustom is a user-entered range.
	RangeCustom
)

const presetCount = 5

// String returns the display name for a preset. Year presets need the
// base year, see Label.
func (p RangePreset) String() string {
	switch p {
	case RangeAllTime:
		return "All Time"
	case RangeFirstYear:
		return "First Year"
	case RangeSecondYear:
		return "Second Year"
	case RangeLast30Days:
		return "Last 30 Days"
	case RangeLast7Days:
		return "Last 7 Days"
	case RangeCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Label is like String but names year presets by calendar year.
func (p RangePreset) Label(yearBase int) string {
	switch p {
	case RangeFirstYear:
		return YearLabel(0, yearBase)
	case RangeSecondYear:
		return YearLabel(1, yearBase)
	default:
		return p.String()
	}
}

// Next cycles to the next preset. Custom cycles back to All Time.
func (p RangePreset) Next() RangePreset {
	if p < 0 || p >= presetCount {
		return RangeAllTime
	}
	return (p + 1) % presetCount
}

// Resolve turns the preset into a concrete range within the dataset bounds.
// Year presets may produce a range outside the bounds when the dataset does
// not cover that year; filtering such a range yields no rows.
func (p RangePreset) Resolve(bounds DateRange, yearBase int) DateRange {
	switch p {
	case RangeFirstYear, RangeSecondYear:
		year := yearBase + int(p-RangeFirstYear)
		return DateRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	case RangeLast30Days:
		return lastDays(bounds, 30)
	case RangeLast7Days:
		return lastDays(bounds, 7)
	default:
		return bounds
	}
}

func lastDays(bounds DateRange, n int) DateRange {
	end := TruncateDay(bounds.End)
	start := end.AddDate(0, 0, -(n - 1))
	if start.Before(bounds.Start) {
		start = TruncateDay(bounds.Start)
	}
	return DateRange{Start: start, End: end}
}
