// Package models defines data structures and domain types.
package models

import "time"

// User type labels, in the fixed output order of the user-type table.
const (
	UserTypeCasual     = "casual"
	UserTypeRegistered = "registered"
)

// DailyTotal is the rental count for one calendar day.
type DailyTotal struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// MonthlyTotal is the rental count for one (year, month) pair.
type MonthlyTotal struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// YearlyTotal is the rental count for one year code.
type YearlyTotal struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// SeasonTotal is the rental count for one season.
type SeasonTotal struct {
	Season string `json:"season"`
	Count  int64  `json:"count"`
}

// WeatherTotal is the rental count for one weather situation.
type WeatherTotal struct {
	Weather string `json:"weather"`
	Count   int64  `json:"count"`
}

// UserTypeTotal is the rental count for one user category.
type UserTypeTotal struct {
	UserType string `json:"user_type"`
	Count    int64  `json:"count"`
}

// HourlyTotal is the rental count for one hour of the day (0-23).
type HourlyTotal struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// HourlyUserTypeTotal splits one hour of the day by user category.
type HourlyUserTypeTotal struct {
	Hour       int   `json:"hour"`
	Casual     int64 `json:"casual"`
	Registered int64 `json:"registered"`
}

// PeakHour is the busiest hour of the day. OK is false when there is no data.
type PeakHour struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
	OK    bool  `json:"ok"`
}

// Summary bundles every table and metric computed for one date range.
type Summary struct {
	ComputedAt time.Time       `json:"computed_at"`
	Range      DateRange       `json:"range"`
	Daily      []DailyTotal    `json:"daily"`
	Monthly    []MonthlyTotal  `json:"monthly"`
	Yearly     []YearlyTotal   `json:"yearly"`
	Seasons    []SeasonTotal   `json:"seasons"`
	Weather    []WeatherTotal  `json:"weather"`
	UserTypes  []UserTypeTotal `json:"user_types"`
	Hourly     []HourlyTotal   `json:"hourly"`
	PeakHour   PeakHour        `json:"peak_hour"`
	GrandTotal int64           `json:"grand_total"`
	Rows       int             `json:"rows"`
}

// IsEmpty reports whether the filtered selection had no rows.
func (s *Summary) IsEmpty() bool {
	return s == nil || s.Rows == 0
}

// YearCodes returns the distinct year codes in the monthly table, in order.
func (s *Summary) YearCodes() []int {
	if s == nil {
		return nil
	}
	var years []int
	seen := make(map[int]bool)
	for _, m := range s.Monthly {
		if !seen[m.Year] {
			seen[m.Year] = true
			years = append(years, m.Year)
		}
	}
	return years
}

// MonthlySeries returns a 12-slot series (January first) for one year code.
// Months without data are zero.
func (s *Summary) MonthlySeries(year int) []float64 {
	series := make([]float64, 12)
	if s == nil {
		return series
	}
	for _, m := range s.Monthly {
		if m.Year == year && m.Month >= 1 && m.Month <= 12 {
			series[m.Month-1] = float64(m.Count)
		}
	}
	return series
}
