// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the canonical day format used for display and parsing.
const DateLayout = "2006-01-02"

// Record is one hourly bucket of bike-sharing activity.
type Record struct {
	Date       time.Time `json:"date"`
	Season     string    `json:"season" validate:"required"`
	Weather    string    `json:"weather" validate:"required"`
	Year       int       `json:"year" validate:"gte=0"`
	Month      int       `json:"month" validate:"gte=1,lte=12"`
	Hour       int       `json:"hour" validate:"gte=0,lte=23"`
	Casual     int64     `json:"casual" validate:"gte=0"`
	Registered int64     `json:"registered" validate:"gte=0"`
	Total      int64     `json:"total" validate:"gte=0"`
}

// Day returns the record date truncated to UTC midnight.
func (r Record) Day() time.Time {
	return TruncateDay(r.Date)
}

// Consistent reports whether the total equals casual plus registered.
func (r Record) Consistent() bool {
	return r.Total == r.Casual+r.Registered
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a UTC day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}

// seasonNames maps the numeric season codes of the UCI bike-sharing dataset.
var seasonNames = map[string]string{
	"1": "Spring",
	"2": "Summer",
	"3": "Fall",
	"4": "Winter",
}

// weatherNames maps the numeric weathersit codes.
var weatherNames = map[string]string{
	"1": "Clear",
	"2": "Mist/Cloudy",
	"3": "Light Rain/Snow",
	"4": "Heavy Rain/Snow",
}

// SeasonLabel returns a display name for a season code. Codes that are
// already labels (pre-cleaned datasets) pass through unchanged.
func SeasonLabel(code string) string {
	if name, ok := seasonNames[code]; ok {
		return name
	}
	return code
}

// WeatherLabel returns a display name for a weather situation code.
func WeatherLabel(code string) string {
	if name, ok := weatherNames[code]; ok {
		return name
	}
	return code
}

// YearLabel turns a year code into a calendar year given the base year.
func YearLabel(code, base int) string {
	return strconv.Itoa(base + code)
}
