// Package aggregate turns filtered rental records into summary tables.
//
// Every function is pure: the input slice is never modified and a new
// slice is returned on each call. Empty input yields empty, non-nil tables.
package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func sumTotal(records []models.Record) int64 {
	return lo.SumBy(records, func(r models.Record) int64 { return r.Total })
}

// DailyTotals sums Total per calendar day, ascending by day.
func DailyTotals(records []models.Record) []models.DailyTotal {
	groups := lo.GroupBy(records, func(r models.Record) time.Time { return r.Day() })

	out := lo.MapToSlice(groups, func(d time.Time, rs []models.Record) models.DailyTotal {
		return models.DailyTotal{Date: d, Count: sumTotal(rs)}
	})
	slices.SortFunc(out, func(a, b models.DailyTotal) int { return a.Date.Compare(b.Date) })
	return out
}

type yearMonth struct {
	year  int
	month int
}

// MonthlyByYearTotals sums Total per (year, month), ordered by year then month.
func MonthlyByYearTotals(records []models.Record) []models.MonthlyTotal {
	groups := lo.GroupBy(records, func(r models.Record) yearMonth {
		return yearMonth{year: r.Year, month: r.Month}
	})

	out := lo.MapToSlice(groups, func(k yearMonth, rs []models.Record) models.MonthlyTotal {
		return models.MonthlyTotal{Year: k.year, Month: k.month, Count: sumTotal(rs)}
	})
	slices.SortFunc(out, func(a, b models.MonthlyTotal) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// YearlyTotals sums Total per year code, descending by count.
func YearlyTotals(records []models.Record) []models.YearlyTotal {
	groups := lo.GroupBy(records, func(r models.Record) int { return r.Year })

	out := lo.MapToSlice(groups, func(y int, rs []models.Record) models.YearlyTotal {
		return models.YearlyTotal{Year: y, Count: sumTotal(rs)}
	})
	slices.SortFunc(out, func(a, b models.YearlyTotal) int {
		return byCountDesc(a.Count, b.Count, cmp.Compare(a.Year, b.Year))
	})
	return out
}

// SeasonalTotals sums Total per season, descending by count.
func SeasonalTotals(records []models.Record) []models.SeasonTotal {
	groups := lo.GroupBy(records, func(r models.Record) string { return r.Season })

	out := lo.MapToSlice(groups, func(s string, rs []models.Record) models.SeasonTotal {
		return models.SeasonTotal{Season: s, Count: sumTotal(rs)}
	})
	slices.SortFunc(out, func(a, b models.SeasonTotal) int {
		return byCountDesc(a.Count, b.Count, cmp.Compare(a.Season, b.Season))
	})
	return out
}

// WeatherTotals sums Total per weather situation, descending by count.
func WeatherTotals(records []models.Record) []models.WeatherTotal {
	groups := lo.GroupBy(records, func(r models.Record) string { return r.Weather })

	out := lo.MapToSlice(groups, func(w string, rs []models.Record) models.WeatherTotal {
		return models.WeatherTotal{Weather: w, Count: sumTotal(rs)}
	})
	slices.SortFunc(out, func(a, b models.WeatherTotal) int {
		return byCountDesc(a.Count, b.Count, cmp.Compare(a.Weather, b.Weather))
	})
	return out
}

// UserTypeTotals returns the casual and registered column sums, in that order.
func UserTypeTotals(records []models.Record) []models.UserTypeTotal {
	return []models.UserTypeTotal{
		{
			UserType: models.UserTypeCasual,
			Count:    lo.SumBy(records, func(r models.Record) int64 { return r.Casual }),
		},
		{
			UserType: models.UserTypeRegistered,
			Count:    lo.SumBy(records, func(r models.Record) int64 { return r.Registered }),
		},
	}
}

// HourlyTotals sums Total per hour of day, ascending by hour.
// Hours with no records are omitted.
func HourlyTotals(records []models.Record) []models.HourlyTotal {
	groups := lo.GroupBy(records, func(r models.Record) int { return r.Hour })

	out := lo.MapToSlice(groups, func(h int, rs []models.Record) models.HourlyTotal {
		return models.HourlyTotal{Hour: h, Count: sumTotal(rs)}
	})
	slices.SortFunc(out, func(a, b models.HourlyTotal) int { return cmp.Compare(a.Hour, b.Hour) })
	return out
}

// HourlyUserTypeTotals sums Casual and Registered per hour of day,
// ascending by hour. Hours with no records are omitted.
func HourlyUserTypeTotals(records []models.Record) []models.HourlyUserTypeTotal {
	groups := lo.GroupBy(records, func(r models.Record) int { return r.Hour })

	out := lo.MapToSlice(groups, func(h int, rs []models.Record) models.HourlyUserTypeTotal {
		return models.HourlyUserTypeTotal{
			Hour:       h,
			Casual:     lo.SumBy(rs, func(r models.Record) int64 { return r.Casual }),
			Registered: lo.SumBy(rs, func(r models.Record) int64 { return r.Registered }),
		}
	})
	slices.SortFunc(out, func(a, b models.HourlyUserTypeTotal) int { return cmp.Compare(a.Hour, b.Hour) })
	return out
}

// GrandTotal sums Total over all records.
func GrandTotal(records []models.Record) int64 {
	return sumTotal(records)
}

// PeakHour returns the hour with the largest count. Ties go to the earliest
// hour. OK is false when hourly is empty.
func PeakHour(hourly []models.HourlyTotal) models.PeakHour {
	var peak models.PeakHour
	for _, h := range hourly {
		if !peak.OK || h.Count > peak.Count || (h.Count == peak.Count && h.Hour < peak.Hour) {
			peak = models.PeakHour{Hour: h.Hour, Count: h.Count, OK: true}
		}
	}
	return peak
}

// Summarize runs every aggregation once over an already filtered selection.
func Summarize(rng models.DateRange, records []models.Record) models.Summary {
	hourly := HourlyTotals(records)
	return models.Summary{
		ComputedAt: time.Now(),
		Range:      rng,
		Rows:       len(records),
		Daily:      DailyTotals(records),
		Monthly:    MonthlyByYearTotals(records),
		Yearly:     YearlyTotals(records),
		Seasons:    SeasonalTotals(records),
		Weather:    WeatherTotals(records),
		UserTypes:  UserTypeTotals(records),
		Hourly:     hourly,
		PeakHour:   PeakHour(hourly),
		GrandTotal: GrandTotal(records),
	}
}

// byCountDesc orders by count descending, falling back to keyCmp on ties.
func byCountDesc(a, b int64, keyCmp int) int {
	if c := cmp.Compare(b, a); c != 0 {
		return c
	}
	return keyCmp
}
