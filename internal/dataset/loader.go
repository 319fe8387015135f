package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

type column int

const (
	colDate column = iota
	colYear
	colMonth
	colHour
	colSeason
	colWeather
	colCasual
	colRegistered
	colTotal
	columnCount
)

// columnAliases lists the accepted header names per column, lower-cased.
var columnAliases = map[column][]string{
	colDate:       {"dteday", "date"},
	colYear:       {"yr", "year"},
	colMonth:      {"mnth", "month"},
	colHour:       {"hr", "hour"},
	colSeason:     {"season"},
	colWeather:    {"weathersit", "weather_situation", "weather"},
	colCasual:     {"casual", "casual_count"},
	colRegistered: {"registered", "registered_count"},
	colTotal:      {"cnt", "total_count", "total"},
}

var optionalColumns = map[column]bool{
	colCasual:     true,
	colRegistered: true,
}

var dateFormats = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Load reads a CSV dataset from path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read parses a CSV dataset with a header row. source is recorded on the
// returned Dataset and used in error messages.
func Read(r io.Reader, source string) (*Dataset, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrLoad, source, err)
	}
	logger.Debug("Dataset parsed", "source", source, "rows", len(records))
	return New(source, records), nil
}

// ReadRecords parses and validates every row of a CSV stream.
func ReadRecords(r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: header row required")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	v, err := newRowValidator()
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, 1024)
	inconsistent := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := v.check(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !rec.Consistent() {
			inconsistent++
		}
		records = append(records, rec)
	}

	if inconsistent > 0 {
		logger.Debug("Rows where total differs from casual+registered", "count", inconsistent)
	}
	return records, nil
}

// mapHeader resolves each known column to its position in the header.
// Missing optional columns map to -1.
func mapHeader(header []string) ([columnCount]int, error) {
	var index [columnCount]int
	for i := range index {
		index[i] = -1
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	for col := range columnCount {
		for _, alias := range columnAliases[col] {
			if pos, ok := positions[alias]; ok {
				index[col] = pos
				break
			}
		}
		if index[col] < 0 && !optionalColumns[col] {
			return index, fmt.Errorf("%w %q", ErrMissingColumn, columnAliases[col][0])
		}
	}
	return index, nil
}

func parseRow(row []string, index [columnCount]int) (models.Record, error) {
	field := func(col column) string {
		pos := index[col]
		if pos < 0 || pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	var rec models.Record
	var err error

	if rec.Date, err = parseDate(field(colDate)); err != nil {
		return rec, err
	}
	if rec.Year, err = parseInt("year", field(colYear)); err != nil {
		return rec, err
	}
	if rec.Month, err = parseMonth(field(colMonth)); err != nil {
		return rec, err
	}
	if rec.Hour, err = parseInt("hour", field(colHour)); err != nil {
		return rec, err
	}
	rec.Season = field(colSeason)
	rec.Weather = field(colWeather)

	if rec.Casual, err = parseCount("casual", field(colCasual)); err != nil {
		return rec, err
	}
	if rec.Registered, err = parseCount("registered", field(colRegistered)); err != nil {
		return rec, err
	}
	if rec.Total, err = parseCount("total", field(colTotal)); err != nil {
		return rec, err
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return models.TruncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed date %q", s)
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		// Some exports write integer columns as floats.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("invalid %s %q", name, s)
		}
		n = int(f)
	}
	return n, nil
}

// parseMonth accepts 1-12 or an English month name ("Jan", "January").
func parseMonth(s string) (int, error) {
	if n, err := parseInt("month", s); err == nil {
		return n, nil
	}
	for _, layout := range []string{"Jan", "January"} {
		if t, err := time.Parse(layout, s); err == nil {
			return int(t.Month()), nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

// parseCount reads a non-negative count. Empty cells count as zero.
func parseCount(name, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := parseInt(name, s)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}
