package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/aggregate"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

var timeFormats = []string{
	sqlTimestampFormat,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 +0000 UTC",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReplaceRecords replaces every cached rental with records and logs an
// import row, all in one transaction.
func (db *DB) ReplaceRecords(ctx context.Context, source string, records []models.Record) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM rentals"); err != nil {
		return fmt.Errorf("failed to clear rentals: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rentals (
			date, year, month, hour, season, weather, casual, registered, total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err = stmt.ExecContext(ctx,
			r.Date.Format(sqlDateFormat),
			r.Year,
			r.Month,
			r.Hour,
			r.Season,
			r.Weather,
			r.Casual,
			r.Registered,
			r.Total,
		); err != nil {
			return fmt.Errorf("failed to insert rental: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO imports (source, row_count, imported_at) VALUES (?, ?, ?)",
		source, len(records), time.Now().UTC().Format(sqlTimestampFormat),
	); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	logger.Info("Imported rentals", "source", source, "rows", len(records))
	return nil
}

// LoadRecords returns every cached rental ordered by date, then hour.
func (db *DB) LoadRecords(ctx context.Context) ([]models.Record, error) {
	query := `
		SELECT date, year, month, hour, season, weather, casual, registered, total
		FROM rentals
		ORDER BY date, hour, id
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []models.Record{}
	for rows.Next() {
		var r models.Record
		var date string
		if err := rows.Scan(
			&date,
			&r.Year,
			&r.Month,
			&r.Hour,
			&r.Season,
			&r.Weather,
			&r.Casual,
			&r.Registered,
			&r.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rental: %w", err)
		}

		d, err := time.Parse(sqlDateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("invalid rental date %q: %w", date, err)
		}
		r.Date = models.TruncateDay(d)
		records = append(records, r)
	}

	return records, rows.Err()
}

// LastImport returns the most recent import, or nil when the cache is empty.
func (db *DB) LastImport(ctx context.Context) (*models.ImportInfo, error) {
	query := `
		SELECT id, source, row_count, imported_at
		FROM imports
		ORDER BY id DESC
		LIMIT 1
	`

	var info models.ImportInfo
	var importedAt string
	err := db.QueryRowContext(ctx, query).Scan(&info.ID, &info.Source, &info.Rows, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last import: %w", err)
	}

	if t, ok := parseTimeString(importedAt); ok {
		info.ImportedAt = t
	}
	return &info, nil
}

// DailyTotals sums rentals per day inside rng, ascending by day.
func (db *DB) DailyTotals(ctx context.Context, rng models.DateRange) ([]models.DailyTotal, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT date, SUM(total) AS count
		FROM rentals
		WHERE ` + sqlDateRangeClause + `
		GROUP BY date
		ORDER BY date
	`

	rows, err := db.QueryContext(ctx, query,
		rng.Start.Format(sqlDateFormat),
		rng.End.Format(sqlDateFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := []models.DailyTotal{}
	for rows.Next() {
		var date string
		var t models.DailyTotal
		if err := rows.Scan(&date, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		d, err := time.Parse(sqlDateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("invalid rental date %q: %w", date, err)
		}
		t.Date = models.TruncateDay(d)
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// CountRecords returns the number of cached rentals.
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rentals").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rentals: %w", err)
	}
	return n, nil
}

// ErrVerify is returned when the cache does not match the imported records.
var ErrVerify = errors.New("cache verification failed")

// VerifyImport checks the cache against records: the row count and the
// daily totals computed in SQL must match the in-memory aggregation. It
// returns the number of days compared.
func (db *DB) VerifyImport(ctx context.Context, records []models.Record) (int, error) {
	n, err := db.CountRecords(ctx)
	if err != nil {
		return 0, err
	}
	if n != len(records) {
		return 0, fmt.Errorf("%w: cache holds %d rows, expected %d", ErrVerify, n, len(records))
	}

	want := aggregate.DailyTotals(records)
	if len(want) == 0 {
		return 0, nil
	}

	rng := models.DateRange{Start: want[0].Date, End: want[len(want)-1].Date}
	got, err := db.DailyTotals(ctx, rng)
	if err != nil {
		return 0, err
	}

	equal := slices.EqualFunc(got, want, func(a, b models.DailyTotal) bool {
		return a.Date.Equal(b.Date) && a.Count == b.Count
	})
	if !equal {
		return 0, fmt.Errorf("%w: SQL daily totals (%d days) differ from in-memory totals (%d days)",
			ErrVerify, len(got), len(want))
	}
	return len(want), nil
}
