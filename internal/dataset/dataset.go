// Package dataset loads the rental table and serves read-only filtered views of it.
package dataset

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

var (
	// ErrLoad wraps every failure to read or parse a dataset.
	ErrLoad = errors.New("failed to load dataset")
	// ErrMissingColumn is returned when a required CSV column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// Dataset is an immutable, load-once table of hourly rental records.
type Dataset struct {
	loadedAt time.Time
	source   string
	records  []models.Record
	bounds   models.DateRange
}

// New builds a Dataset from records. The slice is copied and sorted by
// date, then hour.
func New(source string, records []models.Record) *Dataset {
	rs := slices.Clone(records)
	if rs == nil {
		rs = []models.Record{}
	}
	slices.SortStableFunc(rs, func(a, b models.Record) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})

	d := &Dataset{
		records:  rs,
		source:   source,
		loadedAt: time.Now(),
	}
	if len(rs) > 0 {
		d.bounds = models.DateRange{Start: rs[0].Day(), End: rs[len(rs)-1].Day()}
	}
	return d
}

// Records returns a copy of every record.
func (d *Dataset) Records() []models.Record {
	return slices.Clone(d.records)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Bounds returns the first and last day present. It is zero for an empty dataset.
func (d *Dataset) Bounds() models.DateRange {
	return d.bounds
}

// Source returns the path the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the dataset was built.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Filter returns the records whose day lies in rng, inclusive on both ends.
// A range outside the dataset bounds is legal and yields no records.
func (d *Dataset) Filter(rng models.DateRange) ([]models.Record, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	return lo.Filter(d.records, func(r models.Record, _ int) bool {
		return rng.Contains(r.Date)
	}), nil
}

// Describe returns a short human readable description of the dataset.
func (d *Dataset) Describe() string {
	if d.Len() == 0 {
		return fmt.Sprintf("%s (empty)", d.source)
	}
	return fmt.Sprintf("%s (%d rows, %s)", d.source, d.Len(), d.bounds)
}
