package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// DatasetInfo is the body of GET /api/v1/dataset.
type DatasetInfo struct {
	LoadedAt time.Time          `json:"loaded_at"`
	Import   *models.ImportInfo `json:"import,omitempty"`
	Source   string             `json:"source"`
	MinDate  string             `json:"min_date,omitempty"`
	MaxDate  string             `json:"max_date,omitempty"`
	Rows     int                `json:"rows"`
	YearBase int                `json:"year_base"`
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DatasetInfo describes the loaded dataset.
func (h *Handler) DatasetInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds := h.svc.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, codeInternal, "no dataset loaded", nil)
		return
	}

	info := DatasetInfo{
		Source:   ds.Source(),
		Rows:     ds.Len(),
		LoadedAt: ds.LoadedAt(),
		YearBase: h.yearBase,
	}
	imp, err := h.svc.LastImport(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to read import metadata", err)
		return
	}
	info.Import = imp
	if ds.Len() > 0 {
		info.MinDate = ds.Bounds().Start.Format(models.DateLayout)
		info.MaxDate = ds.Bounds().End.Format(models.DateLayout)
	}
	respondData(w, start, info)
}

// ReloadDataset re-reads the dataset source.
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "dataset reload failed", err)
		return
	}
	h.DatasetInfo(w, r)
}

// Summary returns every table for the requested range.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	summary, ok := h.summarize(w, r)
	if !ok {
		return
	}
	respondData(w, start, summary)
}

// SummaryTable returns a single table for the requested range.
func (h *Handler) SummaryTable(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := chi.URLParam(r, "table")

	pick, found := tables[table]
	if !found {
		respondError(w, http.StatusNotFound, codeNotFound, fmt.Sprintf("unknown table %q", table), nil)
		return
	}

	summary, ok := h.summarize(w, r)
	if !ok {
		return
	}
	respondData(w, start, pick(&summary))
}

// tables maps /summary/{table} names to their slice of the summary.
var tables = map[string]func(*models.Summary) any{
	"daily":   func(s *models.Summary) any { return s.Daily },
	"monthly": func(s *models.Summary) any { return s.Monthly },
	"yearly":  func(s *models.Summary) any { return s.Yearly },
	"seasons": func(s *models.Summary) any { return s.Seasons },
	"weather": func(s *models.Summary) any { return s.Weather },
	"users":   func(s *models.Summary) any { return s.UserTypes },
	"hourly":  func(s *models.Summary) any { return s.Hourly },
}

// summarize parses the range and computes the summary, writing an error
// response and returning false on failure.
func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) (models.Summary, bool) {
	ds := h.svc.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, codeInternal, "no dataset loaded", nil)
		return models.Summary{}, false
	}

	rng, err := parseRange(r, ds.Bounds())
	if err != nil {
		code := codeBadRequest
		if errors.Is(err, models.ErrInvalidRange) {
			code = codeInvalidRange
		}
		respondError(w, http.StatusBadRequest, code, err.Error(), nil)
		return models.Summary{}, false
	}

	summary, err := h.svc.Summary(rng)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRange) {
			respondError(w, http.StatusBadRequest, codeInvalidRange, err.Error(), nil)
			return models.Summary{}, false
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to compute summary", err)
		return models.Summary{}, false
	}
	return summary, true
}

// parseRange reads start and end (YYYY-MM-DD) from the query string.
// Missing values default to the dataset bounds.
func parseRange(r *http.Request, bounds models.DateRange) (models.DateRange, error) {
	rng := bounds
	q := r.URL.Query()

	if s := q.Get("start"); s != "" {
		d, err := models.ParseDay(s)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("start: %w", err)
		}
		rng.Start = d
	}
	if s := q.Get("end"); s != "" {
		d, err := models.ParseDay(s)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("end: %w", err)
		}
		rng.End = d
	}

	if err := rng.Validate(); err != nil {
		return models.DateRange{}, err
	}
	return rng, nil
}
