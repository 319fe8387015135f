// Package httpapi serves dashboard summaries over HTTP as JSON.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// SummaryService is the part of the service manager the API needs.
type SummaryService interface {
	Dataset() *dataset.Dataset
	Summary(rng models.DateRange) (models.Summary, error)
	Reload(ctx context.Context) error
	LastImport(ctx context.Context) (*models.ImportInfo, error)
}

// Handler holds the dependencies of the API handlers.
type Handler struct {
	svc      SummaryService
	yearBase int
}

// NewHandler creates the API handlers. yearBase is reported with the
// dataset so clients can label year codes.
func NewHandler(svc SummaryService, yearBase int) *Handler {
	return &Handler{svc: svc, yearBase: yearBase}
}

// NewRouter configures all HTTP routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dataset", h.DatasetInfo)
		r.Post("/dataset/reload", h.ReloadDataset)
		r.Get("/summary", h.Summary)
		r.Get("/summary/{table}", h.SummaryTable)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, codeNotFound, "route not found", nil)
	})

	return r
}
