// Package services provides service orchestration for the dashboard.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/aggregate"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services/watcher"
)

type (
	// DatasetReloadedEvent is emitted after the dataset was re-read successfully.
	DatasetReloadedEvent struct {
		Source string
		Bounds models.DateRange
		Rows   int
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Error   error
		Service string
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetReloadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// ErrNoDataset is returned when the manager has no dataset loaded.
var ErrNoDataset = errors.New("no dataset loaded")

// Manager owns the load-once dataset and routes reload events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	dataMu      sync.RWMutex
	cfg         *config.Config
	dataset     *dataset.Dataset
	database    *db.DB
	watcher     *watcher.Watcher
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	notify      func(title, message string) error
	closeOnce   sync.Once
}

// NewManager loads the configured dataset and starts the optional watcher.
// A dataset that fails to load is a fatal error.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
	if cfg.Notify {
		m.notify = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}

	if cfg.DatasetIsDatabase() {
		database, err := db.New(cfg.DatasetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		m.database = database
	}

	ds, err := m.load(context.Background())
	if err != nil {
		if m.database != nil {
			_ = m.database.Close()
		}
		return nil, err
	}
	m.dataset = ds
	logger.Info("Dataset loaded", "source", ds.Source(), "rows", ds.Len(), "bounds", ds.Bounds().String())

	if cfg.WatchDataset && m.database == nil {
		w, err := watcher.New(cfg.DatasetPath, watcher.DefaultDebounce)
		if err != nil {
			// Watching is a convenience; the dashboard still works without it.
			logger.Warn("Dataset watcher disabled", "error", err)
		} else {
			m.watcher = w
		}
	}

	go m.routeEvents()

	return m, nil
}

// load reads the dataset from CSV or from the SQLite cache.
func (m *Manager) load(ctx context.Context) (*dataset.Dataset, error) {
	if m.database == nil {
		return dataset.Load(m.cfg.DatasetPath)
	}

	records, err := m.database.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", dataset.ErrLoad, m.cfg.DatasetPath, err)
	}
	return dataset.New(m.cfg.DatasetPath, records), nil
}

// routeEvents turns watcher events into reloads.
func (m *Manager) routeEvents() {
	var events <-chan watcher.Event
	if m.watcher != nil {
		events = m.watcher.Events()
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			m.handleWatcherEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleWatcherEvent(event watcher.Event) {
	switch event.Type {
	case watcher.EventChanged:
		logger.Info("Dataset file changed", "path", event.Path)
		_ = m.Reload(context.Background())

	case watcher.EventError:
		m.broadcast(ErrorEvent{
			Service: "watcher",
			Error:   event.Error,
		})
	}
}

// Reload re-reads the dataset. On success the new handle replaces the old
// one; on failure the old handle is kept and an ErrorEvent is broadcast.
func (m *Manager) Reload(ctx context.Context) error {
	ds, err := m.load(ctx)
	if err != nil {
		logger.Error("Dataset reload failed", "error", err)
		m.broadcast(ErrorEvent{Service: "dataset", Error: err})
		m.sendNotification("Dataset reload failed", err.Error())
		return err
	}

	m.dataMu.Lock()
	m.dataset = ds
	m.dataMu.Unlock()

	logger.Info("Dataset reloaded", "source", ds.Source(), "rows", ds.Len())
	m.broadcast(DatasetReloadedEvent{
		Source: ds.Source(),
		Rows:   ds.Len(),
		Bounds: ds.Bounds(),
	})
	m.sendNotification("Dataset reloaded", ds.Describe())
	return nil
}

func (m *Manager) sendNotification(title, message string) {
	if m.notify == nil {
		return
	}
	if err := m.notify(title, message); err != nil {
		logger.Debug("Desktop notification failed", "error", err)
	}
}

// Dataset returns the current read-only dataset handle.
func (m *Manager) Dataset() *dataset.Dataset {
	m.dataMu.RLock()
	defer m.dataMu.RUnlock()
	return m.dataset
}

// Summary filters the current dataset to rng and computes every table.
func (m *Manager) Summary(rng models.DateRange) (models.Summary, error) {
	ds := m.Dataset()
	if ds == nil {
		return models.Summary{}, ErrNoDataset
	}

	records, err := ds.Filter(rng)
	if err != nil {
		return models.Summary{}, err
	}
	return aggregate.Summarize(rng, records), nil
}

// HourlyByUserType filters the current dataset to rng and splits the
// hourly pattern by user category.
func (m *Manager) HourlyByUserType(rng models.DateRange) ([]models.HourlyUserTypeTotal, error) {
	ds := m.Dataset()
	if ds == nil {
		return nil, ErrNoDataset
	}

	records, err := ds.Filter(rng)
	if err != nil {
		return nil, err
	}
	return aggregate.HourlyUserTypeTotals(records), nil
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Database returns the SQLite cache when the dataset is loaded from one.
func (m *Manager) Database() *db.DB {
	return m.database
}

// LastImport returns the import that filled the SQLite cache the dataset
// was loaded from. It is nil for CSV datasets and empty caches.
func (m *Manager) LastImport(ctx context.Context) (*models.ImportInfo, error) {
	if m.database == nil {
		return nil, nil
	}
	return m.database.LastImport(ctx)
}

// Watching reports whether the dataset file watcher is running.
func (m *Manager) Watching() bool {
	return m.watcher != nil
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events. It is closed
// by Close.
func (m *Manager) Subscribe() chan ServiceEvent {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

// Close stops the watcher, closes subscriber channels, and releases the cache.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
