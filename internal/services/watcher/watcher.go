// Package watcher reports debounced changes to a single file.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors and exporters emit
// when rewriting a file.
const DefaultDebounce = 250 * time.Millisecond

// EventType defines the type of watcher event.
type EventType int

const (
	// EventChanged means the file was written or (re)created.
	EventChanged EventType = iota
	// EventError carries an error from the underlying watcher.
	EventError
)

// Event is emitted on the Events channel.
type Event struct {
	Error error
	Path  string
	Type  EventType
}

// Watcher watches one file by watching its parent directory, so atomic
// replace-by-rename is caught as a Create.
type Watcher struct {
	mu            sync.Mutex
	filePath      string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closed        bool
}

// New starts watching path. A debounce of zero uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory (to catch file creation/deletion)
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		filePath:  abs,
		debounce:  debounce,
		watcher:   fw,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	go w.watchLoop()
	logger.Debug("Watching dataset file", "path", abs)
	return w, nil
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.eventChan
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.filePath
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendEvent(Event{Type: EventError, Path: w.filePath, Error: err})

		case <-w.stopChan:
			return
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.sendEvent(Event{Type: EventChanged, Path: w.filePath})
	})
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-w.eventChan:
		default:
		}
		select {
		case w.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	close(w.stopChan)
	return w.watcher.Close()
}
