// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Summary bool
	Reload  bool
}

// DatasetInfo describes the dataset currently held by the service manager.
type DatasetInfo struct {
	LoadedAt time.Time
	// Import is set when the dataset was read from the SQLite cache.
	Import   *models.ImportInfo
	Source   string
	Bounds   models.DateRange
	Rows     int
	Watching bool
}

// State is the shared application state read by every tab.
type State struct {
	mu sync.RWMutex

	Summary  *models.Summary
	Dataset  DatasetInfo
	Range    models.DateRange
	Preset   models.RangePreset
	YearBase int

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state waiting for its first summary.
func NewState() *State {
	return &State{
		YearBase:      2011,
		Preset:        models.RangeAllTime,
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "summary":
		s.Loading.Summary = loading
	case "reload":
		s.Loading.Reload = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial || s.Loading.Summary || s.Loading.Reload
}

// IsInitialLoading returns true if the first summary has not arrived yet.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, "initial")
	}
	if s.Loading.Summary {
		resources = append(resources, "summary")
	}
	if s.Loading.Reload {
		resources = append(resources, "reload")
	}
	return resources
}

// SetSummary stores the summary for the given range and preset.
func (s *State) SetSummary(summary models.Summary, preset models.RangePreset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Summary = &summary
	s.Range = summary.Range
	s.Preset = preset
	s.LastUpdated = time.Now()
}

// GetSummary returns the current summary, or nil before the first load.
func (s *State) GetSummary() *models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Summary
}

// GetRange returns the selected date range and the preset that produced it.
func (s *State) GetRange() (models.DateRange, models.RangePreset) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Range, s.Preset
}

// SetDataset records the dataset description.
func (s *State) SetDataset(info DatasetInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dataset = info
}

// GetDataset returns the dataset description.
func (s *State) GetDataset() DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Dataset
}

// SetYearBase sets the calendar year that year code 0 maps to.
func (s *State) SetYearBase(base int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.YearBase = base
}

// GetYearBase returns the calendar year of year code 0.
func (s *State) GetYearBase() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.YearBase
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = activeNotifications(s.notifications)
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return activeNotifications(s.notifications)
}

func activeNotifications(all []Notification) []Notification {
	active := make([]Notification, 0, len(all))
	for _, n := range all {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time a summary was stored.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
