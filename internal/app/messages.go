package app

import (
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SummaryLoadedMsg carries a freshly computed summary.
// Error is set when the range was rejected; the previous summary stays.
type SummaryLoadedMsg struct {
	Error   error
	Dataset DatasetInfo
	Summary models.Summary
	Preset  models.RangePreset
}

// ApplyRangeMsg requests recomputing every table for a new range.
// Range is only read when Preset is RangeCustom.
type ApplyRangeMsg struct {
	Range  models.DateRange
	Preset models.RangePreset
}

// ReloadResultMsg reports the outcome of a manual dataset reload.
type ReloadResultMsg struct {
	Error error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "summary", "dataset"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg reports an error raised by a tab. Context prefixes the toast.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}
