package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	reloadTimeout       = 30 * time.Second
	importLookupTimeout = 5 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that computes the all-time summary.
func loadInitialData(mgr *services.Manager, yearBase int) tea.Cmd {
	return loadSummaryCmd(mgr, models.RangeAllTime, models.DateRange{}, yearBase)
}

// loadSummaryCmd resolves the preset against the current dataset bounds
// and computes every table. custom is used only for RangeCustom.
func loadSummaryCmd(mgr *services.Manager, preset models.RangePreset, custom models.DateRange, yearBase int) tea.Cmd {
	return func() tea.Msg {
		ds := mgr.Dataset()
		if ds == nil {
			return SummaryLoadedMsg{Error: services.ErrNoDataset, Preset: preset}
		}

		rng := custom
		if preset != models.RangeCustom {
			rng = preset.Resolve(ds.Bounds(), yearBase)
		}

		summary, err := mgr.Summary(rng)
		return SummaryLoadedMsg{
			Summary: summary,
			Preset:  preset,
			Dataset: describeDataset(mgr, ds),
			Error:   err,
		}
	}
}

func describeDataset(mgr *services.Manager, ds *dataset.Dataset) DatasetInfo {
	info := DatasetInfo{
		Source:   ds.Source(),
		Bounds:   ds.Bounds(),
		Rows:     ds.Len(),
		LoadedAt: ds.LoadedAt(),
		Watching: mgr.Watching(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), importLookupTimeout)
	defer cancel()
	imp, err := mgr.LastImport(ctx)
	if err != nil {
		logger.Warn("Failed to read import metadata", "error", err)
	}
	info.Import = imp
	return info
}

// reloadDatasetCmd re-reads the dataset. Success and failure are also
// broadcast as service events, which drive the toasts.
func reloadDatasetCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		return ReloadResultMsg{Error: mgr.Reload(ctx)}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// Commands builds the commands the root model issues against the manager.
type Commands struct {
	manager  *services.Manager
	yearBase int
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager, yearBase int) *Commands {
	return &Commands{manager: mgr, yearBase: yearBase}
}

// LoadSummary returns a command that computes the summary for a preset.
func (c *Commands) LoadSummary(preset models.RangePreset, custom models.DateRange) tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return loadSummaryCmd(c.manager, preset, custom, c.yearBase)
}

// ApplyRange returns a command that asks the root model to switch ranges.
func (c *Commands) ApplyRange(preset models.RangePreset, custom models.DateRange) tea.Cmd {
	return func() tea.Msg {
		return ApplyRangeMsg{Preset: preset, Range: custom}
	}
}

// ReloadDataset returns a command that re-reads the dataset source.
func (c *Commands) ReloadDataset() tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return reloadDatasetCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}
