// Package hourly provides the hourly tab: the time-of-day rental pattern
// for the selected range.
package hourly

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

// keyMap defines the key bindings specific to the hourly tab.
type keyMap struct {
	Split key.Binding
	Up    key.Binding
	Down  key.Binding
}

// defaultKeyMap returns the default key bindings for the hourly tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Split: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "split by user type"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

var errServicesMissing = errors.New("services not initialized")

// splitLoadedMsg carries the user-type split for one summary.
type splitLoadedMsg struct {
	computedAt time.Time
	data       []models.HourlyUserTypeTotal
}

// splitErrorMsg is sent when the split cannot be computed.
type splitErrorMsg struct {
	err error
}

// Model represents the hourly tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	// User-type split, computed on demand.
	split     bool
	splitFor  time.Time
	splitData []models.HourlyUserTypeTotal
	loading   bool
	errorMsg  string
}

// New creates a new hourly model. svc may be nil, which disables the
// user-type split.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the hourly tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) loadSplitCmd(summary *models.Summary) tea.Cmd {
	svc := m.services
	rng, computedAt := summary.Range, summary.ComputedAt
	return func() tea.Msg {
		if svc == nil {
			return splitErrorMsg{err: errServicesMissing}
		}
		data, err := svc.HourlyByUserType(rng)
		if err != nil {
			return splitErrorMsg{err: err}
		}
		return splitLoadedMsg{computedAt: computedAt, data: data}
	}
}

// Update handles messages for the hourly tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case splitLoadedMsg:
		m.loading = false
		m.errorMsg = ""
		// The selection changed while the split was computing.
		if summary := m.state.GetSummary(); summary == nil || !summary.ComputedAt.Equal(msg.computedAt) {
			cmds = append(cmds, m.refreshSplit())
			break
		}
		m.splitFor = msg.computedAt
		m.splitData = msg.data

	case splitErrorMsg:
		m.loading = false
		m.errorMsg = msg.err.Error()
		cmds = append(cmds, func() tea.Msg {
			return app.ErrorMsg{Error: msg.err, Context: "Hourly split"}
		})

	case app.SummaryLoadedMsg, app.TabSwitchMsg:
		cmds = append(cmds, m.refreshSplit())

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Split) {
			m.split = !m.split
			cmds = append(cmds, m.refreshSplit())
			break
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refreshSplit loads the split when it is shown and older than the
// current summary.
func (m *Model) refreshSplit() tea.Cmd {
	if !m.split || m.loading {
		return nil
	}
	summary := m.state.GetSummary()
	if summary.IsEmpty() || m.splitCurrent(summary) {
		return nil
	}
	m.loading = true
	return m.loadSplitCmd(summary)
}

// splitCurrent reports whether the stored split belongs to summary.
func (m *Model) splitCurrent(summary *models.Summary) bool {
	return m.splitData != nil && summary != nil && m.splitFor.Equal(summary.ComputedAt)
}

// SetSize sets the available size for the hourly tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Split}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Split},
		{m.keys.Up, m.keys.Down},
	}
}
