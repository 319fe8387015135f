// Package breakdown provides the breakdown tab: rentals split by year,
// season, weather and user type.
package breakdown

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
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

// Model represents the breakdown tab state.
type Model struct {
	state    *app.State
	userBars map[string]components.ShareBar
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new breakdown model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		userBars: map[string]components.ShareBar{
			models.UserTypeCasual:     components.NewShareBar(),
			models.UserTypeRegistered: components.NewShareBar(),
		},
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the breakdown tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the breakdown tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.SummaryLoadedMsg:
		if msg.Error == nil {
			cmds = append(cmds, m.setShares(&msg.Summary))
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	for userType, bar := range m.userBars {
		var cmd tea.Cmd
		m.userBars[userType], cmd = bar.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) setShares(summary *models.Summary) tea.Cmd {
	total := userTypeTotal(summary)

	var cmds []tea.Cmd
	for _, u := range summary.UserTypes {
		bar, ok := m.userBars[u.UserType]
		if !ok {
			continue
		}
		cmds = append(cmds, bar.SetShare(u.Count, total))
		m.userBars[u.UserType] = bar
	}
	return tea.Batch(cmds...)
}

// userTypeTotal sums the user-type table. It equals the grand total for
// consistent data.
func userTypeTotal(summary *models.Summary) int64 {
	if summary == nil {
		return 0
	}
	var total int64
	for _, u := range summary.UserTypes {
		total += u.Count
	}
	return total
}

// SetSize sets the available size for the breakdown tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
