package info

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

var copyKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return err
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &copied
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	state.SetDataset(app.DatasetInfo{Source: "df_cleaned.csv", Rows: 17379})

	cfg := &config.Config{DatasetPath: "df_cleaned.csv", HTTPAddr: ":8080", YearBase: 2011}
	m := New(state, cfg)
	m.SetSize(100, 80)

	view := m.View()
	for _, want := range []string{"Dataset", "df_cleaned.csv", "17,379", "Configuration", ":8080", "2011", "About Bike Sharing Dashboard"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewImportedDataset(t *testing.T) {
	state := app.NewState()
	state.SetDataset(app.DatasetInfo{
		Source:   "cache.db",
		Rows:     1200,
		Watching: true,
		Import:   &models.ImportInfo{Source: "hour.csv", Rows: 1200, ImportedAt: time.Now().Add(-2 * time.Hour)},
	})

	m := New(state, nil)
	m.SetSize(100, 80)

	view := m.View()
	for _, want := range []string{"Imported From", "hour.csv", "1,200 rows", "2 hours ago", "Watcher"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewWithoutImport(t *testing.T) {
	state := app.NewState()
	state.SetDataset(app.DatasetInfo{Source: "df_cleaned.csv", Rows: 3})

	m := New(state, nil)
	m.SetSize(100, 80)

	if strings.Contains(m.View(), "Imported From") {
		t.Error("CSV datasets have no import row")
	}
}

func TestModel_ViewWithoutData(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(100, 60)

	view := m.View()
	if !strings.Contains(view, "No dataset loaded") {
		t.Error("view should say no dataset is loaded")
	}
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("view should say configuration is missing")
	}
}

func TestModel_CopyDatasetPath(t *testing.T) {
	copied := stubClipboard(t, nil)

	state := app.NewState()
	state.SetDataset(app.DatasetInfo{Source: "/data/df_cleaned.csv"})
	m := New(state, &config.Config{DatasetPath: "ignored.csv"})

	_, cmd := m.Update(copyKey)
	if cmd == nil {
		t.Fatal("copy should return a command")
	}
	add, ok := cmd().(app.AddNotificationMsg)
	if !ok || add.Type != app.NotificationSuccess {
		t.Fatalf("expected a success notification, got %#v", add)
	}
	if *copied != "/data/df_cleaned.csv" {
		t.Errorf("copied %q, want the loaded dataset source", *copied)
	}
}

func TestModel_CopyFallsBackToConfig(t *testing.T) {
	copied := stubClipboard(t, nil)

	m := New(app.NewState(), &config.Config{DatasetPath: "df_cleaned.csv"})
	_, cmd := m.Update(copyKey)
	if cmd == nil {
		t.Fatal("copy should return a command")
	}
	cmd()
	if *copied != "df_cleaned.csv" {
		t.Errorf("copied %q, want the configured path", *copied)
	}
}

func TestModel_CopyError(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard"))

	m := New(app.NewState(), &config.Config{DatasetPath: "df_cleaned.csv"})
	_, cmd := m.Update(copyKey)
	add, ok := cmd().(app.AddNotificationMsg)
	if !ok || add.Type != app.NotificationError {
		t.Errorf("expected an error notification, got %#v", add)
	}
}

func TestModel_CopyWithoutPath(t *testing.T) {
	stubClipboard(t, nil)

	m := New(app.NewState(), nil)
	if _, cmd := m.Update(copyKey); cmd != nil {
		t.Error("nothing to copy, expected nil command")
	}
}

func TestModel_ShowsSelection(t *testing.T) {
	state := app.NewState()
	state.SetSummary(models.Summary{Range: models.DateRange{}}, models.RangeAllTime)

	m := New(state, nil)
	m.SetSize(100, 60)
	if strings.Contains(m.View(), "Selection") {
		t.Error("a zero range should not be listed")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
