package overview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2011, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSummary() models.Summary {
	return models.Summary{
		Range: models.DateRange{Start: day(1, 1), End: day(1, 3)},
		Daily: []models.DailyTotal{
			{Date: day(1, 1), Count: 985},
			{Date: day(1, 2), Count: 801},
			{Date: day(1, 3), Count: 1349},
		},
		Monthly: []models.MonthlyTotal{
			{Year: 0, Month: 1, Count: 3135},
		},
		PeakHour:   models.PeakHour{Hour: 17, Count: 412, OK: true},
		GrandTotal: 3135,
		Rows:       69,
	}
}

func readyState(summary models.Summary) *app.State {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSummary(summary, models.RangeAllTime)
	return state
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init should start the loading spinner")
	}
}

func TestModel_ViewLoading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "Loading dataset...") {
		t.Error("initial view should show the loading spinner")
	}
}

func TestModel_ViewWithData(t *testing.T) {
	m := New(readyState(sampleSummary()))
	m.SetSize(120, 80)

	view := m.View()
	for _, want := range []string{"Total rentals", "3,135", "17:00 (412)", "Daily Trend", "Monthly Rentals by Year", "2011"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewEmpty(t *testing.T) {
	m := New(readyState(models.Summary{}))
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), components.NoDataMessage) {
		t.Error("empty selection should show the no-data message")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(readyState(sampleSummary()))
	m.SetSize(80, 10)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	if updated == nil {
		t.Fatal("Update returned nil model")
	}
	updated, _ = updated.Update(app.SummaryLoadedMsg{})
	if updated.(*Model).viewport.YOffset != 0 {
		t.Error("a new summary should scroll back to the top")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
