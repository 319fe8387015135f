package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func readyModel(mgr *services.Manager) *Model {
	model := NewModel(mgr)
	model.ready = true
	model.width = 100
	model.height = 40
	return model
}

// stubTab records the messages it receives.
type stubTab struct {
	msgs []tea.Msg
}

func (s *stubTab) Init() tea.Cmd { return nil }
func (s *stubTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}
func (s *stubTab) View() string              { return "stub view" }
func (s *stubTab) SetSize(_, _ int)          {}
func (s *stubTab) ShortHelp() []key.Binding  { return nil }
func (s *stubTab) FullHelp() [][]key.Binding { return nil }

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabOverview {
		t.Error("Default tab should be Overview")
	}
	if len(model.tabs) != 4 {
		t.Errorf("Should have 4 tab placeholders, got %d", len(model.tabs))
	}
}

func TestNewModel_YearBaseFromConfig(t *testing.T) {
	mgr := newTestManager(t)
	model := NewModel(mgr)
	if model.state.GetYearBase() != 2011 {
		t.Errorf("YearBase = %d, want 2011", model.state.GetYearBase())
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if model.Init() == nil {
		t.Error("Init returned nil command")
	}
	notifs := model.state.GetNotifications()
	if len(notifs) != 1 || notifs[0].Type != NotificationLoading {
		t.Error("Init should show a loading notification")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}
	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_TabSwitching(t *testing.T) {
	model := readyModel(nil)

	model.Update(TabSwitchMsg{Tab: TabHourly})
	if model.activeTab != TabHourly {
		t.Errorf("ActiveTab = %v, want Hourly", model.activeTab)
	}

	tests := []struct {
		key  rune
		want TabID
	}{
		{'1', TabOverview},
		{'2', TabBreakdown},
		{'3', TabHourly},
		{'4', TabInfo},
	}
	for _, tt := range tests {
		model.Update(runeKey(tt.key))
		if model.activeTab != tt.want {
			t.Errorf("key %q: ActiveTab = %v, want %v", tt.key, model.activeTab, tt.want)
		}
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabOverview {
		t.Errorf("tab from Info should wrap to Overview, got %v", model.activeTab)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.activeTab != TabInfo {
		t.Errorf("shift+tab from Overview should wrap to Info, got %v", model.activeTab)
	}
}

func TestModel_SwitchTabNotifiesTab(t *testing.T) {
	model := readyModel(nil)

	cmd := model.handleKeyMsg(runeKey('3'))
	if cmd == nil {
		t.Fatal("switching tabs should return a command")
	}
	msg, ok := cmd().(TabSwitchMsg)
	if !ok || msg.Tab != TabHourly {
		t.Errorf("cmd() = %#v, want TabSwitchMsg for Hourly", msg)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.ready = true
	model.width = 100
	model.height = 24

	view = model.View()
	for _, name := range []string{"Overview", "Breakdown", "Hourly", "Info"} {
		if !strings.Contains(view, name) {
			t.Errorf("View should show %s tab", name)
		}
	}
	if !strings.Contains(view, "not yet implemented") {
		t.Error("View should show placeholder text")
	}
	if !strings.Contains(view, "Range") {
		t.Error("View should show the range bar")
	}
}

func TestModel_Help(t *testing.T) {
	model := readyModel(nil)

	model.handleKeyMsg(runeKey('?'))
	if !model.showHelp {
		t.Error("showHelp should be true")
	}
	if !strings.Contains(model.View(), "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	model.handleKeyMsg(runeKey('?'))
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}

	model.showHelp = true
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if model.showHelp {
		t.Error("esc should close help")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)
	model.Update(AddNotificationMsg{Message: "Test Note", Type: NotificationInfo})

	if len(model.state.GetNotifications()) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(model.state.GetNotifications()))
	}

	model.ready = true
	model.width = 100
	model.height = 24
	if !strings.Contains(model.View(), "Test Note") {
		t.Error("View should show notification")
	}

	cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should dismiss notifications")
	}
	model.Update(cmd())
	if len(model.state.GetNotifications()) != 0 {
		t.Error("esc should remove every notification")
	}
	if model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc}) != nil {
		t.Error("esc without notifications should do nothing")
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	model := NewModel(nil)

	cmd := model.handleError(ErrorMsg{Error: errors.New("boom"), Context: "Hourly split"})
	add, ok := cmd().(AddNotificationMsg)
	if !ok {
		t.Fatalf("Expected AddNotificationMsg, got %T", cmd())
	}
	if add.Type != NotificationError || add.Message != "Hourly split: boom" {
		t.Errorf("notification = %#v", add)
	}

	add = model.handleError(ErrorMsg{Error: errors.New("boom")})().(AddNotificationMsg)
	if add.Message != "boom" {
		t.Errorf("Message = %q, want boom", add.Message)
	}
}

func TestModel_SummaryLoaded(t *testing.T) {
	model := NewModel(nil)
	model.state.SetLoadingNotification("Loading dataset...")

	rng := models.DateRange{Start: day(2011, 1, 1), End: day(2011, 1, 2)}
	model.Update(SummaryLoadedMsg{
		Summary: models.Summary{Range: rng, GrandTotal: 66, Rows: 3},
		Preset:  models.RangeAllTime,
		Dataset: DatasetInfo{Source: "df_cleaned.csv", Bounds: rng, Rows: 3},
	})

	if model.state.IsInitialLoading() {
		t.Error("initial loading should be cleared")
	}
	if s := model.state.GetSummary(); s == nil || s.GrandTotal != 66 {
		t.Errorf("Summary = %+v", s)
	}
	if model.state.GetDataset().Rows != 3 {
		t.Error("dataset info should be stored")
	}
	if len(model.state.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestModel_SummaryLoaded_ErrorKeepsPrevious(t *testing.T) {
	model := NewModel(nil)
	rng := models.DateRange{Start: day(2011, 1, 1), End: day(2011, 1, 2)}
	model.state.SetSummary(models.Summary{Range: rng, GrandTotal: 66}, models.RangeAllTime)

	cmds := model.handleSummaryLoaded(SummaryLoadedMsg{Error: models.ErrInvalidRange, Preset: models.RangeCustom})
	if len(cmds) != 1 {
		t.Fatalf("expected one notification command, got %d", len(cmds))
	}
	add, ok := cmds[0]().(AddNotificationMsg)
	if !ok || add.Type != NotificationError {
		t.Errorf("expected error notification, got %#v", add)
	}

	gotRange, preset := model.state.GetRange()
	if gotRange != rng || preset != models.RangeAllTime {
		t.Error("previous range should be kept")
	}
	if model.state.GetSummary().GrandTotal != 66 {
		t.Error("previous summary should be kept")
	}
}

func TestModel_CycleRange(t *testing.T) {
	mgr := newTestManager(t)
	model := readyModel(mgr)

	_, cmd := model.Update(runeKey('t'))
	if cmd == nil {
		t.Fatal("t should return a command")
	}

	apply := model.commands.ApplyRange(models.RangeAllTime.Next(), models.DateRange{})().(ApplyRangeMsg)
	if apply.Preset != models.RangeFirstYear {
		t.Errorf("next preset = %v, want First Year", apply.Preset)
	}

	cmds := model.handleApplyRange(apply)
	if len(cmds) != 1 {
		t.Fatalf("expected a summary command, got %d", len(cmds))
	}
	if !model.state.Loading.Summary {
		t.Error("summary loading should be set")
	}

	loaded := cmds[0]().(SummaryLoadedMsg)
	model.Update(loaded)

	gotRange, preset := model.state.GetRange()
	if preset != models.RangeFirstYear {
		t.Errorf("preset = %v, want First Year", preset)
	}
	if !gotRange.Start.Equal(day(2011, 1, 1)) || !gotRange.End.Equal(day(2011, 12, 31)) {
		t.Errorf("range = %v, want calendar year 2011", gotRange)
	}
	if model.state.GetSummary().GrandTotal != 66 {
		t.Errorf("GrandTotal = %d, want 66", model.state.GetSummary().GrandTotal)
	}
	if model.state.Loading.Summary {
		t.Error("summary loading should be cleared")
	}
}

func TestModel_RangeForm(t *testing.T) {
	model := readyModel(nil)
	bounds := models.DateRange{Start: day(2011, 1, 1), End: day(2012, 12, 31)}
	model.state.SetDataset(DatasetInfo{Bounds: bounds})
	stub := &stubTab{}
	model.SetTabs([]Tab{stub, nil, nil, nil})

	model.Update(runeKey('f'))
	if !model.rangeForm.Active() {
		t.Fatal("f should open the range form")
	}
	if !strings.Contains(model.View(), "Custom date range") {
		t.Error("View should show the range form")
	}

	// Keys go to the form, not to tab switching or the tab.
	received := len(stub.msgs)
	model.Update(runeKey('2'))
	if model.activeTab != TabOverview {
		t.Error("digits should not switch tabs while the form is open")
	}
	if len(stub.msgs) != received {
		t.Error("keys should not reach the tab while the form is open")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.rangeForm.Active() {
		t.Error("esc should close the form")
	}
}

func TestModel_RangeForm_Submit(t *testing.T) {
	model := readyModel(nil)
	bounds := models.DateRange{Start: day(2011, 1, 1), End: day(2012, 12, 31)}
	model.state.SetDataset(DatasetInfo{Bounds: bounds})
	model.Update(runeKey('f'))

	model.rangeForm.SetValues("2011-03-01", "2011-03-31")
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.rangeForm.Active() {
		t.Error("a valid range should close the form")
	}
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	apply, ok := cmd().(ApplyRangeMsg)
	if !ok {
		t.Fatalf("expected ApplyRangeMsg, got %T", cmd())
	}
	if apply.Preset != models.RangeCustom || !apply.Range.Start.Equal(day(2011, 3, 1)) {
		t.Errorf("ApplyRangeMsg = %+v", apply)
	}
}

func TestModel_RangeForm_SubmitInvalid(t *testing.T) {
	model := readyModel(nil)
	bounds := models.DateRange{Start: day(2011, 1, 1), End: day(2012, 12, 31)}
	model.state.SetDataset(DatasetInfo{Bounds: bounds})
	model.Update(runeKey('f'))

	model.rangeForm.SetValues("2011-03-31", "2011-03-01")
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !model.rangeForm.Active() {
		t.Error("an inverted range should keep the form open")
	}
	if !errors.Is(model.rangeForm.Err(), models.ErrInvalidRange) {
		t.Errorf("form error = %v, want ErrInvalidRange", model.rangeForm.Err())
	}
	add, ok := cmd().(AddNotificationMsg)
	if !ok || add.Type != NotificationError {
		t.Error("an invalid range should raise an error toast")
	}
	if !strings.Contains(model.View(), "invalid date range") {
		t.Error("the form should show the validation error")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	cmd := model.handleServiceEvent(services.ErrorEvent{Service: "dataset", Error: errors.New("boom")})
	if cmd == nil {
		t.Fatal("Error event should trigger notification command")
	}
	add, ok := cmd().(AddNotificationMsg)
	if !ok || !strings.Contains(add.Message, "[dataset] boom") {
		t.Errorf("notification = %#v", add)
	}

	if model.handleServiceEvent(services.DatasetReloadedEvent{Rows: 3}) == nil {
		t.Error("reload event should trigger a notification")
	}
}

func TestModel_ServiceEventRecomputes(t *testing.T) {
	mgr := newTestManager(t)
	model := readyModel(mgr)

	cmds := model.handleServiceEventMsg(ServiceEventMsg{Event: services.DatasetReloadedEvent{Rows: 3}})
	if len(cmds) != 1 {
		t.Fatalf("expected one batched command without a subscription, got %d", len(cmds))
	}
}

func TestModel_Loading(t *testing.T) {
	model := NewModel(nil)

	model.Update(StartLoadingMsg{Resource: "reload"})
	if !model.state.Loading.Reload {
		t.Error("Loading.Reload should be true")
	}

	model.Update(ReloadResultMsg{})
	if model.state.Loading.Reload {
		t.Error("ReloadResultMsg should clear Loading.Reload")
	}

	model.Update(StartLoadingMsg{Resource: "summary"})
	model.Update(StopLoadingMsg{Resource: "summary"})
	if model.state.Loading.Summary {
		t.Error("Loading.Summary should be false")
	}

	// Without a manager refreshes are no-ops.
	model.Update(RefreshMsg{Resource: "dataset"})
	model.Update(RefreshMsg{Resource: "summary"})
	model.Update(ErrorMsg{Error: errors.New("x")})
	model.Update(RemoveNotificationMsg{ID: "nonexistent"})
}

func TestModel_ReloadKey(t *testing.T) {
	mgr := newTestManager(t)
	model := readyModel(mgr)

	cmd := model.handleKeyMsg(runeKey('r'))
	if cmd == nil {
		t.Fatal("r should return a command")
	}
	refresh, ok := cmd().(RefreshMsg)
	if !ok || refresh.Resource != "dataset" {
		t.Fatalf("expected dataset RefreshMsg, got %#v", refresh)
	}

	cmds := model.handleRefresh(refresh)
	if len(cmds) != 2 {
		t.Fatalf("expected loading and reload commands, got %d", len(cmds))
	}
	if _, ok := cmds[1]().(ReloadResultMsg); !ok {
		t.Error("second command should reload the dataset")
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabOverview, "Overview"},
		{TabBreakdown, "Breakdown"},
		{TabHourly, "Hourly"},
		{TabInfo, "Info"},
		{TabID(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
	if !key.Matches(runeKey('t'), km.CycleRange) || !key.Matches(runeKey('f'), km.CustomRange) {
		t.Error("range keys should be bound to t and f")
	}
}
