package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	if s.View() == "" {
		t.Error("View returned empty")
	}
	if !strings.Contains(s.ViewWithLabel(), "Loading") {
		t.Error("ViewWithLabel should include the label")
	}

	if s.Init() == nil {
		t.Error("Init should return command")
	}

	_, cmd := s.Update(s.Spinner().Tick())
	if cmd == nil {
		t.Error("Update should return command for tick")
	}

	if s.Tick() == nil {
		t.Error("Tick should return command")
	}
	if s.Spinner().Spinner.Frames == nil {
		t.Error("Spinner accessor failed")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if !strings.Contains(view, "Loading...") {
		t.Error("RenderSpinnerCentered should include the label")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{985, "985"},
		{3292679, "3,292,679"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRenderLineChart(t *testing.T) {
	s := RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Test")
	if !strings.Contains(s, "Test") {
		t.Error("RenderLineChart should include the caption")
	}

	if got := RenderLineChart(nil, 20, 5, "Test"); !strings.Contains(got, NoDataMessage) {
		t.Errorf("empty data = %q, want no-data message", got)
	}
}

func TestRenderMultiLineChart(t *testing.T) {
	s := RenderMultiLineChart([][]float64{{1, 2, 3}, {3, 2}}, 20, 5, "Title")
	if !strings.Contains(s, "Title") {
		t.Error("RenderMultiLineChart should include the caption")
	}

	if got := RenderMultiLineChart(nil, 20, 5, "Title"); !strings.Contains(got, NoDataMessage) {
		t.Errorf("no series = %q, want no-data message", got)
	}
	if got := RenderMultiLineChart([][]float64{{}, {}}, 20, 5, "Title"); !strings.Contains(got, NoDataMessage) {
		t.Errorf("empty series = %q, want no-data message", got)
	}
}

func TestSeriesLegend(t *testing.T) {
	s := SeriesLegend([]string{"2011", "2012"})
	if !strings.Contains(s, "2011") || !strings.Contains(s, "2012") {
		t.Errorf("SeriesLegend = %q, want both labels", s)
	}
}

func TestRenderBarChart(t *testing.T) {
	bars := []Bar{
		{Label: "Fall", Count: 1061129},
		{Label: "Spring", Count: 471348},
	}
	s := RenderBarChart(bars, 60)

	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "1,061,129") || !strings.Contains(lines[1], "471,348") {
		t.Errorf("counts missing from %q", s)
	}
	if !strings.Contains(lines[0], "69.2%") {
		t.Errorf("share missing from %q", lines[0])
	}

	if got := RenderBarChart(nil, 60); !strings.Contains(got, NoDataMessage) {
		t.Errorf("empty bars = %q, want no-data message", got)
	}
}

func TestRenderBarChart_AllZero(t *testing.T) {
	s := RenderBarChart([]Bar{{Label: "Clear", Count: 0}}, 40)
	if !strings.Contains(s, "0.0%") {
		t.Errorf("zero counts should render a 0%% share, got %q", s)
	}
}

func TestHourlySlots(t *testing.T) {
	slots := HourlySlots([]int{0, 17, 25, -1}, []int64{16, 40, 99, 99})
	if len(slots) != 24 {
		t.Fatalf("len = %d, want 24", len(slots))
	}
	if slots[0] != 16 || slots[17] != 40 {
		t.Errorf("slots[0]=%v slots[17]=%v, want 16 and 40", slots[0], slots[17])
	}
	if slots[5] != 0 {
		t.Errorf("missing hours should be zero, got %v", slots[5])
	}
}

func TestRenderHourlyHeatmap(t *testing.T) {
	s := RenderHourlyHeatmap(make([]float64, 24))
	if !strings.HasPrefix(s, "00 ") || !strings.HasSuffix(s, " 23") {
		t.Errorf("heatmap should be framed by hour labels, got %q", s)
	}

	// Short input is padded rather than rejected.
	if RenderHourlyHeatmap([]float64{1, 2}) == "" {
		t.Error("RenderHourlyHeatmap returned empty for short input")
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{1, 2, 3}, 10)
	if s == "" {
		t.Error("RenderSparkline returned empty")
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("RenderSparkline should be empty without values")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
	}
	if !strings.Contains(RenderLegend(items), "A") {
		t.Error("RenderLegend should include the label")
	}
}

func TestShareBar(t *testing.T) {
	bar := NewShareBar()

	cmd := bar.SetShare(25, 100)
	if cmd == nil {
		t.Fatal("SetShare should start the animation")
	}
	if bar.SetShare(30, 100) != nil {
		t.Error("SetShare while animating should not start a second tick")
	}

	for range 200 {
		bar, _ = bar.Update(AnimationTickMsg{})
	}
	if bar.Percent() != 30 {
		t.Errorf("Percent = %v, want 30 after the animation settles", bar.Percent())
	}

	view := bar.View("Casual", 30, 100, 80)
	if !strings.Contains(view, "Casual") || !strings.Contains(view, "30.0%") {
		t.Errorf("View = %q, want label and share", view)
	}
}

func TestShareBar_ZeroTotal(t *testing.T) {
	bar := NewShareBar()
	if bar.SetShare(0, 0) == nil {
		t.Error("SetShare should return the animation tick")
	}
	if !strings.Contains(bar.View("Casual", 0, 0, 60), "0.0%") {
		t.Error("zero total should render a 0% share")
	}
}

func TestRenderGradientBar(t *testing.T) {
	if RenderGradientBar(50, 0) != "" {
		t.Error("zero width should render nothing")
	}
	s := RenderGradientBar(50, 10)
	if strings.Count(s, "█") != 5 || strings.Count(s, "░") != 5 {
		t.Errorf("half bar = %q, want 5 filled and 5 empty cells", s)
	}
	if strings.Count(RenderGradientBar(150, 4), "█") != 4 {
		t.Error("percent over 100 should clamp to full")
	}
}

func TestInterpolateColor(t *testing.T) {
	if got := interpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("t=0: %s", got)
	}
	if got := interpolateColor("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("t=1: %s", got)
	}
	if got := hexToRGB("zz"); got != [3]int{0, 0, 0} {
		t.Errorf("invalid hex = %v, want black", got)
	}
}
