// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// NoDataMessage is shown in place of a chart when the selection is empty.
const NoDataMessage = "No data for selected range"

// seriesColor pairs an asciigraph color with the matching terminal color
// used for the legend.
type seriesColor struct {
	graph  asciigraph.AnsiColor
	legend lipgloss.Color
}

var seriesPalette = []seriesColor{
	{asciigraph.Blue, lipgloss.Color("12")},
	{asciigraph.Red, lipgloss.Color("9")},
	{asciigraph.Green, lipgloss.Color("2")},
	{asciigraph.Yellow, lipgloss.Color("11")},
	{asciigraph.Magenta, lipgloss.Color("13")},
	{asciigraph.Cyan, lipgloss.Color("14")},
}

// Bar is one labelled row of a bar chart.
type Bar struct {
	Label string
	Count int64
}

// FormatCount renders a rental count with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

func clampChartSize(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(NoDataMessage)
	}

	width, height = clampChartSize(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// RenderMultiLineChart plots several series on shared axes. Shorter
// series are padded with zeros.
func RenderMultiLineChart(series [][]float64, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s))
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render(NoDataMessage)
	}

	width, height = clampChartSize(width, height)

	padded := make([][]float64, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		padded[i] = make([]float64, maxLen)
		copy(padded[i], s)
		colors[i] = seriesPalette[i%len(seriesPalette)].graph
	}

	return asciigraph.PlotMany(padded,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// SeriesLegend builds a legend whose colors match RenderMultiLineChart.
func SeriesLegend(labels []string) string {
	items := make([]LegendItem, len(labels))
	for i, l := range labels {
		items[i] = LegendItem{Label: l, Color: seriesPalette[i%len(seriesPalette)].legend}
	}
	return RenderLegend(items)
}

// RenderBarChart creates a horizontal bar chart with counts and shares.
func RenderBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return styles.HelpStyle.Render(NoDataMessage)
	}

	var maxVal, total int64
	maxLabelLen := 0
	maxValueLen := 0
	for _, b := range bars {
		maxVal = max(maxVal, b.Count)
		total += b.Count
		maxLabelLen = max(maxLabelLen, lipgloss.Width(b.Label))
		maxValueLen = max(maxValueLen, len(FormatCount(b.Count)))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// label, separator, value and share column
	barWidth := max(width-maxLabelLen-maxValueLen-12, 10)

	var lines []string
	for _, b := range bars {
		label := fmt.Sprintf("%*s", maxLabelLen, b.Label)
		filled := float64(b.Count) / float64(maxVal) * 100

		share := 0.0
		if total > 0 {
			share = float64(b.Count) / float64(total)
		}
		shareStr := styles.GetShareStyle(share).Render(fmt.Sprintf("%5.1f%%", share*100))

		lines = append(lines, fmt.Sprintf("%s │%s %*s %s",
			label, RenderGradientBar(filled, barWidth), maxValueLen, FormatCount(b.Count), shareStr))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// HourlySlots expands sparse hour counts into a 24-slot series. Hours
// without data are zero.
func HourlySlots(hours []int, counts []int64) []float64 {
	slots := make([]float64, 24)
	for i, h := range hours {
		if h >= 0 && h < 24 && i < len(counts) {
			slots[h] = float64(counts[i])
		}
	}
	return slots
}

// RenderHourlyHeatmap creates a 24-hour activity heatmap.
func RenderHourlyHeatmap(patterns []float64) string {
	if len(patterns) != 24 {
		padded := make([]float64, 24)
		copy(padded, patterns)
		patterns = padded
	}

	maxVal := 0.0
	for _, v := range patterns {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range patterns {
		intensity := int((v / maxVal) * float64(len(HeatmapBlocks)-1))
		intensity = min(max(intensity, 0), len(HeatmapBlocks)-1)

		var style lipgloss.Style
		switch intensity {
		case 0:
			style = lipgloss.NewStyle().Foreground(styles.Subtle)
		case 1:
			style = lipgloss.NewStyle().Foreground(styles.Success)
		case 2:
			style = lipgloss.NewStyle().Foreground(styles.Warning)
		case 3:
			style = lipgloss.NewStyle().Foreground(styles.Error)
		}

		result.WriteString(style.Render(string(HeatmapBlocks[intensity])))

		// Gap at noon
		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
