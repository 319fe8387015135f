package hourly

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const busiestHours = 5

// View renders the hourly tab.
func (m *Model) View() string {
	summary := m.state.GetSummary()

	sections := []string{m.renderHeader(summary)}
	if summary.IsEmpty() {
		sections = append(sections, styles.EmptyStateStyle.Render(components.NoDataMessage))
	} else {
		sections = append(sections,
			m.renderPatternChart(summary),
			m.renderHeatmap(summary),
			m.renderBusiest(summary),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderHeader(summary *models.Summary) string {
	peak := styles.HelpStyle.Render("Peak hour: -")
	if summary != nil && summary.PeakHour.OK {
		peak = fmt.Sprintf("%s %s %s",
			styles.HelpStyle.Render("Peak hour:"),
			styles.MetricValueStyle.Render(fmt.Sprintf("%02d:00", summary.PeakHour.Hour)),
			styles.HelpStyle.Render("("+components.FormatCount(summary.PeakHour.Count)+" rentals)"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Hourly Pattern"),
		peak,
		"",
	)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderPatternChart(summary *models.Summary) string {
	chartWidth := m.cardWidth() - 16
	title := "Rentals by Hour"

	var body string
	switch {
	case m.split && m.loading:
		body = styles.HelpStyle.Render("Splitting by user type...")
	case m.split && m.errorMsg != "":
		body = styles.ErrorTextStyle.Render("Error: " + m.errorMsg)
	case m.split && m.splitCurrent(summary):
		title = "Rentals by Hour and User Type"
		hours := lo.Map(m.splitData, func(h models.HourlyUserTypeTotal, _ int) int { return h.Hour })
		casual := lo.Map(m.splitData, func(h models.HourlyUserTypeTotal, _ int) int64 { return h.Casual })
		registered := lo.Map(m.splitData, func(h models.HourlyUserTypeTotal, _ int) int64 { return h.Registered })
		body = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderMultiLineChart([][]float64{
				components.HourlySlots(hours, casual),
				components.HourlySlots(hours, registered),
			}, chartWidth, 12, "hour of day (0-23)"),
			"",
			components.SeriesLegend([]string{"Casual", "Registered"}),
		)
	default:
		body = components.RenderLineChart(hourlySlots(summary), chartWidth, 12, "hour of day (0-23)")
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render(title),
		body,
	))
}

func hourlySlots(summary *models.Summary) []float64 {
	hours := lo.Map(summary.Hourly, func(h models.HourlyTotal, _ int) int { return h.Hour })
	counts := lo.Map(summary.Hourly, func(h models.HourlyTotal, _ int) int64 { return h.Count })
	return components.HourlySlots(hours, counts)
}

func (m *Model) renderHeatmap(summary *models.Summary) string {
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Activity Heatmap"),
		components.RenderHourlyHeatmap(hourlySlots(summary)),
	))
}

func (m *Model) renderBusiest(summary *models.Summary) string {
	ranked := slices.Clone(summary.Hourly)
	slices.SortFunc(ranked, func(a, b models.HourlyTotal) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	ranked = ranked[:min(len(ranked), busiestHours)]

	header := styles.TableHeaderStyle.Render(fmt.Sprintf("%-8s %12s %8s", "Hour", "Rentals", "Share"))
	rows := []string{styles.CardTitleStyle.Render("Busiest Hours"), header}
	for _, h := range ranked {
		share := 0.0
		if summary.GrandTotal > 0 {
			share = float64(h.Count) / float64(summary.GrandTotal)
		}
		rows = append(rows, styles.TableCellStyle.Render(fmt.Sprintf("%-8s %12s %s",
			fmt.Sprintf("%02d:00", h.Hour),
			components.FormatCount(h.Count),
			styles.GetShareStyle(share).Render(fmt.Sprintf("%7.1f%%", share*100)),
		)))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(strings.Join(rows, "\n"))
}
