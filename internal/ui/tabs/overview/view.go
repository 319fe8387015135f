package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const monthlyCaption = "January to December"

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	summary := m.state.GetSummary()

	sections := []string{m.renderTitle(summary)}
	if summary.IsEmpty() {
		sections = append(sections, styles.EmptyStateStyle.Render(components.NoDataMessage))
	} else {
		sections = append(sections,
			m.renderMetrics(summary),
			m.renderDailyTrend(summary),
			m.renderMonthly(summary),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle(summary *models.Summary) string {
	title := styles.TitleStyle.Render("Bike Sharing Overview")
	subtitle := "No range selected"
	if summary != nil {
		subtitle = summary.Range.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func metricCard(label, value string) string {
	return styles.MetricCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.MetricLabelStyle.Render(label),
		styles.MetricValueStyle.Render(value),
	))
}

func (m *Model) renderMetrics(summary *models.Summary) string {
	peak := "-"
	if summary.PeakHour.OK {
		peak = fmt.Sprintf("%02d:00 (%s)", summary.PeakHour.Hour, components.FormatCount(summary.PeakHour.Count))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Total rentals", components.FormatCount(summary.GrandTotal)),
		metricCard("Peak hour", peak),
		metricCard("Days", fmt.Sprintf("%d", summary.Range.Days())),
		metricCard("Hourly records", components.FormatCount(int64(summary.Rows))),
	)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderDailyTrend(summary *models.Summary) string {
	data := make([]float64, len(summary.Daily))
	for i, d := range summary.Daily {
		data[i] = float64(d.Count)
	}

	chart := components.RenderLineChart(data, m.cardWidth()-16, 10, "rentals per day")

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Daily Trend"),
		chart,
	))
}

func (m *Model) renderMonthly(summary *models.Summary) string {
	years := summary.YearCodes()
	yearBase := m.state.GetYearBase()

	series := make([][]float64, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		series[i] = summary.MonthlySeries(y)
		labels[i] = models.YearLabel(y, yearBase)
	}

	chart := components.RenderMultiLineChart(series, m.cardWidth()-16, 10, monthlyCaption)

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Monthly Rentals by Year"),
		chart,
		"",
		components.SeriesLegend(labels),
	))
}
