package breakdown

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// View renders the breakdown tab.
func (m *Model) View() string {
	summary := m.state.GetSummary()

	sections := []string{
		lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Breakdown"),
			styles.HelpStyle.Render("Rentals by year, season, weather and user type"),
			"",
		),
	}

	if summary.IsEmpty() {
		sections = append(sections, styles.EmptyStateStyle.Render(components.NoDataMessage))
	} else {
		yearBase := m.state.GetYearBase()
		sections = append(sections,
			m.renderCard("Yearly", lo.Map(summary.Yearly, func(y models.YearlyTotal, _ int) components.Bar {
				return components.Bar{Label: models.YearLabel(y.Year, yearBase), Count: y.Count}
			})),
			m.renderCard("Season", lo.Map(summary.Seasons, func(s models.SeasonTotal, _ int) components.Bar {
				return components.Bar{Label: models.SeasonLabel(s.Season), Count: s.Count}
			})),
			m.renderCard("Weather", lo.Map(summary.Weather, func(w models.WeatherTotal, _ int) components.Bar {
				return components.Bar{Label: models.WeatherLabel(w.Weather), Count: w.Count}
			})),
			m.renderUserTypes(summary),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderCard(title string, bars []components.Bar) string {
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render(title),
		components.RenderBarChart(bars, m.cardWidth()-6),
	))
}

func (m *Model) renderUserTypes(summary *models.Summary) string {
	total := userTypeTotal(summary)

	rows := []string{styles.CardTitleStyle.Render("User Type")}
	for _, u := range summary.UserTypes {
		bar, ok := m.userBars[u.UserType]
		if !ok {
			bar = components.NewShareBar()
		}
		rows = append(rows, bar.View(lo.Capitalize(u.UserType), u.Count, total, m.cardWidth()-6))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
