package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderDatasetCard(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Dataset, configuration and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

// renderDatasetCard shows where the loaded data came from.
func (m *Model) renderDatasetCard() string {
	rows := []string{styles.CardTitleStyle.Render("Dataset")}

	ds := m.state.GetDataset()
	if ds.Source == "" {
		rows = append(rows, styles.HelpStyle.Render("No dataset loaded"))
	} else {
		rows = append(rows,
			renderRow("Source", ds.Source),
			renderRow("Rows", humanize.Comma(int64(ds.Rows))),
			renderRow("Covers", ds.Bounds.String()),
			renderRow("Days", strconv.Itoa(ds.Bounds.Days())),
			renderRow("Loaded", humanize.Time(ds.LoadedAt)),
			renderRow("Watcher", onOff(ds.Watching)),
		)
		if ds.Import != nil {
			rows = append(rows,
				renderRow("Imported From", ds.Import.Source),
				renderRow("Import", fmt.Sprintf("%s rows, %s",
					humanize.Comma(int64(ds.Import.Rows)), humanize.Time(ds.Import.ImportedAt))),
			)
		}
	}

	rng, preset := m.state.GetRange()
	if !rng.IsZero() {
		rows = append(rows, renderRow("Selection", fmt.Sprintf("%s (%s)", rng, preset.Label(m.state.GetYearBase()))))
	}

	rows = append(rows, "", styles.HelpStyle.Render("Press 'c' to copy the dataset path"))

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderConfigCard renders the effective configuration.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration")}

	if m.config != nil {
		rows = append(rows,
			renderRow("Dataset Path", m.config.DatasetPath),
			renderRow("Database", m.config.DatabasePath),
			renderRow("HTTP Address", m.config.HTTPAddr),
			renderRow("Environment", m.config.AppEnv),
			renderRow("Log Level", m.config.LogLevel),
			renderRow("Log File", m.config.LogFile),
			renderRow("Year Base", strconv.Itoa(m.config.YearBase)),
			renderRow("Watch Dataset", onOff(m.config.WatchDataset)),
			renderRow("Notifications", onOff(m.config.Notify)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return styles.SuccessTextStyle.Render("on")
	}
	return styles.HelpStyle.Render("off")
}

func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(16).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Bike Sharing Dashboard"),
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
