package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// Gradient endpoints shared by the share bar and bar charts.
const (
	gradientFrom = "#ff8c42"
	gradientTo   = "#3fa7f5"
)

// AnimationTickMsg advances the share bar animation.
type AnimationTickMsg time.Time

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// ShareBar renders one part of a whole, such as casual rentals against
// the grand total, as a gradient progress bar.
type ShareBar struct {
	progress       progress.Model
	isAnimating    bool
	targetPercent  float64
	currentPercent float64
}

// NewShareBar creates a share bar with the casual-to-registered gradient.
func NewShareBar() ShareBar {
	p := progress.New(
		progress.WithScaledGradient(gradientFrom, gradientTo),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return ShareBar{progress: p}
}

// Percent returns the share currently drawn, which trails the target
// while an animation is running.
func (s ShareBar) Percent() float64 {
	return s.currentPercent
}

// Update advances the animation towards the target share.
func (s ShareBar) Update(msg tea.Msg) (ShareBar, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(AnimationTickMsg); ok && s.isAnimating {
		diff := s.targetPercent - s.currentPercent
		switch {
		case diff == 0:
			s.isAnimating = false
		case diff > 0:
			s.currentPercent = min(s.currentPercent+max(diff/10, 0.5), s.targetPercent)
			cmds = append(cmds, animationTick())
		default:
			s.currentPercent = max(s.currentPercent+min(diff/10, -0.5), s.targetPercent)
			cmds = append(cmds, animationTick())
		}
	}

	model, cmd := s.progress.Update(msg)
	s.progress = model.(progress.Model)
	cmds = append(cmds, cmd)

	return s, tea.Batch(cmds...)
}

// SetShare sets the target share of part in total and starts animating.
func (s *ShareBar) SetShare(part, total int64) tea.Cmd {
	percent := 0.0
	if total > 0 {
		percent = float64(part) / float64(total) * 100
	}
	s.targetPercent = percent

	if s.isAnimating {
		return nil
	}
	s.isAnimating = true
	return animationTick()
}

// View renders the bar with its label, count and share.
func (s ShareBar) View(label string, part, total int64, width int) string {
	barWidth := max(width-40, 10)
	s.progress.Width = barWidth

	share := 0.0
	if total > 0 {
		share = float64(part) / float64(total)
	}

	drawn := share
	if s.isAnimating {
		drawn = s.currentPercent / 100
	}

	labelStr := styles.ProgressLabelStyle.Width(12).Render(label)
	countStr := styles.MetricValueStyle.Width(12).Align(lipgloss.Right).Render(FormatCount(part))
	shareStr := styles.GetShareStyle(share).
		Width(8).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", share*100))

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		s.progress.ViewAs(drawn),
		countStr,
		shareStr,
	)
}

// RenderGradientBar renders just the bar part with gradient colors.
// percent is 0-100.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	filled = min(max(filled, 0), width)

	var b strings.Builder
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor(gradientFrom, gradientTo, t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}

	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
