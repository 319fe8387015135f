package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// ErrOutOfBounds is returned when a custom range leaves the dataset bounds.
var ErrOutOfBounds = errors.New("date range outside dataset bounds")

const (
	fieldStart = iota
	fieldEnd
	fieldCount
)

// RangeForm is the two-field custom date range input.
type RangeForm struct {
	inputs [fieldCount]textinput.Model
	bounds models.DateRange
	err    error
	focus  int
	active bool
}

// NewRangeForm creates a closed range form.
func NewRangeForm() RangeForm {
	var f RangeForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = models.DateLayout
		ti.CharLimit = len(models.DateLayout)
		ti.Width = len(models.DateLayout) + 1
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	return f
}

// Active reports whether the form is open and capturing keys.
func (f *RangeForm) Active() bool {
	return f.active
}

// Err returns the last validation error.
func (f *RangeForm) Err() error {
	return f.err
}

// Open shows the form prefilled with the current range.
func (f *RangeForm) Open(current, bounds models.DateRange) tea.Cmd {
	f.active = true
	f.err = nil
	f.bounds = bounds
	if current.IsZero() {
		current = bounds
	}
	f.inputs[fieldStart].SetValue(current.Start.Format(models.DateLayout))
	f.inputs[fieldEnd].SetValue(current.End.Format(models.DateLayout))
	return f.setFocus(fieldStart)
}

// Close hides the form and discards its input.
func (f *RangeForm) Close() {
	f.active = false
	f.err = nil
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// SetValues replaces the text of both fields.
func (f *RangeForm) SetValues(start, end string) {
	f.inputs[fieldStart].SetValue(start)
	f.inputs[fieldEnd].SetValue(end)
}

func (f *RangeForm) setFocus(idx int) tea.Cmd {
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

var (
	formNextField = key.NewBinding(key.WithKeys("tab", "down"))
	formPrevField = key.NewBinding(key.WithKeys("shift+tab", "up"))
)

// Update routes a key to the focused field. Field switching is handled
// here; enter and esc are left to the caller.
func (f *RangeForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, formNextField):
		return f.setFocus((f.focus + 1) % fieldCount)
	case key.Matches(msg, formPrevField):
		return f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Submit validates both fields. The range must be ordered and lie within
// the dataset bounds. On error the form stays open and keeps the error.
func (f *RangeForm) Submit() (models.DateRange, error) {
	start := strings.TrimSpace(f.inputs[fieldStart].Value())
	end := strings.TrimSpace(f.inputs[fieldEnd].Value())

	rng, err := models.ParseDateRange(start, end)
	if err != nil {
		f.err = err
		return models.DateRange{}, err
	}
	if !f.bounds.IsZero() && !rng.Within(f.bounds) {
		f.err = fmt.Errorf("%w (%s)", ErrOutOfBounds, f.bounds)
		return models.DateRange{}, f.err
	}

	f.err = nil
	return rng, nil
}

// View renders the form panel.
func (f *RangeForm) View() string {
	labels := [fieldCount]string{"Start", "End"}

	var b strings.Builder
	b.WriteString(styles.SubTitleStyle.Render("Custom date range"))
	b.WriteString("\n")
	for i, ti := range f.inputs {
		label := styles.BlurredStyle.Render(fmt.Sprintf("%-6s", labels[i]))
		box := styles.BlurredBorderStyle
		if i == f.focus {
			label = styles.FocusedStyle.Render(fmt.Sprintf("%-6s", labels[i]))
			box = styles.FocusedBorderStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, label, " ", box.Render(ti.View())))
		b.WriteString("\n")
	}

	if !f.bounds.IsZero() {
		b.WriteString(styles.HelpStyle.Render("Dataset: " + f.bounds.String()))
		b.WriteString("\n")
	}
	if f.err != nil {
		b.WriteString(styles.ErrorTextStyle.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("tab switch field • enter apply • esc cancel"))

	return styles.ModalContentStyle.Render(b.String())
}
