package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/opentransit/transitboard/internal/models"
)

// Styling constants
var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Margin(0, 0, 1, 0)

	fieldStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedFieldStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	editInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			Margin(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Margin(1, 0, 0, 0)
)

// View renders the date range panel
func (m *Model) View() string {
	if m.editMode {
		return m.renderEditMode()
	}
	return m.renderNormalMode()
}

func (m *Model) renderNormalMode() string {
	sel := m.ctrl.Selection()

	title := "📅 Date Range"
	if m.focused {
		title += " *"
	}

	startLine := m.renderDateField(StartField, "Start", sel.StartDate)
	endLine := m.renderDateField(EndField, "End", sel.EndDate)
	span := dimStyle.Render(fmt.Sprintf("Span: %d days", sel.SpanDays()))

	window := labelStyle.Render(fmt.Sprintf("Window: %s",
		m.ctrl.Constants().WindowLabel(sel.TimeWindowValue())))

	var presets []string
	for i, p := range m.ctrl.Constants().Presets {
		presets = append(presets, fmt.Sprintf("%d:%s", i+1, p.Label))
	}
	presetLine := dimStyle.Render(strings.Join(presets, "  "))

	help := helpStyle.Render("↑/↓ field | ←/→ shift | e edit | t window | 1-9 preset")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		startLine,
		endLine,
		span,
		"",
		window,
		presetLine,
		help,
	)
}

func (m *Model) renderDateField(field Field, label string, date time.Time) string {
	line := fmt.Sprintf("%-5s %s", label+":", models.FormatDate(date))
	if m.focused && m.cursor == field {
		return selectedFieldStyle.Render(line)
	}
	return fieldStyle.Render(line)
}

func (m *Model) renderEditMode() string {
	fieldName := "end"
	if m.cursor == StartField {
		fieldName = "start"
	}

	header := titleStyle.Render(fmt.Sprintf("Edit %s date", fieldName))
	input := editInputStyle.Render(m.editInput.View())
	help := helpStyle.Render("enter: apply | esc: cancel (empty or invalid input keeps the current date)")

	return lipgloss.JoinVertical(lipgloss.Left, header, input, help)
}
