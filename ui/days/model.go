package days

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/opentransit/transitboard/internal/daterange"
	"github.com/opentransit/transitboard/internal/messages"
	"github.com/opentransit/transitboard/internal/models"
)

// Styling
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Margin(0, 0, 1, 0)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedDayStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("205")).
				Foreground(lipgloss.Color("0"))

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Margin(1, 0, 0, 0)
)

// Model represents the weekday selection panel: one checkbox per weekday
// plus the configured group toggles. Day state lives in the shared range
// controller; the panel stores only its cursor.
type Model struct {
	// Data
	ctrl *daterange.Controller

	// UI state
	cursor int

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a new weekday panel bound to the given controller
func NewModel(ctrl *daterange.Controller) *Model {
	return &Model{
		ctrl: ctrl,
	}
}

// Update handles messages for the weekday panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.moveCursorUp()
		case "down", "j":
			m.moveCursorDown()
		case " ", "enter":
			m.toggleAtCursor()
			return m, m.edited()
		case "w":
			if group, ok := m.ctrl.Constants().Group("weekdays"); ok {
				m.ctrl.ToggleGroup(group)
				return m, m.edited()
			}
		case "e":
			if group, ok := m.ctrl.Constants().Group("weekend"); ok {
				m.ctrl.ToggleGroup(group)
				return m, m.edited()
			}
		}
	}

	return m, nil
}

// View renders the weekday panel
func (m *Model) View() string {
	sel := m.ctrl.Selection()

	title := "🗓 Days of Week"
	if m.focused {
		title += " *"
	}

	var lines []string
	for _, group := range m.ctrl.Constants().DayGroups {
		lines = append(lines, groupStyle.Render(
			fmt.Sprintf("%s %s", groupMark(sel, group.Days), group.Label)))
	}
	lines = append(lines, "")

	for i, day := range models.AllWeekdays {
		mark := "□"
		if sel.DayIncluded(day) {
			mark = "☑"
		}
		line := fmt.Sprintf("%s %s", mark, models.WeekdayLabels[day])
		if m.focused && i == m.cursor {
			lines = append(lines, selectedDayStyle.Render(line))
		} else {
			lines = append(lines, dayStyle.Render(line))
		}
	}

	help := helpStyle.Render("space toggle | w weekdays | e weekend")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		strings.Join(lines, "\n"),
		help,
	)
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Internal methods

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else {
		m.cursor = len(models.AllWeekdays) - 1 // Wrap to bottom
	}
}

func (m *Model) moveCursorDown() {
	if m.cursor < len(models.AllWeekdays)-1 {
		m.cursor++
	} else {
		m.cursor = 0 // Wrap to top
	}
}

func (m *Model) toggleAtCursor() {
	day := models.AllWeekdays[m.cursor]
	m.ctrl.SetDay(day, !m.ctrl.Selection().DayIncluded(day))
}

func (m *Model) edited() tea.Cmd {
	sel := m.ctrl.Selection()
	return func() tea.Msg {
		return messages.SelectionEditedMsg{Selection: sel}
	}
}

// groupMark derives the group checkbox appearance from the two aggregate
// predicates: checked, unchecked, or partial. Display only; no third state
// is stored.
func groupMark(sel models.DateRangeSelection, group []models.Weekday) string {
	switch {
	case daterange.AllTrue(sel, group):
		return "[x]"
	case daterange.AllFalse(sel, group):
		return "[ ]"
	default:
		return "[~]"
	}
}
