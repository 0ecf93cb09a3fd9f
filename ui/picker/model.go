package picker

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/opentransit/transitboard/internal/daterange"
	"github.com/opentransit/transitboard/internal/messages"
	"github.com/opentransit/transitboard/internal/models"
	"github.com/opentransit/transitboard/internal/utils"
)

// Field represents which date field the cursor is on
type Field int

const (
	StartField Field = iota
	EndField
)

// Model represents the date range panel: the date span, the quick-pick
// presets, and the time-of-day window. All edits go through the shared
// range controller; the panel itself stores only cursor and edit state.
type Model struct {
	// Data
	ctrl *daterange.Controller

	// UI state
	cursor      Field // Which date field is selected
	windowIndex int   // Index into the time window option list
	editMode    bool  // Whether a date is being typed
	editInput   textinput.Model

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a new date range panel bound to the given controller
func NewModel(ctrl *daterange.Controller) *Model {
	input := textinput.New()
	input.Placeholder = models.DateLayout
	input.CharLimit = len(models.DateLayout)
	input.Width = len(models.DateLayout) + 2

	m := &Model{
		ctrl:      ctrl,
		cursor:    EndField,
		editInput: input,
	}
	m.SyncFromSelection()
	return m
}

// Update handles messages for the date range panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	// Date entry mode captures all keys
	if m.editMode {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter":
				return m.confirmEdit()
			case "esc":
				return m.cancelEdit(), nil
			default:
				m.editInput, cmd = m.editInput.Update(msg)
				return m, cmd
			}
		default:
			m.editInput, cmd = m.editInput.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case messages.ActiveRangeChangedMsg:
		m.SyncFromSelection()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "down", "j":
			m.switchField()
		case "left", "h":
			m.shiftDate(-1)
			return m, m.edited()
		case "right", "l":
			m.shiftDate(1)
			return m, m.edited()
		case "enter", "e":
			m.startEdit()
		case "t":
			m.cycleTimeWindow(1)
			return m, m.edited()
		case "T":
			m.cycleTimeWindow(-1)
			return m, m.edited()
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if m.applyPreset(int(msg.String()[0] - '1')) {
				return m, m.edited()
			}
		}
	}

	return m, nil
}

// Editing reports whether the panel is capturing text input
func (m *Model) Editing() bool {
	return m.editMode
}

// SyncFromSelection re-derives panel state from the controller's working
// selection. Called after Load, Reset, or a range identifier switch so the
// time window cursor tracks the selection instead of drifting.
func (m *Model) SyncFromSelection() {
	value := m.ctrl.Selection().TimeWindowValue()
	m.windowIndex = 0
	for i, w := range m.ctrl.Constants().TimeWindows {
		if w.Value == value {
			m.windowIndex = i
			break
		}
	}
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
	if m.editMode {
		m.cancelEdit()
	}
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Internal methods

func (m *Model) switchField() {
	if m.cursor == StartField {
		m.cursor = EndField
	} else {
		m.cursor = StartField
	}
}

// shiftDate nudges the selected date field by the given number of days
func (m *Model) shiftDate(days int) {
	sel := m.ctrl.Selection()
	if m.cursor == StartField {
		m.ctrl.SetStartDate(sel.StartDate.AddDate(0, 0, days))
	} else {
		m.ctrl.SetEndDate(sel.EndDate.AddDate(0, 0, days))
	}
}

func (m *Model) startEdit() {
	sel := m.ctrl.Selection()
	current := sel.EndDate
	if m.cursor == StartField {
		current = sel.StartDate
	}

	m.editMode = true
	m.editInput.SetValue(models.FormatDate(current))
	m.editInput.Focus()
}

// confirmEdit applies the typed date. Empty or unparseable input leaves the
// prior value in place; the panel never surfaces an error for it.
func (m *Model) confirmEdit() (*Model, tea.Cmd) {
	value := m.editInput.Value()
	m.editMode = false
	m.editInput.Blur()

	if value == "" {
		return m, nil
	}
	date, err := models.ParseDate(value)
	if err != nil {
		utils.Warning("ignoring unparseable date entry %q", value)
		return m, nil
	}

	if m.cursor == StartField {
		m.ctrl.SetStartDate(date)
	} else {
		m.ctrl.SetEndDate(date)
	}
	return m, m.edited()
}

func (m *Model) cancelEdit() *Model {
	m.editMode = false
	m.editInput.Blur()
	return m
}

func (m *Model) cycleTimeWindow(step int) {
	windows := m.ctrl.Constants().TimeWindows
	if len(windows) == 0 {
		return
	}
	m.windowIndex = (m.windowIndex + step + len(windows)) % len(windows)
	m.ctrl.SetTimeWindow(windows[m.windowIndex].Value)
}

// applyPreset applies the index'th configured preset, reporting whether one
// exists at that index
func (m *Model) applyPreset(index int) bool {
	presets := m.ctrl.Constants().Presets
	if index < 0 || index >= len(presets) {
		return false
	}
	m.ctrl.ApplyPreset(presets[index].Days)
	return true
}

func (m *Model) edited() tea.Cmd {
	sel := m.ctrl.Selection()
	return func() tea.Msg {
		return messages.SelectionEditedMsg{Selection: sel}
	}
}
