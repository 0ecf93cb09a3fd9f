package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/opentransit/transitboard/internal/config"
	"github.com/opentransit/transitboard/internal/daterange"
	"github.com/opentransit/transitboard/internal/messages"
	"github.com/opentransit/transitboard/internal/store"
	"github.com/opentransit/transitboard/internal/utils"
	"github.com/opentransit/transitboard/ui/days"
	"github.com/opentransit/transitboard/ui/picker"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	PickerPanel FocusedPanel = iota
	DaysPanel
)

// AppModel represents the main application model. It owns the shared store
// of committed selections and one controller carrying the local edit buffer
// for the active range; the panels edit through the controller and nothing
// touches the store until an explicit commit.
type AppModel struct {
	// Core state
	store    *store.Store
	ctrl     *daterange.Controller
	activeID store.RangeID

	// Panels
	picker *picker.Model
	days   *days.Model

	// UI state
	focused      FocusedPanel
	panels       []FocusedPanel
	currentPanel int
	width        int
	height       int

	// Status
	status   string
	quitting bool
}

// NewAppModel creates the application model. Ranges without a committed
// selection are seeded with the default so switching identifiers always has
// something to load.
func NewAppModel(constants config.Constants, st *store.Store) *AppModel {
	ctrl := daterange.New(constants)

	for _, id := range []store.RangeID{store.FirstRange, store.SecondRange} {
		if _, ok := st.Load(id); !ok {
			st.Commit(id, ctrl.Selection())
		}
	}

	if committed, ok := st.Load(store.FirstRange); ok {
		ctrl.Load(committed)
	}

	m := &AppModel{
		store:        st,
		ctrl:         ctrl,
		activeID:     store.FirstRange,
		picker:       picker.NewModel(ctrl),
		days:         days.NewModel(ctrl),
		focused:      PickerPanel,
		panels:       []FocusedPanel{PickerPanel, DaysPanel},
		currentPanel: 0,
		status:       "Ready",
	}
	m.picker.Focus()
	return m
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	utils.Debug("TUI started, active range %q", m.activeID)
	return nil
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(m.width/2, m.height-6)
		m.days.SetSize(m.width-m.width/2, m.height-6)
		return m, nil

	case messages.SelectionEditedMsg:
		m.status = fmt.Sprintf("Editing %s: %s", m.activeID, msg.Selection)
		return m, nil

	case messages.RangeCommittedMsg:
		utils.Debug("committed range %q: %s", msg.ID, msg.Selection)
		return m, nil

	case messages.ActiveRangeChangedMsg:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Date entry captures everything while active
		if m.picker.Editing() {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.nextPanel()
			return m, nil

		case "shift+tab":
			m.prevPanel()
			return m, nil

		case "f":
			return m, m.switchRange(store.FirstRange)

		case "s":
			return m, m.switchRange(store.SecondRange)

		case "c":
			return m, m.commit()

		case "esc":
			return m, m.discard()

		case "r":
			m.ctrl.Reset()
			m.picker.SyncFromSelection()
			m.status = fmt.Sprintf("Reset %s to defaults", m.activeID)
			return m, nil

		case "?":
			m.status = "Tab: panels | f/s: range | c: commit | esc: discard | r: reset | q: quit"
			return m, nil
		}

		return m.updateFocusedPanel(msg)
	}

	return m, nil
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	header := m.renderHeader()
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPanel(PickerPanel, m.picker.View()),
		m.renderPanel(DaysPanel, m.days.View()),
	)
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

// switchRange retargets the edit buffer at another range identifier,
// reloading it from committed state. Pending edits to the previous range are
// dropped, never partially propagated.
func (m *AppModel) switchRange(id store.RangeID) tea.Cmd {
	if id == m.activeID {
		return nil
	}

	m.activeID = id
	if committed, ok := m.store.Load(id); ok {
		m.ctrl.Load(committed)
	} else {
		m.ctrl.Reset()
	}
	m.picker.SyncFromSelection()
	m.status = fmt.Sprintf("Active range: %s", id)

	return func() tea.Msg {
		return messages.ActiveRangeChangedMsg{ID: id}
	}
}

// commit replaces the committed selection for the active range with the
// working selection in one step
func (m *AppModel) commit() tea.Cmd {
	sel := m.ctrl.Selection()
	m.store.Commit(m.activeID, sel)
	m.status = fmt.Sprintf("Committed %s: %s", m.activeID, sel)

	id := m.activeID
	return func() tea.Msg {
		return messages.RangeCommittedMsg{ID: id, Selection: sel}
	}
}

// discard drops local edits and reloads the committed selection
func (m *AppModel) discard() tea.Cmd {
	if committed, ok := m.store.Load(m.activeID); ok {
		m.ctrl.Load(committed)
	} else {
		m.ctrl.Reset()
	}
	m.picker.SyncFromSelection()
	m.status = fmt.Sprintf("Discarded edits to %s", m.activeID)

	id := m.activeID
	return func() tea.Msg {
		return messages.RangeDiscardedMsg{ID: id}
	}
}

func (m *AppModel) updateFocusedPanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case PickerPanel:
		m.picker, cmd = m.picker.Update(msg)
	case DaysPanel:
		m.days, cmd = m.days.Update(msg)
	}
	return m, cmd
}

// renderHeader creates the application header
func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("Transitboard - Transit Performance Dashboard")

	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("Active range: %s", m.activeID))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("Tab: Navigate | ?: Help | q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, active, help)
}

// renderStatusBar summarizes the committed ranges and the latest action
func (m *AppModel) renderStatusBar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 2).
		Padding(0, 1)

	var parts []string
	for _, id := range m.store.IDs() {
		if sel, ok := m.store.Load(id); ok {
			parts = append(parts, fmt.Sprintf("%s: %s", id, sel))
		}
	}
	parts = append(parts, fmt.Sprintf("Status: %s", m.status))

	return style.Render(strings.Join(parts, " | "))
}

func (m *AppModel) renderPanel(panel FocusedPanel, content string) string {
	borderColor := lipgloss.Color("240")
	if panel == m.focused {
		borderColor = lipgloss.Color("205")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.width/2 - 2).
		Padding(0, 1).
		Render(content)
}

// Helper methods

func (m *AppModel) nextPanel() {
	m.currentPanel = (m.currentPanel + 1) % len(m.panels)
	m.setFocus(m.panels[m.currentPanel])
}

func (m *AppModel) prevPanel() {
	m.currentPanel = (m.currentPanel - 1 + len(m.panels)) % len(m.panels)
	m.setFocus(m.panels[m.currentPanel])
}

func (m *AppModel) setFocus(panel FocusedPanel) {
	m.focused = panel
	if panel == PickerPanel {
		m.picker.Focus()
		m.days.Blur()
	} else {
		m.days.Focus()
		m.picker.Blur()
	}
}
