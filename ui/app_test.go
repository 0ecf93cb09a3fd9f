package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/opentransit/transitboard/internal/config"
	"github.com/opentransit/transitboard/internal/models"
	"github.com/opentransit/transitboard/internal/store"
)

func newTestApp() (*AppModel, *store.Store) {
	st := store.New()
	return NewAppModel(config.Defaults(), st), st
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m *AppModel, msg tea.Msg) *AppModel {
	next, _ := m.Update(msg)
	return next.(*AppModel)
}

func TestSeedsBothRanges(t *testing.T) {
	_, st := newTestApp()

	for _, id := range []store.RangeID{store.FirstRange, store.SecondRange} {
		if _, ok := st.Load(id); !ok {
			t.Errorf("range %q not seeded with a default selection", id)
		}
	}
}

func TestCommitReplacesStoredSelection(t *testing.T) {
	m, st := newTestApp()

	m.ctrl.SetTimeWindow("07:00-10:00")
	m.ctrl.SetDay(models.Sunday, false)
	m = update(m, keyRunes("c"))

	committed, ok := st.Load(store.FirstRange)
	if !ok {
		t.Fatal("first range missing after commit")
	}
	if !committed.Equal(m.ctrl.Selection()) {
		t.Error("committed selection differs from working selection")
	}
	if committed.TimeWindowValue() != "07:00-10:00" {
		t.Errorf("committed window = %q, want 07:00-10:00", committed.TimeWindowValue())
	}
}

func TestDiscardReloadsCommitted(t *testing.T) {
	m, st := newTestApp()
	committed, _ := st.Load(store.FirstRange)

	m.ctrl.SetDay(models.Sunday, false)
	m.ctrl.SetTimeWindow("16:00-19:00")
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.ctrl.Selection().Equal(committed) {
		t.Error("discard did not restore the committed selection")
	}
	if got, _ := st.Load(store.FirstRange); !got.Equal(committed) {
		t.Error("discard modified the store")
	}
}

func TestSwitchRangeDropsPendingEdits(t *testing.T) {
	m, st := newTestApp()

	// Edit the first range without committing, then retarget the second
	m.ctrl.SetDay(models.Monday, false)
	m = update(m, keyRunes("s"))

	if m.activeID != store.SecondRange {
		t.Fatalf("active range = %q, want second", m.activeID)
	}
	secondCommitted, _ := st.Load(store.SecondRange)
	if !m.ctrl.Selection().Equal(secondCommitted) {
		t.Error("edit buffer not reloaded from the second range's committed state")
	}

	// The abandoned edit never reached the first range's committed state
	firstCommitted, _ := st.Load(store.FirstRange)
	if !firstCommitted.DayIncluded(models.Monday) {
		t.Error("uncommitted edit leaked into the first range")
	}
}

func TestCommitTargetsActiveRange(t *testing.T) {
	m, st := newTestApp()
	firstBefore, _ := st.Load(store.FirstRange)

	m = update(m, keyRunes("s"))
	m.ctrl.SetTimeWindow("19:00-23:00")
	m = update(m, keyRunes("c"))

	second, _ := st.Load(store.SecondRange)
	if second.TimeWindowValue() != "19:00-23:00" {
		t.Errorf("second range window = %q, want 19:00-23:00", second.TimeWindowValue())
	}
	first, _ := st.Load(store.FirstRange)
	if !first.Equal(firstBefore) {
		t.Error("committing the second range touched the first")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestApp()

	next, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if !next.(*AppModel).quitting {
		t.Error("quit key did not set quitting")
	}
}

func TestPanelFocusCycle(t *testing.T) {
	m, _ := newTestApp()

	if m.focused != PickerPanel {
		t.Fatalf("initial focus = %v, want picker", m.focused)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focused != DaysPanel || !m.days.IsFocused() || m.picker.IsFocused() {
		t.Error("tab did not move focus to the days panel")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focused != PickerPanel || !m.picker.IsFocused() {
		t.Error("shift+tab did not move focus back to the picker")
	}
}
