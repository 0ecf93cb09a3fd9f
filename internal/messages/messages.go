package messages

import (
	"github.com/opentransit/transitboard/internal/models"
	"github.com/opentransit/transitboard/internal/store"
)

// RangeCommittedMsg is sent when a picker's local edits are confirmed and
// the selection has replaced the committed state for one range identifier
type RangeCommittedMsg struct {
	ID        store.RangeID             // Which range was committed
	Selection models.DateRangeSelection // The selection that was committed
}

// RangeDiscardedMsg is sent when local edits are abandoned and the edit
// buffer has been reloaded from committed state
type RangeDiscardedMsg struct {
	ID store.RangeID // Which range's edits were discarded
}

// ActiveRangeChangedMsg is sent when the targeted range identifier changes
// and components should refresh from the newly loaded selection
type ActiveRangeChangedMsg struct {
	ID store.RangeID // The now-active range
}

// SelectionEditedMsg is sent after any local edit so sibling panels and the
// status bar can re-render the shared working selection
type SelectionEditedMsg struct {
	Selection models.DateRangeSelection // The working selection after the edit
}
