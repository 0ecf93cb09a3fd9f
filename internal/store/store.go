package store

import (
	"sort"

	"github.com/opentransit/transitboard/internal/models"
)

// RangeID identifies one of the concurrently displayed date ranges
type RangeID string

const (
	// FirstRange is the primary comparison range
	FirstRange RangeID = "first"
	// SecondRange is the secondary comparison range
	SecondRange RangeID = "second"
)

// Store holds the committed DateRangeSelection per range identifier. This is
// the shared application state the pickers reconcile against: edits live in
// a controller's local buffer until an explicit commit replaces one key's
// value wholesale. The store is confined to the UI goroutine and needs no
// locking.
type Store struct {
	ranges map[RangeID]models.DateRangeSelection
}

// New creates an empty store
func New() *Store {
	return &Store{
		ranges: make(map[RangeID]models.DateRangeSelection),
	}
}

// Commit atomically replaces the committed selection for the given range.
// The stored value is a copy; later edits to the caller's selection do not
// leak into the store.
func (s *Store) Commit(id RangeID, sel models.DateRangeSelection) {
	s.ranges[id] = sel.Clone()
}

// Load returns a copy of the committed selection for the given range. The
// second return value is false if nothing has been committed under that id.
func (s *Store) Load(id RangeID) (models.DateRangeSelection, bool) {
	sel, ok := s.ranges[id]
	if !ok {
		return models.DateRangeSelection{}, false
	}
	return sel.Clone(), true
}

// IDs returns the identifiers with committed selections, sorted for stable
// display.
func (s *Store) IDs() []RangeID {
	ids := make([]RangeID, 0, len(s.ranges))
	for id := range s.ranges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of committed ranges
func (s *Store) Len() int {
	return len(s.ranges)
}
