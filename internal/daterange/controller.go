// Package daterange implements the state transitions behind the dashboard's
// date/time range picker. Every operation clamps or ignores bad input rather
// than failing: the selection can never be driven into an invalid state
// through these controls.
package daterange

import (
	"strings"
	"time"

	"github.com/opentransit/transitboard/internal/config"
	"github.com/opentransit/transitboard/internal/models"
)

// Controller maintains one working DateRangeSelection and applies edits to
// it while preserving its invariants: the end date never passes "today", the
// start date never passes the end date, and the span never exceeds the
// configured maximum. Confined to the UI goroutine; not safe for concurrent
// use.
type Controller struct {
	constants config.Constants
	now       func() time.Time
	selection models.DateRangeSelection
}

// New creates a controller holding the default selection
func New(constants config.Constants) *Controller {
	return NewWithClock(constants, time.Now)
}

// NewWithClock creates a controller with an injected clock. "Today" is
// evaluated through the clock at each mutation, not captured at construction.
func NewWithClock(constants config.Constants, now func() time.Time) *Controller {
	c := &Controller{
		constants: constants,
		now:       now,
	}
	c.Reset()
	return c
}

// Selection returns a copy of the working selection
func (c *Controller) Selection() models.DateRangeSelection {
	return c.selection.Clone()
}

// Constants returns the fixed configuration the controller was built with
func (c *Controller) Constants() config.Constants {
	return c.constants
}

// Load replaces the working selection with a copy of the given one. Called
// when the targeted range identifier changes or when local edits are
// discarded, so the edit buffer always starts from committed state.
func (c *Controller) Load(sel models.DateRangeSelection) {
	c.selection = sel.Clone()
}

// Reset restores the default selection: all weekdays included, no
// time-of-day window, and the default span ending today.
func (c *Controller) Reset() {
	end := c.today()
	start := end.AddDate(0, 0, -(c.constants.DefaultRangeDays - 1))
	c.selection = models.NewSelection(start, end)
}

// SetEndDate moves the end date, keeping the selection valid. The new date
// is clamped to today; if it lands before the current start date the range
// collapses to that single day, and if the resulting span would exceed the
// maximum the start date is pulled forward. A zero date is a no-op.
func (c *Controller) SetEndDate(newEnd time.Time) {
	if newEnd.IsZero() {
		return
	}
	end := models.Day(newEnd)
	if today := c.today(); end.After(today) {
		end = today
	}

	if end.Before(c.selection.StartDate) {
		c.selection.StartDate = end
	} else if models.DaysBetween(c.selection.StartDate, end) > c.constants.MaxRangeDays {
		c.selection.StartDate = end.AddDate(0, 0, -c.constants.MaxRangeDays)
	}
	c.selection.EndDate = end
}

// SetStartDate moves the start date, clamped to today and then into
// [endDate - max span, endDate]. A zero date is a no-op.
func (c *Controller) SetStartDate(newStart time.Time) {
	if newStart.IsZero() {
		return
	}
	start := models.Day(newStart)
	if today := c.today(); start.After(today) {
		start = today
	}

	if start.After(c.selection.EndDate) {
		start = c.selection.EndDate
	}
	if earliest := c.selection.EndDate.AddDate(0, 0, -c.constants.MaxRangeDays); start.Before(earliest) {
		start = earliest
	}
	c.selection.StartDate = start
}

// ApplyPreset selects the inclusive span of daysBack calendar days ending
// today. The day count is clamped to [1, max span + 1].
func (c *Controller) ApplyPreset(daysBack int) {
	if daysBack < 1 {
		daysBack = 1
	}
	if daysBack > c.constants.MaxRangeDays+1 {
		daysBack = c.constants.MaxRangeDays + 1
	}

	end := c.today()
	c.selection.EndDate = end
	c.selection.StartDate = end.AddDate(0, 0, -(daysBack - 1))
}

// SetTimeWindow applies a composite "HH:MM-HH:MM" window value. The empty
// string is the all-day sentinel and clears both times; any value that does
// not split into exactly two fields also falls back to all day. Values come
// from the fixed option list, so the halves are stored verbatim.
func (c *Controller) SetTimeWindow(raw string) {
	if raw == "" {
		c.selection.StartTime = ""
		c.selection.EndTime = ""
		return
	}
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		c.selection.StartTime = ""
		c.selection.EndTime = ""
		return
	}
	c.selection.StartTime = parts[0]
	c.selection.EndTime = parts[1]
}

// SetDay sets a single weekday's inclusion flag. Unknown identifiers are
// ignored so the selection always keeps exactly seven entries.
func (c *Controller) SetDay(day models.Weekday, included bool) {
	if !models.IsValidWeekday(day) {
		return
	}
	c.selection.Days[day] = included
}

// ToggleGroup flips a named weekday group as a unit: a group whose members
// are all included becomes all excluded, any other group (all excluded or
// mixed) becomes all included.
func (c *Controller) ToggleGroup(group config.DayGroup) {
	target := !AllTrue(c.selection, group.Days)
	for _, day := range group.Days {
		c.SetDay(day, target)
	}
}

func (c *Controller) today() time.Time {
	return models.Day(c.now())
}

// AllTrue reports whether every listed weekday is included in the selection
func AllTrue(sel models.DateRangeSelection, days []models.Weekday) bool {
	for _, d := range days {
		if !sel.Days[d] {
			return false
		}
	}
	return true
}

// AllFalse reports whether every listed weekday is excluded from the
// selection. Together with AllTrue this drives the group checkbox display:
// neither true means the group renders as partially selected.
func AllFalse(sel models.DateRangeSelection, days []models.Weekday) bool {
	for _, d := range days {
		if sel.Days[d] {
			return false
		}
	}
	return true
}
