package daterange

import (
	"testing"
	"time"

	"github.com/opentransit/transitboard/internal/config"
	"github.com/opentransit/transitboard/internal/models"
)

// fixedNow is the evaluation date used throughout: Saturday 2025-03-15
var fixedNow = time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)

func today() time.Time {
	return models.Day(fixedNow)
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewWithClock(config.Defaults(), func() time.Time { return fixedNow })
}

// checkInvariants asserts the selection invariants that must hold after
// every operation
func checkInvariants(t *testing.T, c *Controller) {
	t.Helper()
	sel := c.Selection()

	if sel.EndDate.After(today()) {
		t.Errorf("end date %s after today %s", models.FormatDate(sel.EndDate), models.FormatDate(today()))
	}
	if sel.StartDate.After(sel.EndDate) {
		t.Errorf("start date %s after end date %s", models.FormatDate(sel.StartDate), models.FormatDate(sel.EndDate))
	}
	if span := models.DaysBetween(sel.StartDate, sel.EndDate); span > c.Constants().MaxRangeDays {
		t.Errorf("span %d days exceeds maximum %d", span, c.Constants().MaxRangeDays)
	}
	if (sel.StartTime == "") != (sel.EndTime == "") {
		t.Errorf("time window half-set: start %q, end %q", sel.StartTime, sel.EndTime)
	}
	if len(sel.Days) != len(models.AllWeekdays) {
		t.Errorf("expected %d weekday entries, got %d", len(models.AllWeekdays), len(sel.Days))
	}
	for _, day := range models.AllWeekdays {
		if _, ok := sel.Days[day]; !ok {
			t.Errorf("weekday %q missing from selection", day)
		}
	}
}

func TestDefaultSelection(t *testing.T) {
	c := newTestController(t)
	sel := c.Selection()

	if !sel.EndDate.Equal(today()) {
		t.Errorf("default end date = %s, want today", models.FormatDate(sel.EndDate))
	}
	wantStart := today().AddDate(0, 0, -6)
	if !sel.StartDate.Equal(wantStart) {
		t.Errorf("default start date = %s, want %s", models.FormatDate(sel.StartDate), models.FormatDate(wantStart))
	}
	if !sel.AllDay() {
		t.Errorf("default selection has time window %q-%q, want all day", sel.StartTime, sel.EndTime)
	}
	for _, day := range models.AllWeekdays {
		if !sel.DayIncluded(day) {
			t.Errorf("default selection excludes %q", day)
		}
	}
	checkInvariants(t, c)
}

func TestSetEndDate(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time // Loaded before the call (zero keeps default)
		end       time.Time
		newEnd    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "future end clamps to today",
			newEnd:    today().AddDate(0, 0, 10),
			wantStart: today().AddDate(0, 0, -6),
			wantEnd:   today(),
		},
		{
			name:      "end before start collapses range to one day",
			newEnd:    today().AddDate(0, 0, -30),
			wantStart: today().AddDate(0, 0, -30),
			wantEnd:   today().AddDate(0, 0, -30),
		},
		{
			name:      "span above maximum pulls start forward",
			start:     today().AddDate(0, 0, -200),
			end:       today().AddDate(0, 0, -150),
			newEnd:    today(),
			wantStart: today().AddDate(0, 0, -90),
			wantEnd:   today(),
		},
		{
			name:      "shrinking end within range keeps start",
			newEnd:    today().AddDate(0, 0, -2),
			wantStart: today().AddDate(0, 0, -6),
			wantEnd:   today().AddDate(0, 0, -2),
		},
		{
			name:      "zero date is a no-op",
			newEnd:    time.Time{},
			wantStart: today().AddDate(0, 0, -6),
			wantEnd:   today(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			if !tt.start.IsZero() {
				c.Load(models.NewSelection(tt.start, tt.end))
			}

			c.SetEndDate(tt.newEnd)

			sel := c.Selection()
			if !sel.StartDate.Equal(tt.wantStart) {
				t.Errorf("start = %s, want %s", models.FormatDate(sel.StartDate), models.FormatDate(tt.wantStart))
			}
			if !sel.EndDate.Equal(tt.wantEnd) {
				t.Errorf("end = %s, want %s", models.FormatDate(sel.EndDate), models.FormatDate(tt.wantEnd))
			}
			checkInvariants(t, c)
		})
	}
}

func TestSetStartDate(t *testing.T) {
	tests := []struct {
		name      string
		newStart  time.Time
		wantStart time.Time
	}{
		{
			name:      "plain move within range",
			newStart:  today().AddDate(0, 0, -3),
			wantStart: today().AddDate(0, 0, -3),
		},
		{
			name:      "future start clamps to today",
			newStart:  today().AddDate(0, 0, 5),
			wantStart: today(),
		},
		{
			name:      "start beyond maximum span clamps to earliest allowed",
			newStart:  today().AddDate(0, 0, -500),
			wantStart: today().AddDate(0, 0, -90),
		},
		{
			name:      "zero date is a no-op",
			newStart:  time.Time{},
			wantStart: today().AddDate(0, 0, -6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			c.SetStartDate(tt.newStart)

			sel := c.Selection()
			if !sel.StartDate.Equal(tt.wantStart) {
				t.Errorf("start = %s, want %s", models.FormatDate(sel.StartDate), models.FormatDate(tt.wantStart))
			}
			if !sel.EndDate.Equal(today()) {
				t.Errorf("end moved to %s, want today untouched", models.FormatDate(sel.EndDate))
			}
			checkInvariants(t, c)
		})
	}
}

func TestSetStartDateAfterEnd(t *testing.T) {
	c := newTestController(t)
	c.SetEndDate(today().AddDate(0, 0, -10))

	// Start past the end date clamps to the end date, not to today
	c.SetStartDate(today().AddDate(0, 0, -5))

	sel := c.Selection()
	if !sel.StartDate.Equal(sel.EndDate) {
		t.Errorf("start = %s, want end date %s", models.FormatDate(sel.StartDate), models.FormatDate(sel.EndDate))
	}
	checkInvariants(t, c)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		name     string
		daysBack int
		wantSpan int // Inclusive day count
	}{
		{name: "seven day preset", daysBack: 7, wantSpan: 7},
		{name: "single day preset", daysBack: 1, wantSpan: 1},
		{name: "zero clamps to one day", daysBack: 0, wantSpan: 1},
		{name: "negative clamps to one day", daysBack: -3, wantSpan: 1},
		{name: "oversized clamps to maximum plus one", daysBack: 1000, wantSpan: 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			c.ApplyPreset(tt.daysBack)

			sel := c.Selection()
			if !sel.EndDate.Equal(today()) {
				t.Errorf("end = %s, want today", models.FormatDate(sel.EndDate))
			}
			if got := sel.SpanDays(); got != tt.wantSpan {
				t.Errorf("span = %d days, want %d", got, tt.wantSpan)
			}
			checkInvariants(t, c)
		})
	}
}

func TestSetTimeWindow(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantStart string
		wantEnd   string
	}{
		{name: "composite value splits verbatim", raw: "09:00-17:00", wantStart: "09:00", wantEnd: "17:00"},
		{name: "all day sentinel clears both", raw: "", wantStart: "", wantEnd: ""},
		{name: "value without separator falls back to all day", raw: "garbage", wantStart: "", wantEnd: ""},
		{name: "too many fields falls back to all day", raw: "07:00-10:00-12:00", wantStart: "", wantEnd: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			c.SetTimeWindow("07:00-10:00") // Start from a non-default window
			c.SetTimeWindow(tt.raw)

			sel := c.Selection()
			if sel.StartTime != tt.wantStart || sel.EndTime != tt.wantEnd {
				t.Errorf("window = %q-%q, want %q-%q", sel.StartTime, sel.EndTime, tt.wantStart, tt.wantEnd)
			}
			checkInvariants(t, c)
		})
	}
}

func TestSetDay(t *testing.T) {
	c := newTestController(t)

	c.SetDay(models.Wednesday, false)
	if c.Selection().DayIncluded(models.Wednesday) {
		t.Error("wednesday still included after SetDay(false)")
	}

	c.SetDay(models.Wednesday, true)
	if !c.Selection().DayIncluded(models.Wednesday) {
		t.Error("wednesday not included after SetDay(true)")
	}

	// Unknown identifiers are ignored, keeping exactly seven entries
	c.SetDay(models.Weekday("funday"), true)
	checkInvariants(t, c)
}

func TestToggleGroup(t *testing.T) {
	constants := config.Defaults()
	weekdays, ok := constants.Group("weekdays")
	if !ok {
		t.Fatal("weekdays group missing from defaults")
	}

	tests := []struct {
		name     string
		prepare  func(c *Controller)
		wantDays bool
	}{
		{
			name:     "all true becomes all false",
			prepare:  func(c *Controller) {},
			wantDays: false,
		},
		{
			name: "all false becomes all true",
			prepare: func(c *Controller) {
				for _, d := range weekdays.Days {
					c.SetDay(d, false)
				}
			},
			wantDays: true,
		},
		{
			name: "mixed becomes all true",
			prepare: func(c *Controller) {
				for _, d := range weekdays.Days {
					c.SetDay(d, false)
				}
				c.SetDay(models.Monday, true)
			},
			wantDays: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			tt.prepare(c)

			c.ToggleGroup(weekdays)

			sel := c.Selection()
			for _, d := range weekdays.Days {
				if sel.DayIncluded(d) != tt.wantDays {
					t.Errorf("day %q = %v, want %v", d, sel.DayIncluded(d), tt.wantDays)
				}
			}
			checkInvariants(t, c)
		})
	}
}

func TestToggleGroupDoubleFlip(t *testing.T) {
	c := newTestController(t)
	weekdays, _ := c.Constants().Group("weekdays")

	c.ToggleGroup(weekdays)
	c.ToggleGroup(weekdays)

	sel := c.Selection()
	for _, d := range weekdays.Days {
		if !sel.DayIncluded(d) {
			t.Errorf("day %q excluded after double toggle", d)
		}
	}
	// The weekend is untouched either way
	if !sel.DayIncluded(models.Saturday) || !sel.DayIncluded(models.Sunday) {
		t.Error("weekend days changed by weekdays group toggle")
	}
}

func TestPredicates(t *testing.T) {
	c := newTestController(t)
	weekdays, _ := c.Constants().Group("weekdays")

	if !AllTrue(c.Selection(), weekdays.Days) {
		t.Error("AllTrue false on default selection")
	}
	if AllFalse(c.Selection(), weekdays.Days) {
		t.Error("AllFalse true on default selection")
	}

	c.SetDay(models.Monday, false)
	sel := c.Selection()
	if AllTrue(sel, weekdays.Days) || AllFalse(sel, weekdays.Days) {
		t.Error("mixed state should satisfy neither predicate")
	}
}

func TestReset(t *testing.T) {
	c := newTestController(t)
	want := c.Selection()

	c.ApplyPreset(30)
	c.SetTimeWindow("16:00-19:00")
	c.SetDay(models.Sunday, false)

	c.Reset()

	if got := c.Selection(); !got.Equal(want) {
		t.Errorf("after reset selection = %s, want default %s", got, want)
	}
	checkInvariants(t, c)
}

func TestLoadIsolation(t *testing.T) {
	c := newTestController(t)

	external := models.NewSelection(today().AddDate(0, 0, -20), today().AddDate(0, 0, -10))
	c.Load(external)

	// Mutating the source after Load must not reach the controller
	external.Days[models.Monday] = false
	if !c.Selection().DayIncluded(models.Monday) {
		t.Error("edit to loaded source leaked into controller state")
	}

	// And mutating a returned copy must not reach the controller either
	got := c.Selection()
	got.Days[models.Friday] = false
	if !c.Selection().DayIncluded(models.Friday) {
		t.Error("edit to returned copy leaked into controller state")
	}
}
