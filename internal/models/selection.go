package models

import (
	"fmt"
	"time"
)

// DateRangeSelection represents one date/time range selection: a calendar
// date span, an optional time-of-day window, and per-weekday inclusion flags.
type DateRangeSelection struct {
	StartDate time.Time        `json:"start_date"` // Lower bound (inclusive calendar date)
	EndDate   time.Time        `json:"end_date"`   // Upper bound (inclusive calendar date)
	StartTime string           `json:"start_time"` // HH:MM, empty means all day
	EndTime   string           `json:"end_time"`   // HH:MM, empty means all day
	Days      map[Weekday]bool `json:"days"`       // Inclusion flag per weekday
}

// NewSelection creates a selection spanning the given inclusive dates with
// all weekdays included and no time-of-day window.
func NewSelection(start, end time.Time) DateRangeSelection {
	days := make(map[Weekday]bool, len(AllWeekdays))
	for _, d := range AllWeekdays {
		days[d] = true
	}
	return DateRangeSelection{
		StartDate: Day(start),
		EndDate:   Day(end),
		Days:      days,
	}
}

// AllDay reports whether no time-of-day window is active
func (s DateRangeSelection) AllDay() bool {
	return s.StartTime == "" && s.EndTime == ""
}

// SpanDays returns the inclusive length of the date span in calendar days
func (s DateRangeSelection) SpanDays() int {
	return DaysBetween(s.StartDate, s.EndDate) + 1
}

// DayIncluded reports whether the given weekday is included
func (s DateRangeSelection) DayIncluded(day Weekday) bool {
	return s.Days[day]
}

// Clone returns a deep copy of the selection
func (s DateRangeSelection) Clone() DateRangeSelection {
	days := make(map[Weekday]bool, len(s.Days))
	for d, on := range s.Days {
		days[d] = on
	}
	out := s
	out.Days = days
	return out
}

// Equal reports whether two selections are identical field for field
func (s DateRangeSelection) Equal(other DateRangeSelection) bool {
	if !s.StartDate.Equal(other.StartDate) || !s.EndDate.Equal(other.EndDate) {
		return false
	}
	if s.StartTime != other.StartTime || s.EndTime != other.EndTime {
		return false
	}
	if len(s.Days) != len(other.Days) {
		return false
	}
	for d, on := range s.Days {
		if other.Days[d] != on {
			return false
		}
	}
	return true
}

// TimeWindowValue returns the composite "HH:MM-HH:MM" encoding of the active
// time window, or the empty string for all day.
func (s DateRangeSelection) TimeWindowValue() string {
	if s.AllDay() {
		return ""
	}
	return s.StartTime + "-" + s.EndTime
}

// String returns a human-readable representation of the selection
func (s DateRangeSelection) String() string {
	window := "all day"
	if !s.AllDay() {
		window = s.StartTime + "-" + s.EndTime
	}
	return fmt.Sprintf("%s .. %s (%s)", FormatDate(s.StartDate), FormatDate(s.EndDate), window)
}
