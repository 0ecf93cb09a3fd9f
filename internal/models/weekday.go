package models

// Weekday identifies a day of the week ("mon" .. "sun")
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// AllWeekdays lists the seven weekday identifiers in display order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayLabels maps weekday identifiers to their display labels
var WeekdayLabels = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// IsValidWeekday checks if the given identifier is one of the seven weekdays
func IsValidWeekday(day Weekday) bool {
	_, ok := WeekdayLabels[day]
	return ok
}
