package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/opentransit/transitboard/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// RangePreset is a quick-select span expressed as an inclusive day count
type RangePreset struct {
	Label string `mapstructure:"label" json:"label"`
	Days  int    `mapstructure:"days" json:"days"`
}

// TimeWindowOption is one selectable time-of-day window. An empty Value is
// the all-day sentinel; otherwise Value is "HH:MM-HH:MM".
type TimeWindowOption struct {
	Label string `mapstructure:"label" json:"label"`
	Value string `mapstructure:"value" json:"value"`
}

// DayGroup names a subset of weekdays that can be toggled as a unit
type DayGroup struct {
	ID    string           `mapstructure:"id" json:"id"`
	Label string           `mapstructure:"label" json:"label"`
	Days  []models.Weekday `mapstructure:"days" json:"days"`
}

// Constants holds the fixed configuration consumed by the range controller
// and its UI. Loaded once at startup and never mutated afterwards.
type Constants struct {
	MaxRangeDays     int                `mapstructure:"max_range_days" json:"max_range_days"`         // Maximum span in days between start and end
	DefaultRangeDays int                `mapstructure:"default_range_days" json:"default_range_days"` // Inclusive span of the default selection
	Presets          []RangePreset      `mapstructure:"presets" json:"presets"`
	TimeWindows      []TimeWindowOption `mapstructure:"time_windows" json:"time_windows"`
	DayGroups        []DayGroup         `mapstructure:"day_groups" json:"day_groups"`
}

// ConfigName is the base name of the optional configuration file
const ConfigName = "transitboard"

// Defaults returns the built-in constants used when no configuration file
// overrides them.
func Defaults() Constants {
	return Constants{
		MaxRangeDays:     90,
		DefaultRangeDays: 7,
		Presets: []RangePreset{
			{Label: "Today", Days: 1},
			{Label: "Last 7 days", Days: 7},
			{Label: "Last 30 days", Days: 30},
			{Label: "Last 90 days", Days: 90},
		},
		TimeWindows: []TimeWindowOption{
			{Label: "All day", Value: ""},
			{Label: "AM peak", Value: "07:00-10:00"},
			{Label: "Midday", Value: "10:00-16:00"},
			{Label: "PM peak", Value: "16:00-19:00"},
			{Label: "Evening", Value: "19:00-23:00"},
			{Label: "Daytime", Value: "07:00-19:00"},
		},
		DayGroups: []DayGroup{
			{ID: "weekdays", Label: "Weekdays", Days: []models.Weekday{
				models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
			}},
			{ID: "weekend", Label: "Weekend", Days: []models.Weekday{
				models.Saturday, models.Sunday,
			}},
		},
	}
}

// Load reads the constants from the given configuration file, falling back
// to the defaults for anything the file does not set. An empty path looks
// for transitboard.yaml in the current directory; a missing file is not an
// error.
func Load(fs afero.Fs, path string) (Constants, error) {
	v := viper.New()
	v.SetFs(fs)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	defaults := Defaults()
	v.SetDefault("max_range_days", defaults.MaxRangeDays)
	v.SetDefault("default_range_days", defaults.DefaultRangeDays)
	v.SetDefault("presets", presetDefaults(defaults.Presets))
	v.SetDefault("time_windows", windowDefaults(defaults.TimeWindows))
	v.SetDefault("day_groups", groupDefaults(defaults.DayGroups))

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file is tolerated; a present-but-malformed file
		// must surface instead of silently yielding the defaults
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Constants{}, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var constants Constants
	if err := v.Unmarshal(&constants); err != nil {
		return Constants{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := constants.Validate(); err != nil {
		return Constants{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return constants, nil
}

// Validate checks the constants for internal consistency
func (c Constants) Validate() error {
	if c.MaxRangeDays <= 0 {
		return fmt.Errorf("max_range_days must be positive, got %d", c.MaxRangeDays)
	}
	if c.DefaultRangeDays < 1 || c.DefaultRangeDays > c.MaxRangeDays+1 {
		return fmt.Errorf("default_range_days %d outside [1, %d]", c.DefaultRangeDays, c.MaxRangeDays+1)
	}
	for _, p := range c.Presets {
		if p.Days < 1 {
			return fmt.Errorf("preset %q has non-positive day count %d", p.Label, p.Days)
		}
	}
	for _, w := range c.TimeWindows {
		if err := validateWindowValue(w.Value); err != nil {
			return fmt.Errorf("time window %q: %w", w.Label, err)
		}
	}
	for _, g := range c.DayGroups {
		if len(g.Days) == 0 {
			return fmt.Errorf("day group %q has no members", g.ID)
		}
		for _, d := range g.Days {
			if !models.IsValidWeekday(d) {
				return fmt.Errorf("day group %q references unknown weekday %q", g.ID, d)
			}
		}
	}
	return nil
}

// Group returns the day group with the given id, if any
func (c Constants) Group(id string) (DayGroup, bool) {
	for _, g := range c.DayGroups {
		if g.ID == id {
			return g, true
		}
	}
	return DayGroup{}, false
}

// WindowLabel returns the display label for a composite window value,
// falling back to the raw value for anything outside the option list.
func (c Constants) WindowLabel(value string) string {
	for _, w := range c.TimeWindows {
		if w.Value == value {
			return w.Label
		}
	}
	return value
}

// validateWindowValue checks a composite "HH:MM-HH:MM" value. The empty
// string (all day) is always valid.
func validateWindowValue(value string) error {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return fmt.Errorf("expected HH:MM-HH:MM, got %q", value)
	}
	start, err := time.Parse("15:04", parts[0])
	if err != nil {
		return fmt.Errorf("bad start time %q: %w", parts[0], err)
	}
	end, err := time.Parse("15:04", parts[1])
	if err != nil {
		return fmt.Errorf("bad end time %q: %w", parts[1], err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start %q not before end %q", parts[0], parts[1])
	}
	return nil
}

// Default-value shapes that viper can merge with file contents

func presetDefaults(presets []RangePreset) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(presets))
	for _, p := range presets {
		out = append(out, map[string]interface{}{"label": p.Label, "days": p.Days})
	}
	return out
}

func windowDefaults(windows []TimeWindowOption) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(windows))
	for _, w := range windows {
		out = append(out, map[string]interface{}{"label": w.Label, "value": w.Value})
	}
	return out
}

func groupDefaults(groups []DayGroup) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(groups))
	for _, g := range groups {
		days := make([]string, 0, len(g.Days))
		for _, d := range g.Days {
			days = append(days, string(d))
		}
		out = append(out, map[string]interface{}{"id": g.ID, "label": g.Label, "days": days})
	}
	return out
}
