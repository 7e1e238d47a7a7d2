// Package wellness holds the domain managers for mood, hydration, steps,
// habits and settings. Each manager is a thin layer over a record store in
// its own storage namespace.
package wellness

import (
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/utils"
)

// Managers bundles every manager built over one Prefs instance.
type Managers struct {
	Mood      *MoodManager
	Hydration *HydrationManager
	Steps     *StepManager
	Habits    *HabitManager
	Settings  *SettingsManager
}

func NewManagers(prefs *storage.Prefs, clock utils.Clock) *Managers {
	settings := NewSettingsManager(prefs)
	return &Managers{
		Mood:      NewMoodManager(prefs, clock),
		Hydration: NewHydrationManager(prefs, settings, clock),
		Steps:     NewStepManager(prefs, settings, clock),
		Habits:    NewHabitManager(prefs, clock),
		Settings:  settings,
	}
}

// DailyTotal is a value attributed to one date.
type DailyTotal struct {
	Date  string
	Value int
}

// DailyAverage is a mean attributed to a date or a labeled interval.
type DailyAverage struct {
	Label   string
	Average float64
}
