package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
)

// ReminderSchedule configures the hydration reminder chain.
type ReminderSchedule struct {
	Enabled       bool           `json:"enabled"`
	IntervalHours int            `json:"interval_hours"`
	Start         string         `json:"start"` // HH:MM
	End           string         `json:"end"`   // HH:MM
	ActiveDays    []time.Weekday `json:"active_days"`
}

func DefaultReminderSchedule() ReminderSchedule {
	return ReminderSchedule{
		Enabled:       constants.DefaultReminderEnabled,
		IntervalHours: constants.DefaultReminderInterval,
		Start:         constants.DefaultReminderStart,
		End:           constants.DefaultReminderEnd,
		ActiveDays:    AllWeekdays(),
	}
}

func AllWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// Interval returns the re-arm interval.
func (r ReminderSchedule) Interval() time.Duration {
	return time.Duration(r.IntervalHours) * time.Hour
}

// Allows reports whether a reminder may be shown at t: t's weekday must be
// active and its time of day must fall in [Start, End). A window whose end
// is not after its start wraps past midnight.
func (r ReminderSchedule) Allows(t time.Time) bool {
	active := false
	for _, d := range r.ActiveDays {
		if d == t.Weekday() {
			active = true
			break
		}
	}
	if !active {
		return false
	}

	start, errS := minutesOfDay(r.Start)
	end, errE := minutesOfDay(r.End)
	if errS != nil || errE != nil {
		return true
	}
	now := t.Hour()*60 + t.Minute()
	if start < end {
		return now >= start && now < end
	}
	return now >= start || now < end
}

// StatusText is the one-line summary shown in settings views.
func (r ReminderSchedule) StatusText() string {
	if !r.Enabled {
		return "Disabled"
	}
	if r.IntervalHours == 1 {
		return "Every 1 hour"
	}
	return fmt.Sprintf("Every %d hours", r.IntervalHours)
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
