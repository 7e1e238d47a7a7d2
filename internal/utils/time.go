package utils

import (
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
)

// Clock returns the current instant. Components take a Clock so tests can
// pin the date.
type Clock func() time.Time

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today formats the clock's current date.
func (c Clock) Today() string {
	return c().Format(constants.DateFormat)
}

// DaysBefore returns the date n days before date. Invalid input is returned unchanged.
func DaysBefore(date string, n int) string {
	d, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, -n).Format(constants.DateFormat)
}

// LastNDates returns the n dates ending at today, oldest first.
func LastNDates(today string, n int) []string {
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, DaysBefore(today, i))
	}
	return dates
}

// ShortWeekday returns the three-letter day name for a date, or "" if invalid.
func ShortWeekday(date string) string {
	d, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()[:3]
}

// AtDateTime combines a YYYY-MM-DD date and HH:MM time in loc.
func AtDateTime(date, hhmm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, date+" "+hhmm, loc)
}
