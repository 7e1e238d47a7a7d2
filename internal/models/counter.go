package models

import "github.com/julianstephens/wellnest/internal/constants"

// BaselineUnset marks a counter whose sensor baseline has not been captured
// for the current day.
const BaselineUnset int64 = -1

// DailyCounter is a running daily total with the date it belongs to.
type DailyCounter struct {
	Date         string `json:"date"`
	RunningTotal int    `json:"running_total"`
	Baseline     int64  `json:"baseline"`
}

func (c DailyCounter) HasBaseline() bool {
	return c.Baseline != BaselineUnset
}

// WeeklyRing holds one archived value per weekday, indexed Sunday=0.
// Each slot holds the most recent archived day with that weekday.
type WeeklyRing [constants.DaysPerWeek]int

func (w WeeklyRing) Total() int {
	sum := 0
	for _, v := range w {
		sum += v
	}
	return sum
}
