package models

import (
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
)

type StepSource string

const (
	StepSourceSensor StepSource = "sensor"
	StepSourceManual StepSource = "manual"
)

// StepEntry is one addition to a day's step count.
type StepEntry struct {
	Stamp
	Steps  int        `json:"steps"`
	Source StepSource `json:"source"`
}

func NewStepEntry(at time.Time, steps int, source StepSource) StepEntry {
	return StepEntry{Stamp: NewStamp(at), Steps: steps, Source: source}
}

func (s *StepEntry) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	s.Stamp = decodeStamp(f)
	s.Steps = f.int("steps", 0)
	s.Source = StepSource(f.str("source", string(StepSourceSensor)))
	return nil
}

// StepData is the per-day step summary. It is keyed by its date, so saving
// a summary for a date that already has one replaces it.
type StepData struct {
	Date          string  `json:"date"`
	StepCount     int     `json:"step_count"`
	DistanceKm    float64 `json:"distance_km"`
	Calories      float64 `json:"calories"`
	ActiveMinutes int     `json:"active_minutes"`
	Timestamp     int64   `json:"timestamp"`
}

// NewStepData derives distance, calories and active time from a step count.
func NewStepData(date string, steps int, stepLengthCm float64, at time.Time) StepData {
	if stepLengthCm <= 0 {
		stepLengthCm = constants.DefaultStepLengthCm
	}
	return StepData{
		Date:          date,
		StepCount:     steps,
		DistanceKm:    float64(steps) * stepLengthCm / 100000,
		Calories:      float64(steps) * constants.CaloriesPerStep,
		ActiveMinutes: steps / constants.StepsPerActiveMinute,
		Timestamp:     at.UnixMilli(),
	}
}

func (s StepData) GetID() string       { return s.Date }
func (s StepData) GetDate() string     { return s.Date }
func (s StepData) GetTime() string     { return time.UnixMilli(s.Timestamp).Format(constants.TimeFormat) }
func (s StepData) GetTimestamp() int64 { return s.Timestamp }

func (s *StepData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	s.Date = f.str("date", "")
	s.StepCount = f.int("step_count", 0)
	s.DistanceKm = f.float("distance_km", 0)
	s.Calories = f.float("calories", 0)
	s.ActiveMinutes = f.int("active_minutes", 0)
	s.Timestamp = f.int64("timestamp", 0)
	return nil
}
