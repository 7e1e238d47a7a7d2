// Package validation checks user input before any state is mutated.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
)

// ErrInvalidInput is wrapped by every InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes rejected user input in words suitable for display.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputError) UserMessage() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParsePositiveInt parses a whole number typed by the user.
func ParsePositiveInt(field, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, invalid(field, "Please enter a valid number")
	}
	if n <= 0 {
		return 0, invalid(field, "Please enter a number greater than 0")
	}
	return n, nil
}

func inRange(field string, v, min, max int, unit string) error {
	if v < min || v > max {
		return invalid(field, "%s", strings.TrimSpace(fmt.Sprintf("Please enter a value between %d and %d %s", min, max, unit)))
	}
	return nil
}

// Goal checks a goal value against the bounds of its metric.
func Goal(m models.Metric, v int) error {
	b, ok := models.BoundsFor(m)
	if !ok {
		return invalid("goal", "Unknown metric %q", m)
	}
	return inRange(string(m)+" goal", v, b.Min, b.Max, b.Unit)
}

func WaterAmount(ml int) error {
	return inRange("amount", ml, constants.MinWaterAmount, constants.MaxWaterAmount, "ml")
}

func ManualSteps(n int) error {
	return inRange("steps", n, constants.MinManualSteps, constants.MaxManualSteps, "steps")
}

func MoodLevel(level int) error {
	return inRange("mood level", level, constants.MinMoodLevel, constants.MaxMoodLevel, "")
}

func ReminderInterval(hours int) error {
	return inRange("interval", hours, constants.MinReminderInterval, constants.MaxReminderInterval, "hours")
}

func SnoozeMinutes(m int) error {
	return inRange("snooze", m, 1, 24*60, "minutes")
}

func StepLength(cm float64) error {
	if cm < constants.MinStepLengthCm || cm > constants.MaxStepLengthCm {
		return invalid("step length", "Please enter a step length between %.0f and %.0f cm", constants.MinStepLengthCm, constants.MaxStepLengthCm)
	}
	return nil
}

// TimeOfDay checks an HH:MM string.
func TimeOfDay(field, s string) error {
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return invalid(field, "Please use HH:MM, got %q", s)
	}
	return nil
}

// Date checks a YYYY-MM-DD string.
func Date(s string) error {
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return invalid("date", "Please use YYYY-MM-DD, got %q", s)
	}
	return nil
}

// NonEmpty rejects blank text.
func NonEmpty(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return invalid(field, "Please enter a %s", field)
	}
	return nil
}
