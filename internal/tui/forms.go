package tui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/validation"
)

// ErrAborted is returned when the user leaves a form without submitting.
var ErrAborted = errors.New("cancelled")

func run(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

type MoodInput struct {
	Level int
	Notes string
}

func moodOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.MaxMoodLevel)
	for level := constants.MaxMoodLevel; level >= constants.MinMoodLevel; level-- {
		label := fmt.Sprintf("%s  %s", models.EmojiForLevel(level), models.MoodLabel(level))
		opts = append(opts, huh.NewOption(label, level))
	}
	return opts
}

func NewMoodForm(in *MoodInput) *huh.Form {
	if in.Level == 0 {
		in.Level = constants.DefaultMoodLevel
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How are you feeling?").
				Options(moodOptions()...).
				Value(&in.Level),
			huh.NewText().
				Title("Notes").
				Description("Optional").
				CharLimit(500).
				Value(&in.Notes),
		),
	)
}

// PromptMood asks for a mood level and notes.
func PromptMood() (MoodInput, error) {
	var in MoodInput
	if err := run(NewMoodForm(&in)); err != nil {
		return MoodInput{}, err
	}
	return in, nil
}

func goalValidator(metric models.Metric) func(string) error {
	return func(s string) error {
		n, err := validation.ParsePositiveInt("goal", s)
		if err != nil {
			return err
		}
		return validation.Goal(metric, n)
	}
}

func NewGoalForm(metric models.Metric, value *string) *huh.Form {
	b, _ := models.BoundsFor(metric)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Daily %s goal", metric)).
				Description(fmt.Sprintf("%d to %d %s", b.Min, b.Max, b.Unit)).
				Value(value).
				Validate(goalValidator(metric)),
		),
	)
}

// PromptGoal asks for a goal, prefilled with current.
func PromptGoal(metric models.Metric, current int) (int, error) {
	value := strconv.Itoa(current)
	if err := run(NewGoalForm(metric, &value)); err != nil {
		return 0, err
	}
	n, err := validation.ParsePositiveInt("goal", value)
	if err != nil {
		return 0, err
	}
	return n, validation.Goal(metric, n)
}

type scheduleInput struct {
	enabled  bool
	interval string
	start    string
	end      string
	days     []time.Weekday
}

func dayOptions() []huh.Option[time.Weekday] {
	opts := make([]huh.Option[time.Weekday], 0, 7)
	for _, d := range models.AllWeekdays() {
		opts = append(opts, huh.NewOption(d.String(), d))
	}
	return opts
}

func newScheduleForm(in *scheduleInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable hydration reminders?").
				Value(&in.enabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Interval (hours)").
				Value(&in.interval).
				Validate(func(s string) error {
					n, err := validation.ParsePositiveInt("interval", s)
					if err != nil {
						return err
					}
					return validation.ReminderInterval(n)
				}),
			huh.NewInput().
				Title("Start time (HH:MM)").
				Value(&in.start).
				Validate(func(s string) error { return validation.TimeOfDay("start", s) }),
			huh.NewInput().
				Title("End time (HH:MM)").
				Value(&in.end).
				Validate(func(s string) error { return validation.TimeOfDay("end", s) }),
			huh.NewMultiSelect[time.Weekday]().
				Title("Active days").
				Options(dayOptions()...).
				Value(&in.days),
		).WithHideFunc(func() bool { return !in.enabled }),
	)
}

// PromptSchedule edits a reminder schedule, starting from current.
func PromptSchedule(current models.ReminderSchedule) (models.ReminderSchedule, error) {
	in := scheduleInput{
		enabled:  current.Enabled,
		interval: strconv.Itoa(current.IntervalHours),
		start:    current.Start,
		end:      current.End,
		days:     current.ActiveDays,
	}
	if err := run(newScheduleForm(&in)); err != nil {
		return models.ReminderSchedule{}, err
	}
	return in.schedule(current)
}

func (in scheduleInput) schedule(current models.ReminderSchedule) (models.ReminderSchedule, error) {
	out := current
	out.Enabled = in.enabled
	if !in.enabled {
		return out, nil
	}
	n, err := validation.ParsePositiveInt("interval", in.interval)
	if err != nil {
		return models.ReminderSchedule{}, err
	}
	out.IntervalHours = n
	out.Start = in.start
	out.End = in.end
	out.ActiveDays = in.days
	return out, nil
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	var ok bool
	err := run(huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
	)))
	return ok, err
}
