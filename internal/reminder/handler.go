package reminder

import (
	"fmt"
	"math/rand/v2"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/wellness"
)

var messages = []string{
	"Time for a glass of water!",
	"Stay hydrated, your body will thank you.",
	"A quick sip keeps the afternoon slump away.",
	"Water break! Stretch your legs while you're up.",
	"Small sips add up. Grab your bottle.",
}

type Notifier interface {
	Notify(title, text string) error
}

// Handler reacts to scheduler wakes. It re-arms the chain with the interval
// stored at fire time, then shows a reminder if the schedule's weekday and
// time window allow it.
type Handler struct {
	sched     *Scheduler
	hydration *wellness.HydrationManager
	notifier  Notifier
	pick      func(n int) int
}

func NewHandler(sched *Scheduler, hydration *wellness.HydrationManager, notifier Notifier) *Handler {
	h := &Handler{sched: sched, hydration: hydration, notifier: notifier, pick: rand.IntN}
	sched.OnFire(func(t Trigger) {
		if _, err := h.Fire(t); err != nil {
			logger.Warn("Reminder delivery failed", "trigger", t, "error", err)
		}
	})
	return h
}

// Fire handles one wake and reports whether a reminder was shown.
func (h *Handler) Fire(trigger Trigger) (bool, error) {
	sched := h.sched.Schedule()
	if !sched.Enabled {
		logger.Debug("Reminder fired while disabled")
		return false, h.sched.Disarm()
	}

	if trigger == TriggerInterval {
		if err := h.sched.Arm(sched.IntervalHours); err != nil {
			logger.Warn("Failed to re-arm reminder", "error", err)
		}
	} else if err := h.sched.ClearSnooze(); err != nil {
		logger.Warn("Failed to clear snooze", "error", err)
	}

	now := h.sched.clock.Now()
	if trigger == TriggerInterval && !sched.Allows(now) {
		logger.Debug("Reminder outside active window", "at", now.Format(constants.TimeFormat))
		return false, nil
	}

	if h.notifier == nil {
		return false, nil
	}
	if err := h.notifier.Notify("Time to hydrate", h.Message()); err != nil {
		return false, err
	}
	return true, nil
}

// Message picks a motivational line and appends today's progress.
func (h *Handler) Message() string {
	msg := messages[h.pick(len(messages))]
	intake := h.hydration.TodayIntake()
	goal := h.hydration.Goal()
	return fmt.Sprintf("%s %d of %d ml so far (%d%%).", msg, intake, goal, models.Percentage(intake, goal))
}

// DrinkWater logs one default glass, the reminder's quick action.
func (h *Handler) DrinkWater() (models.HydrationLog, error) {
	return h.hydration.Add(constants.DefaultGlassML)
}
