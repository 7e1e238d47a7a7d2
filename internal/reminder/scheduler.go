// Package reminder arms one-shot hydration reminders. Each firing re-arms the
// next one, so an interval change takes effect from the following wake.
package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/validation"
)

type Timer interface {
	Stop() bool
}

// Clock is the scheduler's time source.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Trigger says which wake fired.
type Trigger int

const (
	TriggerInterval Trigger = iota
	TriggerSnooze
)

func (t Trigger) String() string {
	if t == TriggerSnooze {
		return "snooze"
	}
	return "interval"
}

// Scheduler holds at most one interval wake and one snooze wake. The next
// fire instants are persisted so a process started later can tell whether
// a wake is due.
type Scheduler struct {
	ns    *storage.Namespace
	clock Clock

	mu     sync.Mutex
	onFire func(Trigger)
	timer  Timer
	snooze Timer
	// Bumped whenever a wake is replaced or cancelled. A timer whose
	// generation no longer matches fired too late to be stopped and is
	// ignored.
	timerGen  uint64
	snoozeGen uint64
}

func NewScheduler(ns *storage.Namespace, clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{ns: ns, clock: clock}
}

// OnFire sets the callback run when a wake fires. It runs on the timer's
// goroutine.
func (s *Scheduler) OnFire(fn func(Trigger)) {
	s.mu.Lock()
	s.onFire = fn
	s.mu.Unlock()
}

// Arm schedules one wake at now plus intervalHours, replacing any pending
// interval wake.
func (s *Scheduler) Arm(intervalHours int) error {
	if err := validation.ReminderInterval(intervalHours); err != nil {
		return err
	}
	return s.armAt(s.clock.Now().Add(time.Duration(intervalHours) * time.Hour))
}

func (s *Scheduler) armAt(at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startTimer(max(at.Sub(s.clock.Now()), 0))

	if err := s.ns.PutString(constants.KeyNextReminderFire, at.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to persist next reminder: %w", err)
	}
	logger.Debug("Reminder armed", "at", at.Format(time.RFC3339))
	return nil
}

// Disarm cancels every pending wake. It is safe to call when nothing is
// armed.
func (s *Scheduler) Disarm() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimers()
	if err := s.ns.Remove(constants.KeyNextReminderFire); err != nil {
		return err
	}
	return s.ns.Remove(constants.KeySnoozeUntil)
}

// Stop cancels pending timers but keeps the persisted instants, so a later
// RearmIfEnabled picks the chain up again.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimers()
}

// RearmIfEnabled restores the wake chain on process start. A persisted wake
// still in the future keeps its instant; a missed one is replaced by a wake
// one interval from now. A pending snooze is restored too. It reports whether
// a wake was armed.
func (s *Scheduler) RearmIfEnabled() (bool, error) {
	sched := s.Schedule()
	if !sched.Enabled {
		return false, nil
	}
	now := s.clock.Now()
	if until, ok := s.SnoozeUntil(); ok && until.After(now) {
		s.mu.Lock()
		if s.snooze == nil {
			s.startSnooze(until.Sub(now))
		}
		s.mu.Unlock()
	}
	if next, ok := s.NextFire(); ok && next.After(now) {
		return true, s.armAt(next)
	}
	return true, s.Arm(sched.IntervalHours)
}

// Snooze schedules a single extra wake after minutes. It does not touch the
// interval chain.
func (s *Scheduler) Snooze(minutes int) error {
	if err := validation.SnoozeMinutes(minutes); err != nil {
		return err
	}
	at := s.clock.Now().Add(time.Duration(minutes) * time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startSnooze(time.Duration(minutes) * time.Minute)
	return s.ns.PutString(constants.KeySnoozeUntil, at.Format(time.RFC3339))
}

// startTimer and startSnooze must be called with s.mu held.
func (s *Scheduler) startTimer(d time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = s.clock.AfterFunc(d, func() { s.fire(TriggerInterval, gen) })
}

func (s *Scheduler) startSnooze(d time.Duration) {
	if s.snooze != nil {
		s.snooze.Stop()
	}
	s.snoozeGen++
	gen := s.snoozeGen
	s.snooze = s.clock.AfterFunc(d, func() { s.fire(TriggerSnooze, gen) })
}

func (s *Scheduler) stopTimers() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.snooze != nil {
		s.snooze.Stop()
		s.snooze = nil
	}
	s.timerGen++
	s.snoozeGen++
}

func (s *Scheduler) fire(trigger Trigger, gen uint64) {
	s.mu.Lock()
	fn := s.onFire
	if trigger == TriggerSnooze {
		if gen != s.snoozeGen {
			s.mu.Unlock()
			logger.Debug("Ignoring superseded snooze wake")
			return
		}
		s.snooze = nil
		_ = s.ns.Remove(constants.KeySnoozeUntil)
	} else {
		if gen != s.timerGen {
			s.mu.Unlock()
			logger.Debug("Ignoring superseded reminder wake")
			return
		}
		s.timer = nil
	}
	s.mu.Unlock()

	logger.Debug("Reminder fired", "trigger", trigger)
	if fn != nil {
		fn(trigger)
	}
}

// Due returns the wake that has come due while no timer was running, if any.
// Cron-style hosts poll this instead of keeping a process alive.
func (s *Scheduler) Due() (Trigger, bool) {
	now := s.clock.Now()
	if at, ok := s.readTime(constants.KeySnoozeUntil); ok && !at.After(now) {
		return TriggerSnooze, true
	}
	if at, ok := s.NextFire(); ok && !at.After(now) {
		return TriggerInterval, true
	}
	return TriggerInterval, false
}

// ClearSnooze drops a persisted snooze wake.
func (s *Scheduler) ClearSnooze() error {
	return s.ns.Remove(constants.KeySnoozeUntil)
}

func (s *Scheduler) NextFire() (time.Time, bool) {
	return s.readTime(constants.KeyNextReminderFire)
}

func (s *Scheduler) SnoozeUntil() (time.Time, bool) {
	return s.readTime(constants.KeySnoozeUntil)
}

func (s *Scheduler) readTime(key string) (time.Time, bool) {
	raw := s.ns.GetString(key, "")
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		logger.Warn("Ignoring malformed reminder time", "key", key, "value", raw)
		return time.Time{}, false
	}
	return t, true
}

// Schedule reads the stored schedule, substituting defaults for missing or
// malformed fields.
func (s *Scheduler) Schedule() models.ReminderSchedule {
	def := models.DefaultReminderSchedule()
	sched := models.ReminderSchedule{
		Enabled:       s.ns.GetBool(constants.SettingReminderEnabled, def.Enabled),
		IntervalHours: s.ns.GetInt(constants.SettingReminderInterval, def.IntervalHours),
		Start:         s.ns.GetString(constants.SettingReminderStart, def.Start),
		End:           s.ns.GetString(constants.SettingReminderEnd, def.End),
		ActiveDays:    def.ActiveDays,
	}
	if validation.ReminderInterval(sched.IntervalHours) != nil {
		sched.IntervalHours = def.IntervalHours
	}
	if s.ns.Has(constants.SettingReminderDays) {
		days := storage.GetList[time.Weekday](s.ns, constants.SettingReminderDays)
		sched.ActiveDays = days[:0]
		for _, d := range days {
			if d >= time.Sunday && d <= time.Saturday {
				sched.ActiveDays = append(sched.ActiveDays, d)
			}
		}
	}
	return sched
}

// SaveSchedule validates and stores sched, then arms or disarms to match.
func (s *Scheduler) SaveSchedule(sched models.ReminderSchedule) error {
	if err := validation.ReminderInterval(sched.IntervalHours); err != nil {
		return err
	}
	if err := validation.TimeOfDay("start", sched.Start); err != nil {
		return err
	}
	if err := validation.TimeOfDay("end", sched.End); err != nil {
		return err
	}

	err := s.ns.Update(func() error {
		if err := s.ns.PutBool(constants.SettingReminderEnabled, sched.Enabled); err != nil {
			return err
		}
		if err := s.ns.PutInt(constants.SettingReminderInterval, sched.IntervalHours); err != nil {
			return err
		}
		if err := s.ns.PutString(constants.SettingReminderStart, sched.Start); err != nil {
			return err
		}
		if err := s.ns.PutString(constants.SettingReminderEnd, sched.End); err != nil {
			return err
		}
		return storage.PutList(s.ns, constants.SettingReminderDays, sched.ActiveDays)
	})
	if err != nil {
		return fmt.Errorf("failed to save reminder schedule: %w", err)
	}

	if sched.Enabled {
		return s.Arm(sched.IntervalHours)
	}
	return s.Disarm()
}

// StatusText summarizes the schedule and the next wake.
func (s *Scheduler) StatusText() string {
	sched := s.Schedule()
	text := sched.StatusText()
	if !sched.Enabled {
		return text
	}
	if next, ok := s.NextFire(); ok {
		text += fmt.Sprintf(" (next at %s)", next.In(s.clock.Now().Location()).Format(constants.TimeFormat))
	}
	return text
}
