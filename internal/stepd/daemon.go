// Package stepd turns a lifetime step counter reported by a sensor into a
// persisted "steps today" value and pushes it to at most one listener.
package stepd

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/wellnest/internal/daybound"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
	"github.com/julianstephens/wellnest/internal/wellness"
)

type State int

const (
	StateStopped State = iota
	// StateDegraded runs without live sensor updates. Manual additions
	// still work.
	StateDegraded
	StateUninitialized
	StateTracking
)

func (s State) String() string {
	switch s {
	case StateDegraded:
		return "degraded"
	case StateUninitialized:
		return "uninitialized"
	case StateTracking:
		return "tracking"
	}
	return "stopped"
}

// Listener receives the new total. It runs on the goroutine that produced
// the update and must not call Bind or Unbind.
type Listener func(steps int)

// LiveNotifier shows the ongoing "steps today" status.
type LiveNotifier interface {
	SetStatus(text string) error
}

type Options struct {
	Counter  *daybound.Tracker
	Steps    *wellness.StepManager
	Sensor   Sensor
	Perms    Permissions
	Notifier LiveNotifier
	Clock    utils.Clock
}

type Daemon struct {
	counter  *daybound.Tracker
	steps    *wellness.StepManager
	sensor   Sensor
	perms    Permissions
	notifier LiveNotifier
	clock    utils.Clock

	mu            sync.Mutex
	listener      Listener
	notifyEnabled bool
	state         State
	cancel        context.CancelFunc
	done          chan struct{}
}

func New(opts Options) *Daemon {
	if opts.Perms == nil {
		opts.Perms = StaticPermissions{Sensor: true, Notifications: true}
	}
	if opts.Clock == nil {
		opts.Clock = utils.Clock(nowLocal)
	}
	d := &Daemon{
		counter:  opts.Counter,
		steps:    opts.Steps,
		sensor:   opts.Sensor,
		perms:    opts.Perms,
		notifier: opts.Notifier,
		clock:    opts.Clock,
	}
	d.refreshNotifyLocked()
	return d
}

// Start subscribes to the sensor and returns immediately. A missing sensor
// grant or a sensor that cannot be opened leaves the daemon degraded.
// Calling Start on a running daemon does nothing.
func (d *Daemon) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.done != nil {
		return
	}
	d.refreshNotifyLocked()
	if _, err := d.counter.CheckAndRollover(d.clock.Today()); err != nil {
		logger.Warn("Failed to check day boundary", "error", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	if d.sensor == nil || !d.perms.SensorGranted() {
		logger.Warn("Step sensor access not granted, counting manual steps only")
		d.state = StateDegraded
		close(d.done)
		return
	}

	readings, err := d.sensor.Subscribe(runCtx)
	if err != nil {
		logger.Warn("Failed to open step sensor, counting manual steps only", "sensor", d.sensor.Name(), "error", err)
		d.state = StateDegraded
		close(d.done)
		return
	}

	d.state = StateUninitialized
	logger.Info("Step daemon started", "sensor", d.sensor.Name())
	go d.run(runCtx, readings, d.done)
}

func (d *Daemon) run(ctx context.Context, readings <-chan int64, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-readings:
			if !ok {
				logger.Warn("Step sensor closed", "sensor", d.sensor.Name())
				d.mu.Lock()
				if d.state != StateStopped {
					d.state = StateDegraded
				}
				d.mu.Unlock()
				return
			}
			if _, err := d.HandleReading(raw); err != nil {
				logger.Warn("Failed to handle step reading", "raw", raw, "error", err)
			}
		}
	}
}

// Stop cancels the sensor subscription, waits for the reader to exit and
// flushes today's summary. Stopping a stopped daemon does nothing.
func (d *Daemon) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.state = StateStopped
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	today := d.clock.Today()
	if d.counter.LastDate() == today {
		if _, err := d.steps.UpdateDay(today, d.counter.Total()); err != nil {
			logger.Warn("Failed to flush step summary", "error", err)
		}
	}
	logger.Info("Step daemon stopped")
}

func (d *Daemon) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// HandleReading applies one raw lifetime reading and returns today's total.
// The first reading of a day becomes the baseline. A reading below the
// baseline means the sensor restarted and becomes the new baseline.
func (d *Daemon) HandleReading(raw int64) (int, error) {
	today := d.clock.Today()
	if _, err := d.counter.CheckAndRollover(today); err != nil {
		return 0, err
	}

	var total int
	changed := false
	err := d.counter.Update(func() error {
		baseline := d.counter.Baseline()
		if baseline == models.BaselineUnset || raw < baseline {
			if baseline != models.BaselineUnset {
				logger.Info("Step sensor reading below baseline, resetting baseline", "baseline", baseline, "raw", raw)
			}
			if err := d.counter.SetBaseline(raw); err != nil {
				return err
			}
			baseline = raw
		}

		total = int(raw - baseline)
		if total == d.counter.Total() {
			return nil
		}
		changed = true
		return d.counter.SetTotal(total)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record step reading: %w", err)
	}

	d.mu.Lock()
	if d.state == StateUninitialized {
		d.state = StateTracking
	}
	d.mu.Unlock()

	if changed {
		d.publish(today, total)
	}
	return total, nil
}

// AddManualSteps adds n to today's total without touching the sensor
// baseline. The next sensor reading recomputes the total from the baseline
// alone, so a manual boost stays hidden until the sensor delta passes it.
func (d *Daemon) AddManualSteps(n int) (int, error) {
	if err := validation.ManualSteps(n); err != nil {
		return 0, err
	}
	today := d.clock.Today()
	if _, err := d.counter.CheckAndRollover(today); err != nil {
		return 0, err
	}

	total, err := d.counter.Add(n)
	if err != nil {
		return 0, fmt.Errorf("failed to add steps: %w", err)
	}
	if err := d.steps.RecordEntry(models.NewStepEntry(d.clock(), n, models.StepSourceManual)); err != nil {
		logger.Warn("Failed to record manual step entry", "error", err)
	}
	d.publish(today, total)
	return total, nil
}

// CurrentSteps returns today's total, rolling the counter over first.
func (d *Daemon) CurrentSteps() int {
	if _, err := d.counter.CheckAndRollover(d.clock.Today()); err != nil {
		logger.Warn("Failed to check day boundary", "error", err)
	}
	return d.counter.Total()
}

// Bind installs fn as the only listener, replacing any previous one, and
// returns the current total. Updates missed while unbound are not replayed.
func (d *Daemon) Bind(fn Listener) int {
	d.mu.Lock()
	d.listener = fn
	d.mu.Unlock()
	return d.CurrentSteps()
}

func (d *Daemon) Unbind() {
	d.mu.Lock()
	d.listener = nil
	d.mu.Unlock()
}

func (d *Daemon) refreshNotifyLocked() {
	d.notifyEnabled = d.notifier != nil && d.perms.NotificationsGranted()
}

func (d *Daemon) publish(date string, total int) {
	if _, err := d.steps.UpdateDay(date, total); err != nil {
		logger.Warn("Failed to save step summary", "date", date, "error", err)
	}

	d.mu.Lock()
	fn := d.listener
	notify := d.notifyEnabled
	d.mu.Unlock()

	if fn != nil {
		fn(total)
	}
	if !notify {
		return
	}
	if err := d.notifier.SetStatus(fmt.Sprintf("Today: %d steps", total)); err != nil {
		logger.Warn("Live step notification failed, disabling it", "error", err)
		d.mu.Lock()
		d.notifyEnabled = false
		d.mu.Unlock()
	}
}
