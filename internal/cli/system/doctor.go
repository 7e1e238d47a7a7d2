package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wellnest/internal/backup"
	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/config"
	"github.com/julianstephens/wellnest/internal/keyring"
	"github.com/julianstephens/wellnest/internal/storage/sqlite"
)

type DoctorCmd struct{}

type checker interface {
	Check() error
}

type check struct {
	name    string
	run     func(*cli.Context) error
	warning bool
}

var checks = []check{
	{name: "Database schema", run: checkSchema},
	{name: "Config", run: checkConfig},
	{name: "Day counters", run: checkCounters},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "OS keyring", run: checkKeyring, warning: true},
	{name: "Step sensor", run: checkSensor, warning: true},
	{name: "Reminders", run: checkReminders, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkSchema(ctx *cli.Context) error {
	c, ok := ctx.Backend.(checker)
	if !ok {
		return nil
	}
	return c.Check()
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Config.Validate()
}

// checkCounters reports counters left on a future date, which would freeze
// the day rollover until the clock catches up.
func checkCounters(ctx *cli.Context) error {
	today := ctx.Clock.Today()
	if last := ctx.StepCounter().LastDate(); last > today {
		return fmt.Errorf("step counter is dated %s, after today %s", last, today)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Backend.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Backend.GetConfigPath())
	latest, ok, err := mgr.Latest()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	if age := time.Since(latest.Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkSensor(ctx *cli.Context) error {
	if ctx.Config.Sensor.Kind == config.SensorNone {
		return errors.New("no step sensor configured, only manual steps are counted")
	}
	if !ctx.Permissions().SensorGranted() {
		return errors.New("step sensor access is not granted")
	}
	return nil
}

func checkReminders(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	if !sched.Schedule().Enabled {
		return nil
	}
	next, ok := sched.NextFire()
	if !ok {
		return errors.New("reminders are enabled but nothing is armed; run 'wellnest reminder rearm'")
	}
	if next.Before(time.Now()) {
		return fmt.Errorf("reminder due at %s was missed; run 'wellnest daemon' or 'wellnest reminder fire'", next.Format(time.RFC3339))
	}
	return nil
}
