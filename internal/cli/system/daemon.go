package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/logger"
)

// DaemonCmd runs the step daemon and the reminder scheduler in the
// foreground until interrupted.
type DaemonCmd struct {
	NoSteps     bool `help:"Do not start the step daemon."`
	NoReminders bool `help:"Do not run hydration reminders."`
}

func (cmd *DaemonCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.PerformAutomaticBackup()

	if !cmd.NoSteps {
		d := ctx.Daemon(ctx.Sensor())
		d.Bind(func(steps int) {
			logger.Debug("Steps updated", "steps", steps)
		})
		d.Start(runCtx)
		defer d.Stop()
		fmt.Printf("✓ Step daemon %s (%d steps today)\n", d.State(), d.CurrentSteps())
	}

	if !cmd.NoReminders {
		sched := ctx.Scheduler()
		handler := ctx.ReminderHandler()
		if trigger, due := sched.Due(); due {
			if _, err := handler.Fire(trigger); err != nil {
				logger.Warn("Missed reminder delivery failed", "error", err)
			}
		}
		armed, err := sched.RearmIfEnabled()
		if err != nil {
			return fmt.Errorf("failed to arm reminders: %w", err)
		}
		defer sched.Stop()
		if armed {
			fmt.Printf("✓ Reminders: %s\n", sched.StatusText())
		} else {
			fmt.Println("ℹ Reminders are disabled")
		}
	}

	fmt.Println("Running. Press Ctrl+C to stop.")
	<-runCtx.Done()
	fmt.Println("\nStopping...")
	return nil
}
