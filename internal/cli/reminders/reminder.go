package reminders

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/tui"
	"github.com/julianstephens/wellnest/internal/validation"
)

type ReminderCmd struct {
	Status  ReminderStatusCmd  `cmd:"" help:"Show the reminder schedule." default:"1"`
	Set     ReminderSetCmd     `cmd:"" help:"Enable and configure hydration reminders."`
	Disable ReminderDisableCmd `cmd:"" help:"Turn hydration reminders off."`
	Rearm   ReminderRearmCmd   `cmd:"" help:"Re-arm reminders after a restart."`
	Fire    ReminderFireCmd    `cmd:"" help:"Deliver a due reminder (for cron)."`
	Snooze  ReminderSnoozeCmd  `cmd:"" help:"Remind again after a delay."`
	Drink   ReminderDrinkCmd   `cmd:"" help:"Log one glass of water from a reminder."`
}

type ReminderStatusCmd struct{}

func (c *ReminderStatusCmd) Run(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	fmt.Println(sched.StatusText())
	s := sched.Schedule()
	if s.Enabled {
		fmt.Printf("  Window: %s-%s on %s\n", s.Start, s.End, cli.FormatWeekdays(s.ActiveDays))
	}
	if until, ok := sched.SnoozeUntil(); ok {
		fmt.Printf("  Snoozed until %s\n", until.In(ctx.Clock().Location()).Format(constants.TimeFormat))
	}
	return nil
}

type ReminderSetCmd struct {
	Interval    int    `help:"Hours between reminders."`
	Start       string `help:"Start of the active window (HH:MM)."`
	End         string `help:"End of the active window (HH:MM)."`
	Days        string `help:"Active days, e.g. mon,wed,fri or weekdays."`
	Interactive bool   `short:"i" help:"Edit the schedule in a form."`
}

func (c *ReminderSetCmd) Run(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	s := sched.Schedule()

	if c.Interactive {
		edited, err := tui.PromptSchedule(s)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
		s = edited
	} else {
		s.Enabled = true
		if c.Interval != 0 {
			if err := validation.ReminderInterval(c.Interval); err != nil {
				return err
			}
			s.IntervalHours = c.Interval
		}
		if c.Start != "" {
			s.Start = c.Start
		}
		if c.End != "" {
			s.End = c.End
		}
		if c.Days != "" {
			days, err := cli.ParseWeekdays(c.Days)
			if err != nil {
				return err
			}
			s.ActiveDays = days
		}
	}

	if err := sched.SaveSchedule(s); err != nil {
		return err
	}
	sched.Stop()
	fmt.Printf("✓ %s\n", sched.StatusText())
	if s.Enabled {
		fmt.Println("  Keep 'wellnest daemon' running, or call 'wellnest reminder fire' from cron.")
	}
	return nil
}

type ReminderDisableCmd struct{}

func (c *ReminderDisableCmd) Run(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	s := sched.Schedule()
	s.Enabled = false
	if err := sched.SaveSchedule(s); err != nil {
		return err
	}
	fmt.Println("✓ Hydration reminders disabled")
	return nil
}

type ReminderRearmCmd struct{}

func (c *ReminderRearmCmd) Run(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	armed, err := sched.RearmIfEnabled()
	if err != nil {
		return err
	}
	// Timers die with this process; the persisted instant is what counts.
	sched.Stop()
	if !armed {
		fmt.Println("Reminders are disabled.")
		return nil
	}
	fmt.Printf("✓ %s\n", sched.StatusText())
	return nil
}

type ReminderFireCmd struct {
	Force bool `help:"Fire even if no reminder is due."`
}

func (c *ReminderFireCmd) Run(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	handler := ctx.ReminderHandler()
	defer sched.Stop()

	trigger, due := sched.Due()
	if !due && !c.Force {
		fmt.Println("No reminder due.")
		return nil
	}
	shown, err := handler.Fire(trigger)
	if err != nil {
		return fmt.Errorf("failed to deliver reminder: %w", err)
	}
	if !shown {
		fmt.Println("Reminder skipped (outside the active window or disabled).")
	}
	return nil
}

type ReminderSnoozeCmd struct {
	Minutes int `arg:"" optional:"" help:"Minutes to wait." default:"30"`
}

func (c *ReminderSnoozeCmd) Run(ctx *cli.Context) error {
	sched := ctx.Scheduler()
	if err := sched.Snooze(c.Minutes); err != nil {
		return err
	}
	sched.Stop()
	until, _ := sched.SnoozeUntil()
	fmt.Printf("✓ Snoozed until %s\n", until.In(ctx.Clock().Location()).Format(constants.TimeFormat))
	return nil
}

type ReminderDrinkCmd struct{}

func (c *ReminderDrinkCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.ReminderHandler().DrinkWater()
	if err != nil {
		return err
	}
	mgr := ctx.Managers.Hydration
	fmt.Printf("✓ Logged %d ml  ·  %d / %d ml today\n", entry.AmountML, mgr.TodayIntake(), mgr.Goal())
	return nil
}
