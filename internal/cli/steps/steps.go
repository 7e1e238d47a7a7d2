package steps

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/stepd"
	"github.com/julianstephens/wellnest/internal/tui"
	"github.com/julianstephens/wellnest/internal/utils"
)

type StepsCmd struct {
	Add    StepsAddCmd    `cmd:"" help:"Add manually counted steps."`
	Today  StepsTodayCmd  `cmd:"" help:"Show today's steps." default:"1"`
	Week   StepsWeekCmd   `cmd:"" help:"Show the last seven days."`
	Goal   StepsGoalCmd   `cmd:"" help:"Show or set the daily step goal."`
	Stride StepsStrideCmd `cmd:"" help:"Show or set the step length."`
	Watch  StepsWatchCmd  `cmd:"" help:"Watch steps update live."`
	Feed   StepsFeedCmd   `cmd:"" help:"Feed raw sensor readings (lifetime counts)."`
}

type StepsAddCmd struct {
	Count int `arg:"" help:"Number of steps to add."`
}

func (c *StepsAddCmd) Run(ctx *cli.Context) error {
	d := ctx.Daemon(nil)
	total, err := d.AddManualSteps(c.Count)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added %d steps\n", c.Count)
	fmt.Printf("  Today: %d / %d steps (%d%%)\n", total, ctx.Managers.Steps.Goal(), ctx.Managers.Steps.Percentage(total))
	return nil
}

type StepsTodayCmd struct {
	Entries bool `help:"List today's manual and sensor additions."`
}

func (c *StepsTodayCmd) Run(ctx *cli.Context) error {
	total := ctx.Daemon(nil).CurrentSteps()
	mgr := ctx.Managers.Steps
	data := models.NewStepData(ctx.Clock.Today(), total, mgr.StepLength(), ctx.Clock())

	fmt.Println(tui.Title("Steps today"))
	fmt.Printf("%d / %d steps (%d%%)\n", total, mgr.Goal(), mgr.Percentage(total))
	fmt.Println(tui.Muted(fmt.Sprintf("%.2f km · %.0f kcal · %d active min", data.DistanceKm, data.Calories, data.ActiveMinutes)))

	if c.Entries {
		entries := mgr.EntriesForDate(ctx.Clock.Today())
		if len(entries) == 0 {
			fmt.Println("\nNo additions recorded today.")
			return nil
		}
		fmt.Println()
		for _, e := range entries {
			fmt.Printf("  %s  %+6d  %s\n", e.Time, e.Steps, e.Source)
		}
	}
	return nil
}

type StepsWeekCmd struct {
	Ring bool `help:"Show the per-weekday archive kept by the day counter."`
}

func (c *StepsWeekCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Steps
	goal := float64(mgr.Goal())
	var rows []tui.BarRow

	if c.Ring {
		counter := ctx.StepCounter()
		today := ctx.Clock.Today()
		if _, err := counter.CheckAndRollover(today); err != nil {
			return err
		}
		ring := counter.WeeklyWithToday(today)
		for i, v := range ring {
			rows = append(rows, tui.BarRow{Label: time.Weekday(i).String()[:3], Value: float64(v), Text: fmt.Sprintf("%d", v)})
		}
		fmt.Println(tui.Title("Steps by weekday"))
		fmt.Print(tui.RenderBars(rows, goal, 30))
		fmt.Printf("\nTotal: %d steps\n", ring.Total())
		return nil
	}

	total := 0
	distance := 0.0
	for _, d := range mgr.Weekly() {
		total += d.StepCount
		distance += d.DistanceKm
		rows = append(rows, tui.BarRow{Label: utils.ShortWeekday(d.Date), Value: float64(d.StepCount), Text: fmt.Sprintf("%d", d.StepCount)})
	}
	fmt.Println(tui.Title("Steps, last 7 days"))
	fmt.Print(tui.RenderBars(rows, goal, 30))
	fmt.Printf("\nTotal: %d steps  ·  %.1f km  ·  Average: %d/day\n", total, distance, total/constants.DaysPerWeek)
	return nil
}

type StepsGoalCmd struct {
	Steps *int `arg:"" optional:"" help:"New goal in steps."`
	Set   bool `help:"Prompt for a new goal."`
}

func (c *StepsGoalCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Steps
	goal := c.Steps
	if goal == nil && c.Set {
		n, err := tui.PromptGoal(models.MetricSteps, mgr.Goal())
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
		goal = &n
	}
	if goal == nil {
		fmt.Printf("Daily step goal: %d steps\n", mgr.Goal())
		return nil
	}
	if err := mgr.SetGoal(*goal); err != nil {
		return err
	}
	fmt.Printf("✓ Step goal set to %d steps\n", *goal)
	return nil
}

type StepsStrideCmd struct {
	Cm float64 `arg:"" optional:"" help:"Step length in cm."`
}

func (c *StepsStrideCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Steps
	if c.Cm == 0 {
		fmt.Printf("Step length: %.0f cm\n", mgr.StepLength())
		return nil
	}
	if err := mgr.SetStepLength(c.Cm); err != nil {
		return err
	}
	fmt.Printf("✓ Step length set to %.0f cm\n", c.Cm)
	return nil
}

type StepsWatchCmd struct {
	Increment int `help:"Steps added by the add key." default:"100"`
}

func (c *StepsWatchCmd) Run(ctx *cli.Context) error {
	d := ctx.Daemon(ctx.Sensor())
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(runCtx)
	defer d.Stop()

	if d.State() == stepd.StateDegraded {
		fmt.Fprintln(os.Stderr, tui.WarningStyle.Render("Sensor unavailable, counting manual steps only."))
	}
	mgr := ctx.Managers.Steps
	return tui.RunStepsWatch(d, mgr.Goal(), mgr.StepLength(), c.Increment)
}

type StepsFeedCmd struct {
	Readings []string `arg:"" optional:"" help:"Raw lifetime step counts. Read from stdin, one per line, when omitted."`
}

func (c *StepsFeedCmd) Run(ctx *cli.Context) error {
	d := ctx.Daemon(nil)
	total := d.CurrentSteps()

	feed := func(text string) error {
		raw, err := stepd.ParseReading([]byte(text))
		if err != nil {
			return err
		}
		total, err = d.HandleReading(raw)
		return err
	}

	if len(c.Readings) > 0 {
		for _, r := range c.Readings {
			if err := feed(r); err != nil {
				return err
			}
		}
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := feed(scanner.Text()); err != nil {
				fmt.Fprintf(os.Stderr, "Skipping reading: %v\n", err)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	fmt.Printf("Today: %d steps\n", total)
	return nil
}
