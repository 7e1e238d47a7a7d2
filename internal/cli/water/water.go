package water

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/tui"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
)

type WaterCmd struct {
	Add    WaterAddCmd    `cmd:"" help:"Log water intake." default:"1"`
	Today  WaterTodayCmd  `cmd:"" help:"Show today's intake."`
	Week   WaterWeekCmd   `cmd:"" help:"Show the last seven days."`
	Delete WaterDeleteCmd `cmd:"" help:"Delete a water entry."`
	Goal   WaterGoalCmd   `cmd:"" help:"Show or set the daily hydration goal."`
}

type WaterAddCmd struct {
	Amount int    `arg:"" optional:"" help:"Amount in ml. Defaults to one glass."`
	At     string `help:"Time of day (HH:MM) for a back-filled entry today."`
}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	amount := c.Amount
	if amount == 0 {
		amount = constants.DefaultGlassML
	}
	mgr := ctx.Managers.Hydration

	var (
		entry models.HydrationLog
		err   error
	)
	if c.At != "" {
		at, perr := backfillTime(ctx.Clock, c.At)
		if perr != nil {
			return perr
		}
		entry, err = mgr.AddAt(amount, at)
	} else {
		entry, err = mgr.Add(amount)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Logged %d ml at %s\n", entry.AmountML, entry.Time)
	fmt.Printf("  Today: %d / %d ml (%d%%)\n", mgr.TodayIntake(), mgr.Goal(), mgr.Percentage())
	return nil
}

func backfillTime(clock utils.Clock, hhmm string) (time.Time, error) {
	if err := validation.TimeOfDay("time", hhmm); err != nil {
		return time.Time{}, err
	}
	now := clock()
	at, err := utils.AtDateTime(clock.Today(), hhmm, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if at.After(now) {
		return time.Time{}, errors.New("cannot log water in the future")
	}
	return at, nil
}

type WaterTodayCmd struct{}

func (c *WaterTodayCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Hydration
	entries := mgr.Today()

	fmt.Println(tui.Title("Water today"))
	for _, e := range entries {
		fmt.Printf("  %s  %5d ml  %s\n", e.Time, e.AmountML, tui.Muted(cli.ShortID(e.ID)))
	}
	if len(entries) == 0 {
		fmt.Println("  Nothing logged yet.")
	}
	pct := mgr.Percentage()
	fmt.Printf("\n%d / %d ml (%d%%)\n", mgr.TodayIntake(), mgr.Goal(), pct)
	if pct >= 100 {
		fmt.Println(tui.SuccessStyle.Render("Goal reached!"))
	}
	return nil
}

type WaterWeekCmd struct {
	Ring bool `help:"Show the per-weekday archive kept by the day counter."`
}

func (c *WaterWeekCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Hydration
	goal := float64(mgr.Goal())

	var rows []tui.BarRow
	if c.Ring {
		ring := mgr.WeeklyRing()
		for i, v := range ring {
			rows = append(rows, tui.BarRow{
				Label: time.Weekday(i).String()[:3],
				Value: float64(v),
				Text:  fmt.Sprintf("%d ml", v),
			})
		}
		fmt.Println(tui.Title("Water by weekday"))
		fmt.Print(tui.RenderBars(rows, goal, 30))
		fmt.Printf("\nTotal: %d ml\n", ring.Total())
		return nil
	}

	total := 0
	for _, d := range mgr.Weekly() {
		total += d.Value
		rows = append(rows, tui.BarRow{
			Label: utils.ShortWeekday(d.Date),
			Value: float64(d.Value),
			Text:  fmt.Sprintf("%d ml", d.Value),
		})
	}
	fmt.Println(tui.Title("Water, last 7 days"))
	fmt.Print(tui.RenderBars(rows, goal, 30))
	fmt.Printf("\nTotal: %d ml  ·  Average: %d ml/day\n", total, total/constants.DaysPerWeek)
	return nil
}

type WaterDeleteCmd struct {
	ID string `arg:"" help:"Entry ID or unique ID prefix."`
}

func (c *WaterDeleteCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Hydration
	entry, err := cli.ResolveRecord(mgr.GetAll(), c.ID, "water entry")
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := mgr.Delete(entry.ID); err != nil {
		return fmt.Errorf("failed to delete water entry: %w", err)
	}
	fmt.Printf("✓ Deleted %d ml from %s %s\n", entry.AmountML, entry.Date, entry.Time)
	return nil
}

type WaterGoalCmd struct {
	ML  *int `arg:"" optional:"" help:"New goal in ml."`
	Set bool `help:"Prompt for a new goal."`
}

func (c *WaterGoalCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Hydration
	goal := c.ML
	if goal == nil && c.Set {
		n, err := tui.PromptGoal(models.MetricHydration, mgr.Goal())
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
		fmt.Printf("Daily hydration goal: %d ml\n", mgr.Goal())
		return nil
	}
	if err := mgr.SetGoal(*goal); err != nil {
		return err
	}
	fmt.Printf("✓ Hydration goal set to %d ml\n", *goal)
	return nil
}
