package habits

import (
	"fmt"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/tui"
	"github.com/julianstephens/wellnest/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Done    HabitDoneCmd    `cmd:"" help:"Mark a habit complete for a day."`
	Today   HabitTodayCmd   `cmd:"" help:"Show today's habit checklist." default:"1"`
	Archive HabitArchiveCmd `cmd:"" help:"Archive or restore a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Short description."`
	Category    string `help:"Category." default:"General"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Managers.Habits.Add(c.Name, c.Description, c.Category)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added habit %q (%s)\n", h.Name, cli.ShortID(h.ID))
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Habits
	habits := mgr.Active()
	if c.All {
		habits = mgr.GetAll()
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'wellnest habit add'.")
		return nil
	}

	today := ctx.Clock.Today()
	for _, h := range habits {
		status := ""
		if !h.Active {
			status = tui.Muted(" (archived)")
		}
		fmt.Printf("  %s  %-20s %-10s streak %d%s\n", tui.Muted(cli.ShortID(h.ID)), h.Name, h.Category, mgr.Streak(h.ID, today), status)
		if h.Description != "" {
			fmt.Printf("            %s\n", tui.Muted(h.Description))
		}
	}
	return nil
}

// resolveHabit accepts an id, an id prefix or a name.
func resolveHabit(ctx *cli.Context, ref string) (models.Habit, error) {
	mgr := ctx.Managers.Habits
	if h, ok := mgr.Resolve(ref); ok {
		return h, nil
	}
	return cli.ResolveRecord(mgr.GetAll(), ref, "habit")
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Undo  bool   `help:"Mark as not done."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	date := c.Date
	if date == "" {
		date = ctx.Clock.Today()
	} else if err := validation.Date(date); err != nil {
		return err
	}

	mgr := ctx.Managers.Habits
	if _, err := mgr.MarkComplete(h.ID, date, !c.Undo); err != nil {
		return err
	}
	if c.Undo {
		fmt.Printf("✓ %s marked not done for %s\n", h.Name, date)
		return nil
	}
	fmt.Printf("✓ %s done for %s (streak %d)\n", h.Name, date, mgr.Streak(h.ID, date))
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Habits
	active := mgr.Active()
	if len(active) == 0 {
		fmt.Println("No active habits.")
		return nil
	}
	today := ctx.Clock.Today()
	fmt.Println(tui.Title("Habits today"))
	for _, h := range active {
		box := "[ ]"
		if mgr.IsComplete(h.ID, today) {
			box = tui.SuccessStyle.Render("[x]")
		}
		fmt.Printf("  %s %s\n", box, h.Name)
	}
	fmt.Printf("\n%.0f%% complete\n", mgr.CompletionPercentage(today))
	return nil
}

type HabitArchiveCmd struct {
	Habit   string `arg:"" help:"Habit name or ID."`
	Restore bool   `help:"Re-activate an archived habit."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Managers.Habits.SetActive(h.ID, c.Restore); err != nil {
		return err
	}
	if c.Restore {
		fmt.Printf("✓ Restored habit %q\n", h.Name)
	} else {
		fmt.Printf("✓ Archived habit %q\n", h.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit   string `arg:"" help:"Habit name or ID."`
	Cascade bool   `help:"Also delete the habit's completion history."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := tui.Confirm(fmt.Sprintf("Delete habit %q?", h.Name))
		if err != nil || !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Managers.Habits.DeleteHabit(h.ID, c.Cascade); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	msg := fmt.Sprintf("✓ Deleted habit %q", h.Name)
	if c.Cascade {
		msg += " and its history"
	}
	fmt.Println(msg)
	return nil
}
