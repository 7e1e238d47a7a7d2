package mood

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/records"
	"github.com/julianstephens/wellnest/internal/tui"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
)

type MoodCmd struct {
	Add       MoodAddCmd       `cmd:"" help:"Log a mood entry." default:"1"`
	List      MoodListCmd      `cmd:"" help:"List mood entries."`
	Delete    MoodDeleteCmd    `cmd:"" help:"Delete a mood entry."`
	Trend     MoodTrendCmd     `cmd:"" help:"Show daily mood averages."`
	Intervals MoodIntervalsCmd `cmd:"" help:"Show today's moods by time of day."`
}

type MoodAddCmd struct {
	Level int    `arg:"" optional:"" help:"Mood level from 1 (awful) to 5 (great). Prompts when omitted."`
	Emoji string `help:"Emoji to show instead of the level's default."`
	Notes string `help:"Free-form notes."`
	Quick bool   `help:"Log a quick entry without notes."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	level, notes := c.Level, c.Notes
	if level == 0 {
		in, err := tui.PromptMood()
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
		level, notes = in.Level, in.Notes
	}
	if err := validation.MoodLevel(level); err != nil {
		return err
	}

	mgr := ctx.Managers.Mood
	var (
		entry models.MoodEntry
		err   error
	)
	if c.Quick {
		emoji := c.Emoji
		if emoji == "" {
			emoji = models.EmojiForLevel(level)
		}
		entry, err = mgr.QuickMood(emoji, level)
	} else {
		entry, err = mgr.Add(level, c.Emoji, notes)
	}
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}

	fmt.Printf("✓ Logged %s %s at %s\n", entry.Emoji, models.MoodLabel(entry.Level), entry.Time)
	return nil
}

type MoodListCmd struct {
	Date string `help:"Date to list (YYYY-MM-DD). Defaults to today."`
	Week bool   `help:"List the last seven days."`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Mood
	var entries []models.MoodEntry
	switch {
	case c.Week:
		entries = mgr.Weekly()
	case c.Date != "":
		if err := validation.Date(c.Date); err != nil {
			return err
		}
		entries = mgr.GetForDate(c.Date)
	default:
		entries = mgr.Today()
	}

	if len(entries) == 0 {
		fmt.Println("No mood entries.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s %s  %s %-5s  %s", e.Date, e.Time, e.Emoji, models.MoodLabel(e.Level), tui.Muted(cli.ShortID(e.ID)))
		if e.Notes != "" {
			fmt.Printf("  %s", e.Notes)
		}
		fmt.Println()
	}
	fmt.Printf("\nAverage: %.1f  ·  %s\n", mgr.Average(entries), mgr.Stats())
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"Entry ID or unique ID prefix."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Mood
	entry, err := cli.ResolveRecord(mgr.GetAll(), c.ID, "mood entry")
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := mgr.Delete(entry.ID); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	fmt.Printf("✓ Deleted mood entry from %s %s\n", entry.Date, entry.Time)
	return nil
}

type MoodTrendCmd struct {
	Days     int  `help:"Number of days to show." default:"7"`
	Detailed bool `help:"Split each day into morning, afternoon and evening."`
}

func (c *MoodTrendCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > 90 {
		return fmt.Errorf("days must be between 1 and 90")
	}
	mgr := ctx.Managers.Mood

	var rows []tui.BarRow
	if c.Detailed {
		for _, a := range mgr.DetailedTrend(c.Days) {
			rows = append(rows, tui.BarRow{Label: a.Label, Value: a.Average, Text: fmt.Sprintf("%.1f", a.Average)})
		}
	} else {
		for _, a := range mgr.Trend(c.Days) {
			label := fmt.Sprintf("%s %s", utils.ShortWeekday(a.Label), records.ShortDate(a.Label))
			text := "-"
			if a.Average > 0 {
				text = fmt.Sprintf("%.1f", a.Average)
			}
			rows = append(rows, tui.BarRow{Label: label, Value: a.Average, Text: text})
		}
	}

	fmt.Println(tui.Title("Mood trend"))
	if len(rows) == 0 {
		fmt.Println("No mood entries in range.")
		return nil
	}
	fmt.Print(tui.RenderBars(rows, constants.MaxMoodLevel, 25))
	fmt.Printf("\nThis week: %s\n", mgr.TrendDirection())
	return nil
}

type MoodIntervalsCmd struct{}

func (c *MoodIntervalsCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Managers.Mood
	groups := mgr.TodayByInterval()
	if len(groups) == 0 {
		fmt.Println("No mood entries today.")
		return nil
	}
	for _, iv := range records.FullDay {
		entries := groups[iv.Label]
		if len(entries) == 0 {
			continue
		}
		fmt.Printf("%s (%02d:00-%02d:00)\n", tui.Title(iv.Label), iv.StartHour, iv.EndHour)
		for _, e := range entries {
			fmt.Printf("  %s %s %s\n", e.Time, e.Emoji, models.MoodLabel(e.Level))
		}
		fmt.Printf("  average %.1f\n", mgr.Average(entries))
	}
	return nil
}
