package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool   `help:"Force reset by deleting an existing SQLite database before initialization."`
	Name  string `help:"Your name, shown in greetings."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Backend.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized wellnest storage at: %s\n", ctx.Backend.GetConfigPath())

	if ctx.ConfigPath != "" {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
			if err := ctx.Config.Save(ctx.ConfigPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Wrote default config to: %s\n", ctx.ConfigPath)
		}
	}

	settingsMgr := ctx.Managers.Settings
	if !settingsMgr.IsFirstRun() {
		return nil
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		s := settingsMgr.Get()
		s.UserName = name
		if err := settingsMgr.Save(s); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	if err := settingsMgr.CompleteFirstRun(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	greeting := "Welcome to wellnest!"
	if name := settingsMgr.Get().UserName; name != "" {
		greeting = fmt.Sprintf("Welcome to wellnest, %s!", name)
	}
	fmt.Println(greeting)
	fmt.Printf("  Step goal:  %d steps\n", ctx.Managers.Steps.Goal())
	fmt.Printf("  Water goal: %d ml\n", ctx.Managers.Hydration.Goal())
	fmt.Println("  Change them with 'wellnest steps goal' and 'wellnest water goal'.")
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Backend.(*sqlite.Store); !ok {
		return fmt.Errorf("--force only applies to SQLite databases")
	}
	dbPath := ctx.Backend.GetConfigPath()
	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file handle.
		if err := ctx.Backend.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
