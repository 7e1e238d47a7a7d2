package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/cli/backups"
	"github.com/julianstephens/wellnest/internal/cli/habits"
	"github.com/julianstephens/wellnest/internal/cli/mood"
	"github.com/julianstephens/wellnest/internal/cli/reminders"
	"github.com/julianstephens/wellnest/internal/cli/settings"
	"github.com/julianstephens/wellnest/internal/cli/steps"
	"github.com/julianstephens/wellnest/internal/cli/system"
	"github.com/julianstephens/wellnest/internal/cli/water"
	"github.com/julianstephens/wellnest/internal/config"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/errors"
	"github.com/julianstephens/wellnest/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring, WELLNEST_DB_CONNECTION or .pgpass." type:"string"`
	Config  string `help:"Config file path." type:"path" default:"~/.config/wellnest/config.yaml"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd        `cmd:"" help:"Initialize wellnest storage."`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Daemon   system.DaemonCmd      `cmd:"" help:"Run the step counter and reminders in the foreground."`
	Settings settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Mood     mood.MoodCmd          `cmd:"" help:"Track your mood."`
	Water    water.WaterCmd        `cmd:"" help:"Track water intake."`
	Steps    steps.StepsCmd        `cmd:"" help:"Track steps."`
	Habit    habits.HabitCmd       `cmd:"" help:"Manage habits and habit tracking."`
	Reminder reminders.ReminderCmd `cmd:"" help:"Manage hydration reminders."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal wellness tracker for mood, water, steps and habits"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	debug := CLI.Debug || cfg.Debug
	if err := logger.Init(logger.Config{
		Debug:      debug,
		ConfigDir:  config.ExpandPath(constants.DefaultConfigDir),
		Foreground: ctx.Command() == "daemon",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	db, err := cli.ResolveDatabase(CLI.DB, cfg)
	if err != nil {
		errors.Fatal(err)
	}
	backend := cli.OpenBackend(db)

	appCtx, err := cli.NewContext(backend, cfg)
	if err != nil {
		errors.Fatal(err)
	}
	appCtx.ConfigPath = CLI.Config

	// Init handles its own setup
	if ctx.Command() != "init" {
		if err := backend.Load(); err != nil {
			errors.Fatal(err)
		}
		appCtx.ApplySettingsTimezone()
	}
	defer backend.Close()

	if err := ctx.Run(appCtx); err != nil {
		backend.Close()
		errors.Fatal(err)
	}
}
