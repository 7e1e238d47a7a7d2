package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/julianstephens/wellnest/internal/backup"
	"github.com/julianstephens/wellnest/internal/config"
	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/daybound"
	"github.com/julianstephens/wellnest/internal/keyring"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/notifier"
	"github.com/julianstephens/wellnest/internal/reminder"
	"github.com/julianstephens/wellnest/internal/stepd"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/storage/postgres"
	"github.com/julianstephens/wellnest/internal/storage/sqlite"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/wellness"
)

type Context struct {
	Backend  storage.Backend
	Prefs    *storage.Prefs
	Config   *config.Config
	Clock    utils.Clock
	Managers *wellness.Managers
	// ConfigPath is the YAML config file the settings were loaded from.
	ConfigPath string

	loc     atomic.Pointer[time.Location]
	counter *daybound.Tracker
	sched   *reminder.Scheduler
}

func NewContext(backend storage.Backend, cfg *config.Config) (*Context, error) {
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	prefs := storage.New(backend)
	c := &Context{
		Backend: backend,
		Prefs:   prefs,
		Config:  cfg,
	}
	c.loc.Store(loc)
	c.Clock = func() time.Time { return time.Now().In(c.loc.Load()) }
	c.Managers = wellness.NewManagers(prefs, c.Clock)
	return c, nil
}

// ApplySettingsTimezone switches the clock to the timezone stored in
// settings when the config leaves it at Local. Call it once the backend is
// loaded.
func (c *Context) ApplySettingsTimezone() {
	if c.Config.Timezone != "" && c.Config.Timezone != constants.DefaultTimezone {
		return
	}
	tz := c.Managers.Settings.Timezone()
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		logger.Warn("Ignoring invalid timezone setting", "timezone", tz, "error", err)
		return
	}
	c.loc.Store(loc)
}

// StepCounter is the daily counter the step daemon and step commands share.
func (c *Context) StepCounter() *daybound.Tracker {
	if c.counter == nil {
		c.counter = daybound.New(c.Prefs.Namespace(constants.NamespaceSteps), constants.CounterPrefixSteps)
	}
	return c.counter
}

func (c *Context) Scheduler() *reminder.Scheduler {
	if c.sched == nil {
		c.sched = reminder.NewScheduler(c.Prefs.Namespace(constants.NamespaceReminders), reminder.SystemClock{})
	}
	return c.sched
}

// ReminderHandler wires the scheduler to the hydration manager and the
// configured notification sink.
func (c *Context) ReminderHandler() *reminder.Handler {
	var n reminder.Notifier = consoleNotifier{}
	if tray := c.trayNotifier(); tray != nil {
		n = fallbackNotifier{primary: tray, fallback: consoleNotifier{}}
	}
	if !c.Config.Permissions.Notifications {
		n = nil
	}
	return reminder.NewHandler(c.Scheduler(), c.Managers.Hydration, n)
}

func (c *Context) trayNotifier() *notifier.Notifier {
	if !c.Config.Tray.Enabled {
		return nil
	}
	return notifier.New()
}

// Permissions combines the configured grants with a sensor denial the user
// recorded in settings.
func (c *Context) Permissions() stepd.StaticPermissions {
	denied := c.Prefs.Namespace(constants.NamespaceSettings).GetBool(constants.SettingSensorDenied, false)
	return stepd.StaticPermissions{
		Sensor:        c.Config.Permissions.Sensor && !denied,
		Notifications: c.Config.Permissions.Notifications,
	}
}

// Sensor builds the step sensor named in the config, nil for "none".
func (c *Context) Sensor() stepd.Sensor {
	sc := c.Config.Sensor
	switch sc.Kind {
	case config.SensorStdin:
		return stepd.NewReaderSensor("stdin", os.Stdin)
	case config.SensorFile:
		return stepd.NewFileSensor(config.ExpandPath(sc.Path))
	case config.SensorMQTT:
		return stepd.NewMQTTSensor(stepd.MQTTConfig{
			Broker:   sc.Broker,
			Topic:    sc.Topic,
			ClientID: sc.ClientID,
			Username: sc.Username,
			Password: keyring.Lookup(keyring.EntryMQTTPassword),
		})
	}
	return nil
}

// Daemon builds a step daemon over sensor. A nil sensor gives a daemon that
// only counts manual steps.
func (c *Context) Daemon(sensor stepd.Sensor) *stepd.Daemon {
	opts := stepd.Options{
		Counter: c.StepCounter(),
		Steps:   c.Managers.Steps,
		Sensor:  sensor,
		Perms:   c.Permissions(),
		Clock:   c.Clock,
	}
	if tray := c.trayNotifier(); tray != nil {
		opts.Notifier = tray
	}
	return stepd.New(opts)
}

// PerformAutomaticBackup creates a backup of a SQLite database and only logs
// failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Backend.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Backend.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDatabase picks the database in order: the --db flag, the config
// file or environment, the keyring, then the default SQLite path.
func ResolveDatabase(flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return flag, checkConnString(flag, false)
	}
	if cfg != nil && cfg.Database != "" {
		return cfg.Database, checkConnString(cfg.Database, false)
	}
	if v := keyring.Lookup(keyring.EntryDatabase); v != "" {
		return v, checkConnString(v, true)
	}
	return constants.DefaultConfigPath, nil
}

// checkConnString validates PostgreSQL strings. Only a string read from the
// keyring may carry a password.
func checkConnString(db string, fromKeyring bool) error {
	if !postgres.IsConnString(db) {
		return nil
	}
	err := postgres.ValidateConnString(db)
	if errors.Is(err, postgres.ErrEmbeddedCredentials) && fromKeyring {
		return nil
	}
	if errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("%w; store it with 'wellnest keyring set db' or use %s or .pgpass", err, config.EnvDBConnection)
	}
	return err
}

// OpenBackend returns the backend for a resolved database string.
func OpenBackend(db string) storage.Backend {
	if postgres.IsConnString(db) {
		return postgres.New(db)
	}
	return sqlite.NewStore(config.ExpandPath(db))
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		switch part {
		case "all", "daily":
			weekdays = append(weekdays, models.AllWeekdays()...)
			continue
		case "weekdays":
			weekdays = append(weekdays, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
			continue
		case "weekends":
			weekdays = append(weekdays, time.Saturday, time.Sunday)
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatWeekdays renders days as "Mon,Wed", or "every day" for all seven.
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "no days"
	}
	if len(days) == 7 {
		return "every day"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}
