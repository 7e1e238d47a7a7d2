package constants

import "time"

const (
	AppName            = "wellnest"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/wellnest"
	DefaultConfigPath  = "~/.config/wellnest/wellnest.db"
	ConfigFileName     = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "wellnest-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "wellnest-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.wellnest"
)

// Storage namespaces. Each namespace owns one mutual-exclusion guard.
const (
	NamespaceHabits    = "habits"
	NamespaceMood      = "mood"
	NamespaceHydration = "hydration"
	NamespaceSteps     = "steps"
	NamespaceSettings  = "settings"
	NamespaceReminders = "reminders"
)

// List keys inside the namespaces above.
const (
	KeyHabits           = "habits"
	KeyHabitProgress    = "habit_progress"
	KeyMoodEntries      = "mood_entries"
	KeyHydrationLogs    = "hydration_logs"
	KeyStepHistory      = "step_history"
	KeyStepEntries      = "step_entries"
	CounterPrefixSteps  = "steps"
	CounterPrefixWater  = "water"
	KeyNextReminderFire = "next_fire"
	KeySnoozeUntil      = "snooze_until"
)
