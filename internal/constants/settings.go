package constants

const (
	// General Settings
	SettingUserName     = "user_name"
	SettingTimezone     = "timezone"
	SettingStepLength   = "step_length_cm"
	SettingStepGoal     = "step_goal"
	SettingWaterGoal    = "water_goal"
	SettingFirstRun     = "first_time_user"
	SettingSensorDenied = "sensor_denied"

	// Reminder Settings
	SettingReminderEnabled  = "reminder_enabled"
	SettingReminderInterval = "reminder_interval_hours"
	SettingReminderStart    = "reminder_start"
	SettingReminderEnd      = "reminder_end"
	SettingReminderDays     = "reminder_days"

	// Default Settings Values
	DefaultUserName         = ""
	DefaultTimezone         = "Local" // Use system local timezone by default
	DefaultReminderEnabled  = false
	DefaultReminderInterval = 2
	MinReminderInterval     = 1
	MaxReminderInterval     = 24
	DefaultReminderStart    = "08:00"
	DefaultReminderEnd      = "22:00"
	SnoozeMinutes           = 30
)
