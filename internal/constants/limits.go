package constants

const (
	// Goals
	DefaultStepGoal      = 10000
	MinStepGoal          = 1
	MaxStepGoal          = 100000
	DefaultHydrationGoal = 2500
	MinHydrationGoal     = 1
	MaxHydrationGoal     = 10000

	// Single entries
	MinWaterAmount    = 1
	MaxWaterAmount    = 5000
	DefaultGlassML    = 250
	MinManualSteps    = 1
	MaxManualSteps    = 50000
	MinMoodLevel      = 1
	MaxMoodLevel      = 5
	DefaultMoodLevel  = 3
	DefaultMoodEmoji  = "😐"
	QuickMoodNote     = "Quick mood entry"
	DefaultHabitCat   = "General"
	DefaultHabitDaily = 1

	// Step model
	DefaultStepLengthCm  = 75.0
	MinStepLengthCm      = 30.0
	MaxStepLengthCm      = 150.0
	CaloriesPerStep      = 0.04
	StepsPerActiveMinute = 100

	// Mood trend
	MoodTrendThreshold  = 0.5
	MoodTrendMinEntries = 3
	MoodTrendImproving  = "Improving"
	MoodTrendDeclining  = "Declining"
	MoodTrendStable     = "Stable"
	MoodTrendNoData     = "Not enough data"

	// Weekly ring
	DaysPerWeek = 7
)
