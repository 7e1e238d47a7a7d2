package models

import (
	"strconv"

	"github.com/julianstephens/wellnest/internal/constants"
)

type Settings struct {
	UserName     string
	Timezone     string
	StepLengthCm float64
	FirstRun     bool
}

// MapToSettings converts stored key-value pairs to Settings. Unknown keys are
// ignored and unparsable values keep their defaults.
func MapToSettings(data map[string]string) Settings {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingUserName:
			settings.UserName = value
		case constants.SettingTimezone:
			if value != "" {
				settings.Timezone = value
			}
		case constants.SettingStepLength:
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				settings.StepLengthCm = v
			}
		case constants.SettingFirstRun:
			if v, err := strconv.ParseBool(value); err == nil {
				settings.FirstRun = v
			}
		}
	}
	return settings
}

// SettingsToMap converts Settings to key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingUserName:   settings.UserName,
		constants.SettingTimezone:   settings.Timezone,
		constants.SettingStepLength: strconv.FormatFloat(settings.StepLengthCm, 'f', -1, 64),
		constants.SettingFirstRun:   strconv.FormatBool(settings.FirstRun),
	}
}

func DefaultSettings() Settings {
	return Settings{
		UserName:     constants.DefaultUserName,
		Timezone:     constants.DefaultTimezone,
		StepLengthCm: constants.DefaultStepLengthCm,
		FirstRun:     true,
	}
}
