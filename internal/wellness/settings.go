package wellness

import (
	"fmt"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/validation"
)

// SettingsManager owns user settings and the per-metric goals.
type SettingsManager struct {
	ns *storage.Namespace
}

func NewSettingsManager(prefs *storage.Prefs) *SettingsManager {
	return &SettingsManager{ns: prefs.Namespace(constants.NamespaceSettings)}
}

func (m *SettingsManager) Get() models.Settings {
	all, err := m.ns.All()
	if err != nil {
		return models.DefaultSettings()
	}
	return models.MapToSettings(all)
}

func (m *SettingsManager) Save(s models.Settings) error {
	if err := validation.StepLength(s.StepLengthCm); err != nil {
		return err
	}
	return m.ns.Update(func() error {
		for k, v := range models.SettingsToMap(s) {
			if err := m.ns.PutString(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// IsFirstRun reports whether onboarding has not been completed.
func (m *SettingsManager) IsFirstRun() bool {
	return m.ns.GetBool(constants.SettingFirstRun, true)
}

func (m *SettingsManager) CompleteFirstRun() error {
	return m.ns.PutBool(constants.SettingFirstRun, false)
}

func goalKey(metric models.Metric) (string, error) {
	switch metric {
	case models.MetricSteps:
		return constants.SettingStepGoal, nil
	case models.MetricHydration:
		return constants.SettingWaterGoal, nil
	}
	return "", fmt.Errorf("unknown metric %q", metric)
}

// Goal returns the stored goal for metric, or its default.
func (m *SettingsManager) Goal(metric models.Metric) int {
	b, ok := models.BoundsFor(metric)
	key, err := goalKey(metric)
	if !ok || err != nil {
		return 0
	}
	v := m.ns.GetInt(key, b.Default)
	if !b.Contains(v) {
		return b.Default
	}
	return v
}

// SetGoal rejects values outside the metric's bounds without storing them.
func (m *SettingsManager) SetGoal(metric models.Metric, value int) error {
	if err := validation.Goal(metric, value); err != nil {
		return err
	}
	key, err := goalKey(metric)
	if err != nil {
		return err
	}
	return m.ns.PutInt(key, value)
}

func (m *SettingsManager) StepLength() float64 {
	v := m.ns.GetFloat(constants.SettingStepLength, constants.DefaultStepLengthCm)
	if v <= 0 {
		return constants.DefaultStepLengthCm
	}
	return v
}

func (m *SettingsManager) SetStepLength(cm float64) error {
	if err := validation.StepLength(cm); err != nil {
		return err
	}
	return m.ns.PutFloat(constants.SettingStepLength, cm)
}

func (m *SettingsManager) Timezone() string {
	return m.ns.GetString(constants.SettingTimezone, constants.DefaultTimezone)
}
