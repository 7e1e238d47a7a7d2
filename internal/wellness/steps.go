package wellness

import (
	"fmt"
	"slices"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/records"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/utils"
)

// StepManager keeps the per-day step summaries and the log of step additions.
// The live running total belongs to the step daemon.
type StepManager struct {
	history  *records.Store[models.StepData]
	entries  *records.Store[models.StepEntry]
	settings *SettingsManager
	clock    utils.Clock
}

func NewStepManager(prefs *storage.Prefs, settings *SettingsManager, clock utils.Clock) *StepManager {
	ns := prefs.Namespace(constants.NamespaceSteps)
	return &StepManager{
		history:  records.NewStore[models.StepData](ns, constants.KeyStepHistory),
		entries:  records.NewStore[models.StepEntry](ns, constants.KeyStepEntries),
		settings: settings,
		clock:    clock,
	}
}

// UpdateDay stores the summary for date derived from steps, replacing any
// summary already kept for that date.
func (m *StepManager) UpdateDay(date string, steps int) (models.StepData, error) {
	data := models.NewStepData(date, steps, m.settings.StepLength(), m.clock())
	if err := m.history.Save(data); err != nil {
		return models.StepData{}, fmt.Errorf("failed to save step data: %w", err)
	}
	return data, nil
}

func (m *StepManager) ForDate(date string) (models.StepData, bool) {
	return m.history.Get(date)
}

func (m *StepManager) Today() models.StepData {
	today := m.clock.Today()
	if d, ok := m.history.Get(today); ok {
		return d
	}
	return models.StepData{Date: today}
}

func (m *StepManager) History() []models.StepData {
	all := m.history.GetAll()
	slices.SortFunc(all, func(a, b models.StepData) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return all
}

// Weekly returns a summary for each of the last seven days, oldest first.
// Days without data report zero steps.
func (m *StepManager) Weekly() []models.StepData {
	dates := utils.LastNDates(m.clock.Today(), constants.DaysPerWeek)
	out := make([]models.StepData, 0, len(dates))
	for _, d := range dates {
		data, ok := m.history.Get(d)
		if !ok {
			data = models.StepData{Date: d}
		}
		out = append(out, data)
	}
	return out
}

// RecordEntry appends to the log of step additions.
func (m *StepManager) RecordEntry(e models.StepEntry) error {
	return m.entries.Save(e)
}

func (m *StepManager) EntriesForDate(date string) []models.StepEntry {
	return m.entries.GetForDate(date)
}

func (m *StepManager) Goal() int {
	return m.settings.Goal(models.MetricSteps)
}

func (m *StepManager) SetGoal(goal int) error {
	return m.settings.SetGoal(models.MetricSteps, goal)
}

func (m *StepManager) StepLength() float64 {
	return m.settings.StepLength()
}

func (m *StepManager) SetStepLength(cm float64) error {
	return m.settings.SetStepLength(cm)
}

// Percentage is steps as a share of the goal, capped at 100.
func (m *StepManager) Percentage(steps int) int {
	return models.Percentage(steps, m.Goal())
}
