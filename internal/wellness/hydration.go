package wellness

import (
	"fmt"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/daybound"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/records"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
)

type HydrationManager struct {
	store    *records.Store[models.HydrationLog]
	counter  *daybound.Tracker
	settings *SettingsManager
	clock    utils.Clock
}

func NewHydrationManager(prefs *storage.Prefs, settings *SettingsManager, clock utils.Clock) *HydrationManager {
	ns := prefs.Namespace(constants.NamespaceHydration)
	return &HydrationManager{
		store:    records.NewStore[models.HydrationLog](ns, constants.KeyHydrationLogs),
		counter:  daybound.New(ns, constants.CounterPrefixWater),
		settings: settings,
		clock:    clock,
	}
}

func amount(h models.HydrationLog) float64 { return float64(h.AmountML) }

// Add logs amountML of water now.
func (m *HydrationManager) Add(amountML int) (models.HydrationLog, error) {
	return m.AddAt(amountML, m.clock())
}

// AddAt logs amountML at a given instant, for back-filled entries.
func (m *HydrationManager) AddAt(amountML int, at time.Time) (models.HydrationLog, error) {
	if err := validation.WaterAmount(amountML); err != nil {
		return models.HydrationLog{}, err
	}
	entry := models.NewHydrationLog(at, amountML)
	if err := m.store.Save(entry); err != nil {
		return models.HydrationLog{}, fmt.Errorf("failed to save hydration entry: %w", err)
	}

	today := m.clock.Today()
	if _, err := m.counter.CheckAndRollover(today); err != nil {
		logger.Warn("Hydration rollover failed", "error", err)
	}
	if entry.Date == today {
		if _, err := m.counter.Add(amountML); err != nil {
			logger.Warn("Failed to update hydration counter", "error", err)
		}
	}
	logger.Debug("Logged water", "amount_ml", amountML, "date", entry.Date)
	return entry, nil
}

func (m *HydrationManager) GetAll() []models.HydrationLog {
	return m.store.GetAll()
}

func (m *HydrationManager) GetForDate(date string) []models.HydrationLog {
	return m.store.GetForDate(date)
}

func (m *HydrationManager) Today() []models.HydrationLog {
	return m.store.GetForDate(m.clock.Today())
}

// TodayIntake sums today's logged amounts.
func (m *HydrationManager) TodayIntake() int {
	return m.IntakeFor(m.clock.Today())
}

func (m *HydrationManager) IntakeFor(date string) int {
	return int(records.Sum(m.store.GetForDate(date), amount))
}

// Weekly returns the total for each of the last seven days, oldest first.
func (m *HydrationManager) Weekly() []DailyTotal {
	dates := utils.LastNDates(m.clock.Today(), constants.DaysPerWeek)
	out := make([]DailyTotal, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyTotal{Date: d, Value: m.IntakeFor(d)})
	}
	return out
}

// WeeklyRing returns the per-weekday archive kept by the day counter.
func (m *HydrationManager) WeeklyRing() models.WeeklyRing {
	today := m.clock.Today()
	if _, err := m.counter.CheckAndRollover(today); err != nil {
		logger.Warn("Hydration rollover failed", "error", err)
	}
	return m.counter.WeeklyWithToday(today)
}

// Percentage is today's intake as a share of the hydration goal, capped at 100.
func (m *HydrationManager) Percentage() int {
	return models.Percentage(m.TodayIntake(), m.Goal())
}

func (m *HydrationManager) Goal() int {
	return m.settings.Goal(models.MetricHydration)
}

func (m *HydrationManager) SetGoal(ml int) error {
	return m.settings.SetGoal(models.MetricHydration, ml)
}

// Delete removes an entry. Removing one of today's entries also lowers the
// day counter.
func (m *HydrationManager) Delete(id string) error {
	entry, ok := m.store.Get(id)
	if !ok {
		return nil
	}
	if err := m.store.Delete(id); err != nil {
		return err
	}
	if entry.Date == m.counter.LastDate() {
		if _, err := m.counter.Add(-entry.AmountML); err != nil {
			logger.Warn("Failed to update hydration counter", "error", err)
		}
	}
	return nil
}
