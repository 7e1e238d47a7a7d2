package wellness

import (
	"fmt"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/records"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
)

type MoodManager struct {
	store *records.Store[models.MoodEntry]
	clock utils.Clock
}

func NewMoodManager(prefs *storage.Prefs, clock utils.Clock) *MoodManager {
	return &MoodManager{
		store: records.NewStore[models.MoodEntry](prefs.Namespace(constants.NamespaceMood), constants.KeyMoodEntries),
		clock: clock,
	}
}

func moodLevel(e models.MoodEntry) float64 { return float64(e.Level) }

// Save stores e, replacing any entry with the same id.
func (m *MoodManager) Save(e models.MoodEntry) error {
	if err := validation.MoodLevel(e.Level); err != nil {
		return err
	}
	if err := m.store.Save(e); err != nil {
		return fmt.Errorf("failed to save mood entry: %w", err)
	}
	logger.Debug("Saved mood entry", "id", e.ID, "date", e.Date, "level", e.Level)
	return nil
}

// Add records a new mood at the current time.
func (m *MoodManager) Add(level int, emoji, notes string) (models.MoodEntry, error) {
	e := models.NewMoodEntry(m.clock(), emoji, level, notes)
	return e, m.Save(e)
}

// QuickMood records a mood with the standard quick-entry note.
func (m *MoodManager) QuickMood(emoji string, level int) (models.MoodEntry, error) {
	return m.Add(level, emoji, constants.QuickMoodNote)
}

func (m *MoodManager) GetAll() []models.MoodEntry {
	return m.store.GetAll()
}

func (m *MoodManager) Get(id string) (models.MoodEntry, bool) {
	return m.store.Get(id)
}

func (m *MoodManager) GetForDate(date string) []models.MoodEntry {
	return m.store.GetForDate(date)
}

func (m *MoodManager) Today() []models.MoodEntry {
	return m.store.GetForDate(m.clock.Today())
}

// Weekly returns entries from seven days ago through today.
func (m *MoodManager) Weekly() []models.MoodEntry {
	today := m.clock.Today()
	return m.store.GetForDateRange(utils.DaysBefore(today, 7), today)
}

func (m *MoodManager) Delete(id string) error {
	return m.store.Delete(id)
}

func (m *MoodManager) Clear() error {
	return m.store.Clear()
}

// Average is the mean level of entries, 0 when there are none.
func (m *MoodManager) Average(entries []models.MoodEntry) float64 {
	return records.Average(entries, moodLevel)
}

// Trend returns the average level for each of the last days days, oldest
// first. Days without entries average 0.
func (m *MoodManager) Trend(days int) []DailyAverage {
	dates := utils.LastNDates(m.clock.Today(), days)
	out := make([]DailyAverage, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyAverage{Label: d, Average: m.Average(m.store.GetForDate(d))})
	}
	return out
}

// DetailedTrend averages each day's entries per day part, labeled like
// "03-10 Morning". Empty day parts are left out.
func (m *MoodManager) DetailedTrend(days int) []DailyAverage {
	var out []DailyAverage
	for _, d := range utils.LastNDates(m.clock.Today(), days) {
		for _, b := range records.AggregateByInterval(m.store.GetForDate(d), records.DayParts, moodLevel) {
			out = append(out, DailyAverage{Label: records.Label(d, b), Average: b.Average})
		}
	}
	return out
}

// TodayByInterval groups today's entries into night, morning, afternoon
// and evening.
func (m *MoodManager) TodayByInterval() map[string][]models.MoodEntry {
	return records.GroupByInterval(m.Today(), records.FullDay)
}

// TrendDirection compares the later half of the week's entries with the
// earlier half.
func (m *MoodManager) TrendDirection() string {
	return trendDirection(m.Weekly())
}

func trendDirection(entries []models.MoodEntry) string {
	if len(entries) < constants.MoodTrendMinEntries {
		return constants.MoodTrendNoData
	}
	half := len(entries) / 2
	older := records.Average(entries[:half], moodLevel)
	recent := records.Average(entries[half:], moodLevel)
	switch {
	case recent > older+constants.MoodTrendThreshold:
		return constants.MoodTrendImproving
	case recent < older-constants.MoodTrendThreshold:
		return constants.MoodTrendDeclining
	}
	return constants.MoodTrendStable
}

// Stats summarizes how many entries are stored.
func (m *MoodManager) Stats() string {
	return fmt.Sprintf("Total: %d, Today: %d, This Week: %d", len(m.GetAll()), len(m.Today()), len(m.Weekly()))
}
