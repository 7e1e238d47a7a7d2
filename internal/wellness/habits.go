package wellness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/records"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
)

type HabitManager struct {
	habits   *records.Store[models.Habit]
	progress *records.Store[models.HabitCompletion]
	clock    utils.Clock
}

func NewHabitManager(prefs *storage.Prefs, clock utils.Clock) *HabitManager {
	ns := prefs.Namespace(constants.NamespaceHabits)
	return &HabitManager{
		habits:   records.NewStore[models.Habit](ns, constants.KeyHabits),
		progress: records.NewStore[models.HabitCompletion](ns, constants.KeyHabitProgress),
		clock:    clock,
	}
}

// Add creates an active habit.
func (m *HabitManager) Add(name, description, category string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if err := validation.NonEmpty("habit name", name); err != nil {
		return models.Habit{}, err
	}
	if _, ok := m.ByName(name); ok {
		return models.Habit{}, fmt.Errorf("habit %q already exists", name)
	}
	h := models.NewHabit(m.clock(), name, description, category)
	return h, m.Save(h)
}

func (m *HabitManager) Save(h models.Habit) error {
	return m.habits.Save(h)
}

func (m *HabitManager) GetAll() []models.Habit {
	return m.habits.GetAll()
}

func (m *HabitManager) Active() []models.Habit {
	return slices.DeleteFunc(m.habits.GetAll(), func(h models.Habit) bool { return !h.Active })
}

func (m *HabitManager) Get(id string) (models.Habit, bool) {
	return m.habits.Get(id)
}

// ByName finds a habit by case-insensitive name.
func (m *HabitManager) ByName(name string) (models.Habit, bool) {
	for _, h := range m.habits.GetAll() {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Resolve looks a habit up by id, then by name.
func (m *HabitManager) Resolve(ref string) (models.Habit, bool) {
	if h, ok := m.Get(ref); ok {
		return h, true
	}
	return m.ByName(ref)
}

// SetActive archives or re-activates a habit.
func (m *HabitManager) SetActive(id string, active bool) error {
	h, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("habit not found: %s", id)
	}
	h.Active = active
	return m.Save(h)
}

// DeleteHabit removes a habit. With cascade, its completions go too;
// without it they stay behind as orphans keyed by the old id.
func (m *HabitManager) DeleteHabit(id string, cascade bool) error {
	if err := m.habits.Delete(id); err != nil {
		return err
	}
	if !cascade {
		return nil
	}
	n, err := m.progress.DeleteWhere(func(c models.HabitCompletion) bool { return c.HabitID == id })
	if err != nil {
		return err
	}
	logger.Debug("Deleted habit", "id", id, "completions", n)
	return nil
}

// MarkComplete sets the (habit, date) completion, creating it if needed.
func (m *HabitManager) MarkComplete(habitID, date string, completed bool) (models.HabitCompletion, error) {
	if _, ok := m.Get(habitID); !ok {
		return models.HabitCompletion{}, fmt.Errorf("habit not found: %s", habitID)
	}
	if err := validation.Date(date); err != nil {
		return models.HabitCompletion{}, err
	}

	now := m.clock()
	at, err := utils.AtDateTime(date, now.Format(constants.TimeFormat), now.Location())
	if err != nil {
		return models.HabitCompletion{}, err
	}

	var out models.HabitCompletion
	err = m.progress.Mutate(func(all []models.HabitCompletion) ([]models.HabitCompletion, error) {
		idx := slices.IndexFunc(all, func(c models.HabitCompletion) bool {
			return c.HabitID == habitID && c.Date == date
		})
		if idx >= 0 {
			all[idx].Completed = completed
			out = all[idx]
			return all, nil
		}
		c := models.NewHabitCompletion(at, habitID, completed)
		out = c
		return append(all, c), nil
	})
	return out, err
}

func (m *HabitManager) ProgressForDate(date string) []models.HabitCompletion {
	return m.progress.GetForDate(date)
}

func (m *HabitManager) IsComplete(habitID, date string) bool {
	for _, c := range m.progress.GetForDate(date) {
		if c.HabitID == habitID {
			return c.Completed
		}
	}
	return false
}

// CompletionPercentage is the share of active habits completed on date.
func (m *HabitManager) CompletionPercentage(date string) float64 {
	active := m.Active()
	if len(active) == 0 {
		return 0
	}
	done := 0
	for _, h := range active {
		if m.IsComplete(h.ID, date) {
			done++
		}
	}
	return float64(done) / float64(len(active)) * 100
}

// Streak counts consecutive completed days ending at date.
func (m *HabitManager) Streak(habitID, date string) int {
	if validation.Date(date) != nil {
		return 0
	}
	streak := 0
	for d := date; m.IsComplete(habitID, d); d = utils.DaysBefore(d, 1) {
		streak++
	}
	return streak
}
