package models

import (
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
)

// Habit is a recurring daily practice. Its stamp records when it was created.
type Habit struct {
	Stamp
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	TargetDaily int    `json:"target_daily"`
	Active      bool   `json:"active"`
}

func NewHabit(at time.Time, name, description, category string) Habit {
	if category == "" {
		category = constants.DefaultHabitCat
	}
	return Habit{
		Stamp:       NewStamp(at),
		Name:        name,
		Description: description,
		Category:    category,
		TargetDaily: constants.DefaultHabitDaily,
		Active:      true,
	}
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	h.Stamp = decodeStamp(f)
	h.Name = f.str("name", "")
	h.Description = f.str("description", "")
	h.Category = f.str("category", constants.DefaultHabitCat)
	h.TargetDaily = f.int("target_daily", constants.DefaultHabitDaily)
	h.Active = f.bool("active", true)
	return nil
}

// HabitCompletion records whether a habit was done on a date. There is at
// most one completion per (habit, date).
type HabitCompletion struct {
	Stamp
	HabitID   string `json:"habit_id"`
	Completed bool   `json:"completed"`
}

func NewHabitCompletion(at time.Time, habitID string, completed bool) HabitCompletion {
	return HabitCompletion{Stamp: NewStamp(at), HabitID: habitID, Completed: completed}
}

func (c *HabitCompletion) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	c.Stamp = decodeStamp(f)
	c.HabitID = f.str("habit_id", "")
	c.Completed = f.bool("completed", false)
	return nil
}
