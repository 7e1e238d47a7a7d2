package models

import "github.com/julianstephens/wellnest/internal/constants"

// Metric names a quantity that carries a daily goal.
type Metric string

const (
	MetricSteps     Metric = "steps"
	MetricHydration Metric = "hydration"
)

// GoalBounds is the inclusive range a goal value must fall in.
type GoalBounds struct {
	Min     int
	Max     int
	Default int
	Unit    string
}

func (b GoalBounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// BoundsFor returns the goal bounds of m. Unknown metrics report ok=false.
func BoundsFor(m Metric) (GoalBounds, bool) {
	switch m {
	case MetricSteps:
		return GoalBounds{Min: constants.MinStepGoal, Max: constants.MaxStepGoal, Default: constants.DefaultStepGoal, Unit: "steps"}, true
	case MetricHydration:
		return GoalBounds{Min: constants.MinHydrationGoal, Max: constants.MaxHydrationGoal, Default: constants.DefaultHydrationGoal, Unit: "ml"}, true
	}
	return GoalBounds{}, false
}

// Percentage reports progress toward goal, capped at 100.
func Percentage(value, goal int) int {
	if goal <= 0 {
		return 0
	}
	p := value * 100 / goal
	if p > 100 {
		return 100
	}
	return p
}
