package wellness

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/storage"
	"github.com/julianstephens/wellnest/internal/utils"
	"github.com/julianstephens/wellnest/internal/validation"
)

// mutableClock lets a test move the current time forward.
type mutableClock struct{ now time.Time }

func (c *mutableClock) clock() utils.Clock { return func() time.Time { return c.now } }

func setupManagers(t *testing.T, now time.Time) (*Managers, *mutableClock, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	mc := &mutableClock{now: now}
	return NewManagers(storage.New(backend), mc.clock()), mc, backend
}

func day(date, hhmm string) time.Time {
	t, err := utils.AtDateTime(date, hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMoodAverageForDay(t *testing.T) {
	m, mc, _ := setupManagers(t, day("2024-03-10", "08:00"))

	for _, step := range []struct {
		at    string
		level int
	}{{"08:00", 3}, {"12:00", 4}, {"20:00", 4}} {
		mc.now = day("2024-03-10", step.at)
		if _, err := m.Mood.Add(step.level, "", ""); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	avg := m.Mood.Average(m.Mood.GetForDate("2024-03-10"))
	if math.Abs(avg-3.6667) > 0.0001 {
		t.Errorf("average = %v, want 3.6667", avg)
	}
}

func TestMoodRejectsInvalidLevel(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "08:00"))
	if _, err := m.Mood.Add(6, "", ""); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("Add(6) error = %v, want ErrInvalidInput", err)
	}
	if len(m.Mood.GetAll()) != 0 {
		t.Error("invalid mood was stored")
	}
}

func TestMoodQuickAndTrend(t *testing.T) {
	m, mc, _ := setupManagers(t, day("2024-03-08", "09:00"))
	_, _ = m.Mood.Add(2, "", "")
	mc.now = day("2024-03-10", "07:00")
	q, err := m.Mood.QuickMood("😄", 5)
	if err != nil {
		t.Fatal(err)
	}
	if q.Notes != "Quick mood entry" {
		t.Errorf("quick mood note = %q", q.Notes)
	}
	mc.now = day("2024-03-10", "19:00")
	_, _ = m.Mood.Add(3, "", "")

	trend := m.Mood.Trend(3)
	if len(trend) != 3 {
		t.Fatalf("len(Trend(3)) = %d", len(trend))
	}
	want := []DailyAverage{{"2024-03-08", 2}, {"2024-03-09", 0}, {"2024-03-10", 4}}
	for i := range want {
		if trend[i] != want[i] {
			t.Errorf("trend[%d] = %+v, want %+v", i, trend[i], want[i])
		}
	}

	detailed := m.Mood.DetailedTrend(3)
	labels := []string{"03-08 Morning", "03-10 Morning", "03-10 Evening"}
	if len(detailed) != len(labels) {
		t.Fatalf("DetailedTrend() = %+v", detailed)
	}
	for i, l := range labels {
		if detailed[i].Label != l {
			t.Errorf("detailed[%d].Label = %q, want %q", i, detailed[i].Label, l)
		}
	}

	byInterval := m.Mood.TodayByInterval()
	if len(byInterval["Morning"]) != 1 || len(byInterval["Evening"]) != 1 || len(byInterval["Night"]) != 0 {
		t.Errorf("TodayByInterval() = %v", byInterval)
	}
}

func TestTrendDirection(t *testing.T) {
	mk := func(levels ...int) []models.MoodEntry {
		out := make([]models.MoodEntry, len(levels))
		for i, l := range levels {
			out[i] = models.MoodEntry{Level: l}
		}
		return out
	}
	tests := []struct {
		name    string
		entries []models.MoodEntry
		want    string
	}{
		{"too few", mk(1, 5), "Not enough data"},
		{"improving", mk(1, 2, 4, 5), "Improving"},
		{"declining", mk(5, 5, 2, 1), "Declining"},
		{"stable", mk(3, 3, 3, 4), "Stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trendDirection(tt.entries); got != tt.want {
				t.Errorf("trendDirection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHydrationTodayIntake(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "10:00"))

	for i := 0; i < 3; i++ {
		if _, err := m.Hydration.Add(250); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if got := m.Hydration.TodayIntake(); got != 750 {
		t.Errorf("TodayIntake() = %d, want 750", got)
	}
	if got := m.Hydration.Percentage(); got != 30 {
		t.Errorf("Percentage() = %d, want 30", got)
	}
}

func TestHydrationRejectsBadAmount(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "10:00"))
	for _, ml := range []int{0, -5, 5001} {
		if _, err := m.Hydration.Add(ml); !errors.Is(err, validation.ErrInvalidInput) {
			t.Errorf("Add(%d) error = %v, want ErrInvalidInput", ml, err)
		}
	}
	if len(m.Hydration.GetAll()) != 0 {
		t.Error("invalid amounts were stored")
	}
}

func TestHydrationCounterRollsOver(t *testing.T) {
	m, mc, _ := setupManagers(t, day("2024-03-10", "10:00")) // Sunday
	_, _ = m.Hydration.Add(500)
	e, _ := m.Hydration.Add(300)
	if err := m.Hydration.Delete(e.ID); err != nil {
		t.Fatal(err)
	}

	mc.now = day("2024-03-11", "09:00")
	_, _ = m.Hydration.Add(200)

	ring := m.Hydration.WeeklyRing()
	if ring[0] != 500 {
		t.Errorf("Sunday slot = %d, want 500", ring[0])
	}
	if ring[1] != 200 {
		t.Errorf("Monday live slot = %d, want 200", ring[1])
	}

	weekly := m.Hydration.Weekly()
	if len(weekly) != 7 || weekly[5] != (DailyTotal{"2024-03-10", 500}) || weekly[6] != (DailyTotal{"2024-03-11", 200}) {
		t.Errorf("Weekly() = %+v", weekly)
	}
}

func TestGoalBounds(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "10:00"))

	if got := m.Steps.Goal(); got != 10000 {
		t.Errorf("default step goal = %d", got)
	}
	for _, v := range []int{0, 100001} {
		if err := m.Steps.SetGoal(v); err == nil {
			t.Errorf("SetGoal(%d) accepted", v)
		}
	}
	for _, v := range []int{1, 100000} {
		if err := m.Steps.SetGoal(v); err != nil {
			t.Errorf("SetGoal(%d) error = %v", v, err)
		}
		if got := m.Steps.Goal(); got != v {
			t.Errorf("Goal() = %d, want %d", got, v)
		}
	}
	if err := m.Hydration.SetGoal(10001); err == nil {
		t.Error("hydration goal above bound accepted")
	}
	if got := m.Hydration.Goal(); got != 2500 {
		t.Errorf("hydration goal = %d, want untouched default", got)
	}
}

func TestStepHistory(t *testing.T) {
	m, mc, _ := setupManagers(t, day("2024-03-10", "10:00"))

	if _, err := m.Steps.UpdateDay("2024-03-10", 4000); err != nil {
		t.Fatal(err)
	}
	d, err := m.Steps.UpdateDay("2024-03-10", 8000)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Steps.History()) != 1 {
		t.Errorf("UpdateDay() on same date duplicated: %+v", m.Steps.History())
	}
	if d.DistanceKm != 6 || math.Abs(d.Calories-320) > 1e-9 || d.ActiveMinutes != 80 {
		t.Errorf("derived metrics = %+v", d)
	}

	if err := m.Steps.SetStepLength(80); err != nil {
		t.Fatal(err)
	}
	mc.now = day("2024-03-11", "10:00")
	d, _ = m.Steps.UpdateDay("2024-03-11", 1000)
	if d.DistanceKm != 0.8 {
		t.Errorf("DistanceKm with 80cm stride = %v", d.DistanceKm)
	}

	weekly := m.Steps.Weekly()
	if len(weekly) != 7 || weekly[6].StepCount != 1000 || weekly[5].StepCount != 8000 || weekly[0].StepCount != 0 {
		t.Errorf("Weekly() = %+v", weekly)
	}
	if m.Steps.Percentage(5000) != 50 {
		t.Errorf("Percentage(5000) = %d", m.Steps.Percentage(5000))
	}
}

func TestHabits(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "10:00"))

	read, err := m.Habits.Add("Read", "20 pages", "")
	if err != nil {
		t.Fatal(err)
	}
	walk, _ := m.Habits.Add("Walk", "", "Fitness")
	if _, err := m.Habits.Add("read", "", ""); err == nil {
		t.Error("duplicate habit name accepted")
	}
	if read.Category != "General" || !read.Active || read.TargetDaily != 1 {
		t.Errorf("habit defaults = %+v", read)
	}

	if _, err := m.Habits.MarkComplete(read.ID, "2024-03-10", true); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Habits.MarkComplete(read.ID, "2024-03-10", true); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Habits.ProgressForDate("2024-03-10")); got != 1 {
		t.Errorf("completions for date = %d, want 1 (upsert)", got)
	}
	if got := m.Habits.CompletionPercentage("2024-03-10"); got != 50 {
		t.Errorf("CompletionPercentage() = %v, want 50", got)
	}

	_, _ = m.Habits.MarkComplete(read.ID, "2024-03-09", true)
	if got := m.Habits.Streak(read.ID, "2024-03-10"); got != 2 {
		t.Errorf("Streak() = %d, want 2", got)
	}

	if err := m.Habits.SetActive(walk.ID, false); err != nil {
		t.Fatal(err)
	}
	if got := m.Habits.CompletionPercentage("2024-03-10"); got != 100 {
		t.Errorf("CompletionPercentage() with archived habit = %v, want 100", got)
	}
	if _, err := m.Habits.MarkComplete("missing", "2024-03-10", true); err == nil {
		t.Error("MarkComplete() for unknown habit should fail")
	}
}

func TestDeleteHabitCascade(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "10:00"))
	keep, _ := m.Habits.Add("Keep", "", "")
	cascade, _ := m.Habits.Add("Cascade", "", "")
	_, _ = m.Habits.MarkComplete(keep.ID, "2024-03-10", true)
	_, _ = m.Habits.MarkComplete(cascade.ID, "2024-03-10", true)

	if err := m.Habits.DeleteHabit(keep.ID, false); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Habits.ProgressForDate("2024-03-10")); got != 2 {
		t.Errorf("non-cascading delete removed completions, %d left", got)
	}

	if err := m.Habits.DeleteHabit(cascade.ID, true); err != nil {
		t.Fatal(err)
	}
	left := m.Habits.ProgressForDate("2024-03-10")
	if len(left) != 1 || left[0].HabitID != keep.ID {
		t.Errorf("cascading delete left %+v", left)
	}
}

func TestSettings(t *testing.T) {
	m, _, backend := setupManagers(t, day("2024-03-10", "10:00"))

	if !m.Settings.IsFirstRun() {
		t.Error("fresh store should be first run")
	}
	s := m.Settings.Get()
	s.UserName = "Sam"
	s.FirstRun = false
	if err := m.Settings.Save(s); err != nil {
		t.Fatal(err)
	}
	if got := m.Settings.Get(); got.UserName != "Sam" || got.FirstRun {
		t.Errorf("Get() = %+v", got)
	}

	_ = backend.Put("settings", "step_goal", "999999")
	if got := m.Steps.Goal(); got != 10000 {
		t.Errorf("out-of-range stored goal = %d, want default", got)
	}
}

func TestBackdatedHabitCompletionStamp(t *testing.T) {
	m, _, _ := setupManagers(t, day("2024-03-10", "14:30"))
	read, err := m.Habits.Add("Read", "", "")
	if err != nil {
		t.Fatal(err)
	}

	c, err := m.Habits.MarkComplete(read.ID, "2024-03-01", true)
	if err != nil {
		t.Fatalf("MarkComplete() error = %v", err)
	}
	stamped := time.UnixMilli(c.Timestamp).UTC()
	if got := stamped.Format(constants.DateFormat); got != c.Date || c.Date != "2024-03-01" {
		t.Errorf("timestamp date = %s, record date = %s, want 2024-03-01", got, c.Date)
	}
	if got := stamped.Format(constants.TimeFormat); got != c.Time {
		t.Errorf("timestamp time = %s, record time = %s", got, c.Time)
	}
	if got := m.Habits.ProgressForDate("2024-03-01"); len(got) != 1 {
		t.Errorf("completions on back-dated day = %d, want 1", len(got))
	}
}
