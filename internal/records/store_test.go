package records

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/storage"
)

func setupMoodStore(t *testing.T) (*Store[models.MoodEntry], *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	prefs := storage.New(backend)
	return NewStore[models.MoodEntry](prefs.Namespace("mood"), "mood_entries"), backend
}

func at(date, hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSaveAndGetAll(t *testing.T) {
	store, _ := setupMoodStore(t)
	entry := models.NewMoodEntry(at("2024-03-10", "09:00"), "🙂", 4, "coffee")

	if err := store.Save(entry); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	all := store.GetAll()
	if len(all) != 1 || all[0] != entry {
		t.Errorf("GetAll() = %+v, want [%+v]", all, entry)
	}
	got, ok := store.Get(entry.ID)
	if !ok || got != entry {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
}

func TestSaveReplacesInPlace(t *testing.T) {
	store, _ := setupMoodStore(t)
	first := models.NewMoodEntry(at("2024-03-10", "09:00"), "", 2, "")
	second := models.NewMoodEntry(at("2024-03-10", "08:00"), "", 3, "")
	_ = store.Save(first)
	_ = store.Save(second)

	edited := first
	edited.Level = 5
	edited.Notes = "better"
	if err := store.Save(edited); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all := store.GetAll()
	if len(all) != 2 {
		t.Fatalf("len(GetAll()) = %d, want 2", len(all))
	}
	if all[0] != edited {
		t.Errorf("updated record moved or not replaced: %+v", all)
	}
	if all[1].ID != second.ID {
		t.Error("storage order changed on update")
	}
}

func TestGetForDate(t *testing.T) {
	store, _ := setupMoodStore(t)
	late := models.NewMoodEntry(at("2024-03-10", "18:30"), "", 4, "")
	early := models.NewMoodEntry(at("2024-03-10", "07:15"), "", 3, "")
	other := models.NewMoodEntry(at("2024-03-11", "07:00"), "", 5, "")
	for _, e := range []models.MoodEntry{late, other, early} {
		_ = store.Save(e)
	}

	got := store.GetForDate("2024-03-10")
	if len(got) != 2 {
		t.Fatalf("len(GetForDate()) = %d, want 2", len(got))
	}
	if got[0].ID != early.ID || got[1].ID != late.ID {
		t.Errorf("GetForDate() not ordered by time: %v, %v", got[0].Time, got[1].Time)
	}
	if len(store.GetForDate("2024-03-12")) != 0 {
		t.Error("GetForDate() for an empty day should be empty")
	}
}

func TestGetForDateRange(t *testing.T) {
	store, _ := setupMoodStore(t)
	for _, d := range []string{"2024-03-12", "2024-03-09", "2024-03-10", "2024-03-13"} {
		_ = store.Save(models.NewMoodEntry(at(d, "12:00"), "", 3, ""))
	}

	got := store.GetForDateRange("2024-03-10", "2024-03-12")
	if len(got) != 2 {
		t.Fatalf("len(GetForDateRange()) = %d, want 2", len(got))
	}
	if got[0].Date != "2024-03-10" || got[1].Date != "2024-03-12" {
		t.Errorf("range = %s..%s, want inclusive chronological", got[0].Date, got[1].Date)
	}
}

func TestDelete(t *testing.T) {
	store, _ := setupMoodStore(t)
	a := models.NewMoodEntry(at("2024-03-10", "09:00"), "", 3, "")
	b := models.NewMoodEntry(at("2024-03-10", "10:00"), "", 3, "")
	_ = store.Save(a)
	_ = store.Save(b)

	if err := store.Delete("does-not-exist"); err != nil {
		t.Fatalf("Delete() of absent id error = %v", err)
	}
	if len(store.GetAll()) != 2 {
		t.Fatal("Delete() of absent id changed the list")
	}
	if err := store.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	all := store.GetAll()
	if len(all) != 1 || all[0].ID != b.ID {
		t.Errorf("GetAll() after Delete = %+v", all)
	}
}

func TestCorruptListReadsAsEmpty(t *testing.T) {
	store, backend := setupMoodStore(t)
	_ = backend.Put("mood", "mood_entries", "not json")

	if got := store.GetAll(); len(got) != 0 {
		t.Errorf("GetAll() on corrupt data = %v, want empty", got)
	}
	// A save after corruption starts a fresh list instead of failing.
	if err := store.Save(models.NewMoodEntry(at("2024-03-10", "09:00"), "", 3, "")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(store.GetAll()) != 1 {
		t.Error("expected one record after saving over corrupt data")
	}
}

func TestAverage(t *testing.T) {
	level := func(m models.MoodEntry) float64 { return float64(m.Level) }

	if got := Average([]models.MoodEntry{}, level); got != 0 {
		t.Errorf("Average(empty) = %v, want 0", got)
	}

	entries := []models.MoodEntry{
		models.NewMoodEntry(at("2024-03-10", "08:00"), "", 3, ""),
		models.NewMoodEntry(at("2024-03-10", "12:00"), "", 4, ""),
		models.NewMoodEntry(at("2024-03-10", "20:00"), "", 4, ""),
	}
	if got := Average(entries, level); math.Abs(got-3.6667) > 0.0001 {
		t.Errorf("Average() = %v, want 3.6667", got)
	}
}

func TestAggregateByInterval(t *testing.T) {
	level := func(m models.MoodEntry) float64 { return float64(m.Level) }
	entries := []models.MoodEntry{
		models.NewMoodEntry(at("2024-03-10", "02:00"), "", 1, ""),
		models.NewMoodEntry(at("2024-03-10", "07:00"), "", 2, ""),
		models.NewMoodEntry(at("2024-03-10", "11:59"), "", 4, ""),
		models.NewMoodEntry(at("2024-03-10", "19:00"), "", 5, ""),
	}

	buckets := AggregateByInterval(entries, DayParts, level)
	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2 (afternoon omitted)", len(buckets))
	}
	if buckets[0].Label != "Morning" || buckets[0].Average != 3 || buckets[0].Count != 2 {
		t.Errorf("morning bucket = %+v", buckets[0])
	}
	if buckets[1].Label != "Evening" || buckets[1].Average != 5 {
		t.Errorf("evening bucket = %+v", buckets[1])
	}

	groups := GroupByInterval(entries, FullDay)
	if len(groups["Night"]) != 1 || len(groups["Afternoon"]) != 0 {
		t.Errorf("GroupByInterval() = %v", groups)
	}
}

func TestHourOf(t *testing.T) {
	tests := map[string]int{"09:30": 9, "23:59": 23, "00:00": 0, "bad": 0, "": 0, "25:00": 0}
	for in, want := range tests {
		if got := HourOf(in); got != want {
			t.Errorf("HourOf(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label("2024-03-10", Bucket{Label: "Morning"}); got != "03-10 Morning" {
		t.Errorf("Label() = %q", got)
	}
}
