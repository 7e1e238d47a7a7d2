package habits

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/config"
	"github.com/julianstephens/wellnest/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Tray.Enabled = false

	ctx, err := cli.NewContext(store, cfg)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func TestHabitLifecycle(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&HabitAddCmd{Name: "Stretch", Category: "Health"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if err := (&HabitAddCmd{Name: "stretch"}).Run(ctx); err == nil {
		t.Error("duplicate habit name accepted")
	}

	if err := (&HabitDoneCmd{Habit: "Stretch"}).Run(ctx); err != nil {
		t.Fatalf("habit done failed: %v", err)
	}
	h, _ := ctx.Managers.Habits.ByName("Stretch")
	today := ctx.Clock.Today()
	if !ctx.Managers.Habits.IsComplete(h.ID, today) {
		t.Error("habit not marked complete")
	}
	if err := (&HabitDoneCmd{Habit: cli.ShortID(h.ID), Undo: true}).Run(ctx); err != nil {
		t.Fatalf("habit undo by id prefix failed: %v", err)
	}
	if ctx.Managers.Habits.IsComplete(h.ID, today) {
		t.Error("habit still complete after undo")
	}

	if err := (&HabitListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("habit list failed: %v", err)
	}
	if err := (&HabitTodayCmd{}).Run(ctx); err != nil {
		t.Errorf("habit today failed: %v", err)
	}
}

func TestHabitArchive(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	_ = (&HabitAddCmd{Name: "Read"}).Run(ctx)
	if err := (&HabitArchiveCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(ctx.Managers.Habits.Active()); n != 0 {
		t.Errorf("active habits after archive = %d", n)
	}
	if err := (&HabitArchiveCmd{Habit: "Read", Restore: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(ctx.Managers.Habits.Active()); n != 1 {
		t.Errorf("active habits after restore = %d", n)
	}
}

func TestHabitDelete(t *testing.T) {
	tests := []struct {
		name    string
		cascade bool
		want    int
	}{
		{name: "keeps history", cascade: false, want: 1},
		{name: "cascade", cascade: true, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t)
			defer cleanup()

			_ = (&HabitAddCmd{Name: "Walk"}).Run(ctx)
			_ = (&HabitDoneCmd{Habit: "Walk"}).Run(ctx)

			if err := (&HabitDeleteCmd{Habit: "Walk", Cascade: tt.cascade, Yes: true}).Run(ctx); err != nil {
				t.Fatalf("habit delete failed: %v", err)
			}
			if _, ok := ctx.Managers.Habits.ByName("Walk"); ok {
				t.Error("habit still present")
			}
			if got := len(ctx.Managers.Habits.ProgressForDate(ctx.Clock.Today())); got != tt.want {
				t.Errorf("completions left = %d, want %d", got, tt.want)
			}
		})
	}
}
