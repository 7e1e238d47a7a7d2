package steps

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

func TestStepsAdd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&StepsAddCmd{Count: 1500}).Run(ctx); err != nil {
		t.Fatalf("steps add failed: %v", err)
	}
	if err := (&StepsAddCmd{Count: 0}).Run(ctx); err == nil {
		t.Error("zero steps accepted")
	}
	if got := ctx.StepCounter().Total(); got != 1500 {
		t.Errorf("counter total = %d, want 1500", got)
	}
	entries := ctx.Managers.Steps.EntriesForDate(ctx.Clock.Today())
	if len(entries) != 1 || entries[0].Steps != 1500 {
		t.Errorf("entries = %+v", entries)
	}
	if err := (&StepsTodayCmd{Entries: true}).Run(ctx); err != nil {
		t.Errorf("steps today failed: %v", err)
	}
}

func TestStepsFeed(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	// The first reading sets the baseline.
	if err := (&StepsFeedCmd{Readings: []string{"10000", "10250", "{\"steps\": 10400}"}}).Run(ctx); err != nil {
		t.Fatalf("steps feed failed: %v", err)
	}
	if got := ctx.Managers.Steps.Today().StepCount; got != 400 {
		t.Errorf("today's steps = %d, want 400", got)
	}
	if err := (&StepsFeedCmd{Readings: []string{"abc"}}).Run(ctx); err == nil {
		t.Error("malformed reading accepted")
	}
}

func TestStepsGoalAndStride(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&StepsGoalCmd{Steps: intPtr(8000)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Managers.Steps.Goal(); got != 8000 {
		t.Errorf("Goal() = %d", got)
	}
	if err := (&StepsGoalCmd{Steps: intPtr(0)}).Run(ctx); err == nil {
		t.Error("zero step goal accepted")
	}
	if err := (&StepsGoalCmd{}).Run(ctx); err != nil {
		t.Errorf("showing the goal failed: %v", err)
	}
	if got := ctx.Managers.Steps.Goal(); got != 8000 {
		t.Errorf("Goal() after rejected update = %d, want 8000", got)
	}
	if err := (&StepsStrideCmd{Cm: 70}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Managers.Steps.StepLength(); got != 70 {
		t.Errorf("StepLength() = %v", got)
	}
	if err := (&StepsStrideCmd{Cm: 500}).Run(ctx); err == nil {
		t.Error("stride out of range accepted")
	}
	if err := (&StepsWeekCmd{}).Run(ctx); err != nil {
		t.Errorf("steps week failed: %v", err)
	}
	if err := (&StepsWeekCmd{Ring: true}).Run(ctx); err != nil {
		t.Errorf("steps week --ring failed: %v", err)
	}
}

func intPtr(n int) *int { return &n }
