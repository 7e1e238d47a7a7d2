package water

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/wellnest/internal/cli"
	"github.com/julianstephens/wellnest/internal/config"
	"github.com/julianstephens/wellnest/internal/storage/sqlite"
	"github.com/julianstephens/wellnest/internal/utils"
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

func TestWaterAddAndDelete(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&WaterAddCmd{}).Run(ctx); err != nil {
		t.Fatalf("water add failed: %v", err)
	}
	if err := (&WaterAddCmd{Amount: 400}).Run(ctx); err != nil {
		t.Fatalf("water add failed: %v", err)
	}
	mgr := ctx.Managers.Hydration
	if got := mgr.TodayIntake(); got != 650 {
		t.Errorf("TodayIntake() = %d, want 650", got)
	}
	if err := (&WaterAddCmd{Amount: 6000}).Run(ctx); err == nil {
		t.Error("oversized amount accepted")
	}

	entries := mgr.Today()
	if err := (&WaterDeleteCmd{ID: entries[0].ID}).Run(ctx); err != nil {
		t.Fatalf("water delete failed: %v", err)
	}
	if got := mgr.TodayIntake(); got != 650-entries[0].AmountML {
		t.Errorf("TodayIntake() after delete = %d", got)
	}

	if err := (&WaterTodayCmd{}).Run(ctx); err != nil {
		t.Errorf("water today failed: %v", err)
	}
	if err := (&WaterWeekCmd{}).Run(ctx); err != nil {
		t.Errorf("water week failed: %v", err)
	}
	if err := (&WaterWeekCmd{Ring: true}).Run(ctx); err != nil {
		t.Errorf("water week --ring failed: %v", err)
	}
}

func TestWaterGoal(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&WaterGoalCmd{ML: intPtr(3000)}).Run(ctx); err != nil {
		t.Fatalf("water goal failed: %v", err)
	}
	if got := ctx.Managers.Hydration.Goal(); got != 3000 {
		t.Errorf("Goal() = %d, want 3000", got)
	}
	if err := (&WaterGoalCmd{ML: intPtr(20000)}).Run(ctx); err == nil {
		t.Error("goal above bounds accepted")
	}
	if err := (&WaterGoalCmd{ML: intPtr(0)}).Run(ctx); err == nil {
		t.Error("zero goal accepted")
	}
	if got := ctx.Managers.Hydration.Goal(); got != 3000 {
		t.Errorf("Goal() after rejected updates = %d, want 3000", got)
	}
}

func intPtr(n int) *int { return &n }

func TestBackfillTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	clock := utils.FixedClock(now)

	at, err := backfillTime(clock, "09:15")
	if err != nil {
		t.Fatalf("backfillTime() error = %v", err)
	}
	if want := time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC); !at.Equal(want) {
		t.Errorf("backfillTime() = %v, want %v", at, want)
	}
	if _, err := backfillTime(clock, "15:00"); err == nil {
		t.Error("future time accepted")
	}
	if _, err := backfillTime(clock, "9am"); err == nil {
		t.Error("malformed time accepted")
	}
}
