package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/storage/sqlite"
)

func setupDB(t *testing.T, total string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wellnest.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Put(constants.NamespaceSteps, "steps_running_total", total); err != nil {
		t.Fatal(err)
	}
	store.Close()
	return path
}

func readTotal(t *testing.T, path string) string {
	t.Helper()
	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer store.Close()
	v, _, err := store.Get(constants.NamespaceSteps, "steps_running_total")
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func stepClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestCreateAndList(t *testing.T) {
	dbPath := setupDB(t, "120")
	mgr := NewManager(dbPath)
	mgr.now = stepClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local), time.Minute)

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := readTotal(t, first); got != "120" {
		t.Errorf("backup total = %q, want 120", got)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 || backups[0].Path != second || backups[1].Path != first {
		t.Errorf("List() = %+v, want newest first", backups)
	}
	if backups[0].Name() != "wellnest-20240310-090100.db" {
		t.Errorf("Name() = %q", backups[0].Name())
	}
}

func TestCreateSameSecond(t *testing.T) {
	dbPath := setupDB(t, "1")
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	a, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	b, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if a == b || filepath.Base(b) != "wellnest-20240310-090000-1.db" {
		t.Errorf("collision paths = %s, %s", a, b)
	}
	backups, _ := mgr.List()
	if len(backups) != 2 {
		t.Errorf("List() = %d entries, want 2", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupDB(t, "1")
	mgr := NewManager(dbPath)
	mgr.now = stepClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), time.Hour)

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatal(err)
		}
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	if want := time.Date(2024, 3, 1, 3, 0, 0, 0, time.Local); !backups[len(backups)-1].Timestamp.Equal(want) {
		t.Errorf("oldest kept = %v, want %v", backups[len(backups)-1].Timestamp, want)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupDB(t, "120")
	mgr := NewManager(dbPath)
	mgr.now = stepClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local), time.Minute)

	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	_ = store.Put(constants.NamespaceSteps, "steps_running_total", "999")
	store.Close()

	safety, err := mgr.Restore(snap)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := readTotal(t, dbPath); got != "120" {
		t.Errorf("restored total = %q, want 120", got)
	}
	if safety == "" || readTotal(t, safety) != "999" {
		t.Errorf("safety backup %q does not hold the pre-restore state", safety)
	}
}

func TestRestoreInvalid(t *testing.T) {
	dbPath := setupDB(t, "1")
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore() of a missing file succeeded")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("not a database at all, just text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(junk); err == nil {
		t.Error("Restore() of a corrupt file succeeded")
	}
	if got := readTotal(t, dbPath); got != "1" {
		t.Errorf("database changed after failed restore: %q", got)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupDB(t, "1")
	mgr := NewManager(dbPath)
	if backups, err := mgr.List(); err != nil || len(backups) != 0 {
		t.Fatalf("List() without dir = %v, %v", backups, err)
	}

	_ = os.MkdirAll(mgr.Dir(), 0700)
	for _, name := range []string{"notes.txt", "wellnest-garbage.db", "other-20240101-000000.db"} {
		_ = os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600)
	}
	if backups, _ := mgr.List(); len(backups) != 0 {
		t.Errorf("List() = %+v, want none", backups)
	}
	if _, ok, err := mgr.Latest(); ok || err != nil {
		t.Errorf("Latest() = %v, %v", ok, err)
	}
}
