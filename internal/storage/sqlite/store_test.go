package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/wellnest/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "wellnest.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return store, func() { store.Close() }
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestPutGetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if _, ok, err := store.Get("steps", "steps_running_total"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	if err := store.Put("steps", "steps_running_total", "120"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put("steps", "steps_running_total", "130"); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	if err := store.Put("mood", "steps_running_total", "other"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	v, ok, err := store.Get("steps", "steps_running_total")
	if err != nil || !ok || v != "130" {
		t.Errorf("Get() = %q, %v, %v; want 130", v, ok, err)
	}

	keys, err := store.Keys("steps")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "steps_running_total" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := store.Delete("steps", "steps_running_total"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get("steps", "steps_running_total"); ok {
		t.Error("key present after Delete")
	}
	if v, _, _ := store.Get("mood", "steps_running_total"); v != "other" {
		t.Errorf("namespaces are not isolated, got %q", v)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellnest.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	prefs := storage.New(store)
	if err := prefs.Namespace("hydration").PutInt("water_running_total", 750); err != nil {
		t.Fatalf("PutInt() error = %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()
	if got := storage.New(reopened).Namespace("hydration").GetInt("water_running_total", 0); got != 750 {
		t.Errorf("GetInt() after reopen = %d, want 750", got)
	}
}

func TestCheck(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if err := store.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	exists, err := store.tableExists("PREFERENCES")
	if err != nil || !exists {
		t.Errorf("tableExists() = %v, %v; want case-insensitive match", exists, err)
	}
	exists, _ = store.tableExists("nonexistent_table")
	if exists {
		t.Error("tableExists() = true for missing table")
	}
}
