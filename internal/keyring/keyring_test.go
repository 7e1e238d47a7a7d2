package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetGetDelete(t *testing.T) {
	gokeyring.MockInit()

	for _, e := range Entries() {
		if _, err := Get(e); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%s) on empty keyring error = %v", e, err)
		}
		if err := Set(e, "s3cret-"+string(e)); err != nil {
			t.Fatalf("Set(%s) error = %v", e, err)
		}
		got, err := Get(e)
		if err != nil || got != "s3cret-"+string(e) {
			t.Errorf("Get(%s) = %q, %v", e, got, err)
		}
		if err := Delete(e); err != nil {
			t.Errorf("Delete(%s) error = %v", e, err)
		}
		if err := Delete(e); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Delete(%s) error = %v, want ErrNotFound", e, err)
		}
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := Set(EntryDatabase, "  "); err == nil {
		t.Error("Set() accepted a blank secret")
	}
}

func TestLookup(t *testing.T) {
	gokeyring.MockInit()
	if got := Lookup(EntryMQTTPassword); got != "" {
		t.Errorf("Lookup() = %q, want empty", got)
	}
	_ = Set(EntryMQTTPassword, "pw")
	if got := Lookup(EntryMQTTPassword); got != "pw" {
		t.Errorf("Lookup() = %q, want pw", got)
	}
}

func TestUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	defer gokeyring.MockInit()

	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
	if _, err := Get(EntryDatabase); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() error = %v, want ErrKeyringUnavailable", err)
	}
}

func TestParseEntry(t *testing.T) {
	tests := map[string]Entry{
		"db":                  EntryDatabase,
		"Database":            EntryDatabase,
		"database-connection": EntryDatabase,
		"mqtt":                EntryMQTTPassword,
	}
	for in, want := range tests {
		got, err := ParseEntry(in)
		if err != nil || got != want {
			t.Errorf("ParseEntry(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseEntry("ssh"); err == nil {
		t.Error("ParseEntry(ssh) succeeded")
	}
}
