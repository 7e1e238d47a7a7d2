// Package keyring keeps wellnest secrets in the OS keyring so they never
// land in config files.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/wellnest/internal/constants"
)

var (
	ErrNotFound           = errors.New("secret not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names one stored secret.
type Entry string

const (
	EntryDatabase     Entry = constants.DefaultKeyringUser
	EntryMQTTPassword Entry = "mqtt-password"
)

// Entries lists every secret wellnest knows about.
func Entries() []Entry {
	return []Entry{EntryDatabase, EntryMQTTPassword}
}

// ParseEntry accepts the short names used on the command line.
func ParseEntry(name string) (Entry, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "db", "database", string(EntryDatabase):
		return EntryDatabase, nil
	case "mqtt", string(EntryMQTTPassword):
		return EntryMQTTPassword, nil
	}
	return "", fmt.Errorf("unknown keyring entry %q (use db or mqtt)", name)
}

func Get(e Entry) (string, error) {
	v, err := keyring.Get(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func Set(e Entry, secret string) error {
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("%s cannot be empty", e)
	}
	if err := keyring.Set(constants.AppName, string(e), secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", e, err)
	}
	return nil
}

func Delete(e Entry) error {
	if err := keyring.Delete(constants.AppName, string(e)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", e, err)
	}
	return nil
}

// Lookup returns the secret, or "" when it is not stored or the keyring
// cannot be reached.
func Lookup(e Entry) string {
	v, err := Get(e)
	if err != nil {
		return ""
	}
	return v
}

// IsAvailable does a probe read. A not-found answer still means the
// keyring works.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
