// Package config loads the optional wellnest YAML config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/wellnest/internal/constants"
)

const (
	SensorNone  = "none"
	SensorStdin = "stdin"
	SensorFile  = "file"
	SensorMQTT  = "mqtt"

	EnvDBConnection = "WELLNEST_DB_CONNECTION"
	EnvSensorPath   = "WELLNEST_SENSOR_PATH"
)

type Config struct {
	// Database is a SQLite path or a PostgreSQL connection string without a
	// password. Empty means the keyring entry or the default SQLite path.
	Database    string            `yaml:"database"`
	Debug       bool              `yaml:"debug"`
	Timezone    string            `yaml:"timezone"`
	Sensor      SensorConfig      `yaml:"sensor"`
	Permissions PermissionsConfig `yaml:"permissions"`
	Tray        TrayConfig        `yaml:"tray"`
}

type SensorConfig struct {
	Kind     string `yaml:"kind"`
	Path     string `yaml:"path"`
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
}

// PermissionsConfig stands in for OS grants on desktop hosts.
type PermissionsConfig struct {
	Sensor        bool `yaml:"sensor"`
	Notifications bool `yaml:"notifications"`
}

type TrayConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Timezone: constants.DefaultTimezone,
		Sensor: SensorConfig{
			Kind:     SensorNone,
			Topic:    "wellnest/steps",
			ClientID: constants.AppName,
		},
		Permissions: PermissionsConfig{Sensor: true, Notifications: true},
		Tray:        TrayConfig{Enabled: true},
	}
}

// DefaultPath is the config file inside the default config directory.
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName)
}

// Load reads path, falling back to defaults when the file does not exist.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ExpandPath(path))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDBConnection); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvSensorPath); v != "" {
		c.Sensor.Path = v
		if c.Sensor.Kind == SensorNone || c.Sensor.Kind == "" {
			c.Sensor.Kind = SensorFile
		}
	}
}

func (c *Config) Validate() error {
	if c.Sensor.Kind == "" {
		c.Sensor.Kind = SensorNone
	}
	switch c.Sensor.Kind {
	case SensorNone, SensorStdin:
	case SensorFile:
		if c.Sensor.Path == "" {
			return fmt.Errorf("sensor kind %q needs a path", c.Sensor.Kind)
		}
	case SensorMQTT:
		if c.Sensor.Broker == "" || c.Sensor.Topic == "" {
			return fmt.Errorf("sensor kind %q needs a broker and a topic", c.Sensor.Kind)
		}
	default:
		return fmt.Errorf("unknown sensor kind %q (use none, stdin, file or mqtt)", c.Sensor.Kind)
	}
	return nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
