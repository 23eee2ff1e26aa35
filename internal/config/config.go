package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DataDirName is the per-workspace directory holding config, data and logs.
const DataDirName = ".emotree"

// Config holds all emotree configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Journal persistence
	Storage StorageConfig `yaml:"storage"`

	// First-run sample data
	Seed SeedConfig `yaml:"seed"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and configures the key-value backend holding the journal blob.
type StorageConfig struct {
	Backend     string `yaml:"backend"`      // sqlite, file
	Driver      string `yaml:"driver"`       // sqlite (modernc), sqlite3 (mattn)
	Path        string `yaml:"path"`         // relative paths resolve against the workspace
	Key         string `yaml:"key"`          // blob key inside the kv table
	BusyTimeout string `yaml:"busy_timeout"` // sqlite busy_timeout
}

// SeedConfig controls sample entries written into an empty store.
type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
	Count   int  `yaml:"count"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// SQLite drivers.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "emotree",
		Version: "0.3.0",

		Storage: StorageConfig{
			Backend:     BackendSQLite,
			Driver:      DriverModernc,
			Path:        filepath.Join(DataDirName, "journal.db"),
			Key:         "emotree",
			BusyTimeout: "5s",
		},

		Seed: SeedConfig{
			Enabled: true,
			Count:   7,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DataDirName, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EMOTREE_STORE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("EMOTREE_STORE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("EMOTREE_SQLITE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("EMOTREE_SEED_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Seed.Count = n
			c.Seed.Enabled = n > 0
		}
	}
	if v := os.Getenv("EMOTREE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Driver != DriverModernc && c.Storage.Driver != DriverMattn {
			return fmt.Errorf("invalid sqlite driver: %s (valid: %s, %s)", c.Storage.Driver, DriverModernc, DriverMattn)
		}
		if c.Storage.Key == "" {
			return fmt.Errorf("storage.key is required for the sqlite backend")
		}
	case BackendFile:
	default:
		return fmt.Errorf("invalid storage backend: %s (valid: %s, %s)", c.Storage.Backend, BackendSQLite, BackendFile)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Seed.Count < 0 {
		return fmt.Errorf("seed.count must not be negative, got %d", c.Seed.Count)
	}
	return nil
}

// StoragePath resolves the storage path against workspace. Absolute paths and
// the SQLite ":memory:" name are returned unchanged.
func (c *Config) StoragePath(workspace string) string {
	p := c.Storage.Path
	if p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}

// LogsDir returns the log directory for a workspace.
func (c *Config) LogsDir(workspace string) string {
	return filepath.Join(workspace, DataDirName, "logs")
}

// GetBusyTimeout returns the sqlite busy timeout as a duration.
func (c *Config) GetBusyTimeout() time.Duration {
	d, err := time.ParseDuration(c.Storage.BusyTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// SeedCount returns how many sample entries to write into an empty store.
func (c *Config) SeedCount() int {
	if !c.Seed.Enabled {
		return 0
	}
	return c.Seed.Count
}
