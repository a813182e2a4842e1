// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for address book configuration.
	DefaultConfigDir = ".addressbook"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultSQLiteFile is the database file used when no path is configured.
	DefaultSQLiteFile = "addressbook.db"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Log formats.
const (
	LogFormatText   = "text"
	LogFormatJSON   = "json"
	LogFormatPretty = "pretty"
)

// ErrNotInitialized is returned by Load when no config file exists.
var ErrNotInitialized = errors.New("address book not initialized")

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Store  StoreConfig  `yaml:"store,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
	Maps   MapsConfig   `yaml:"maps,omitempty"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver   string         `yaml:"driver,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Postgres PostgresConfig `yaml:"postgres,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite document store.
type SQLiteConfig struct {
	// Path is the database file. Relative paths resolve against the project directory.
	Path string `yaml:"path,omitempty"`
}

// PostgresConfig holds configuration for the PostgreSQL document store.
type PostgresConfig struct {
	DSN string `yaml:"dsn,omitempty"`
	// Table defaults to "documents".
	Table string `yaml:"table,omitempty"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
	// WriteRate is the sustained number of write requests per second; 0 disables limiting.
	WriteRate  float64 `yaml:"write_rate,omitempty"`
	WriteBurst int     `yaml:"write_burst,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// MapsConfig holds the map service used for direction links.
type MapsConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			WriteRate:  5,
			WriteBurst: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
		Maps: MapsConfig{
			BaseURL: "https://www.google.com/maps",
		},
	}
}

// Load loads configuration from the .addressbook directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s not found (run 'addressbook init' first)", ErrNotInitialized, configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or falls back to defaults plus
// environment overrides when the directory has not been initialized.
func LoadOrDefault(basePath string) (*Config, error) {
	cfg, err := Load(basePath)
	if errors.Is(err, ErrNotInitialized) {
		cfg = Default()
		cfg.applyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Store.Postgres.DSN = dsn
		c.Store.Driver = DriverPostgres
	}
	if driver := os.Getenv("ADDRESSBOOK_STORE"); driver != "" {
		c.Store.Driver = strings.ToLower(driver)
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Log.Format = strings.ToLower(format)
	}
	if base := os.Getenv("MAPS_BASE_URL"); base != "" {
		c.Maps.BaseURL = base
	}
}

// Validate checks that the configuration can be used to start the application.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Store.Postgres.DSN == "" {
			return errors.New("invalid config: store.postgres.dsn is required for the postgres driver (or set DATABASE_URL)")
		}
	default:
		return fmt.Errorf("invalid config: unknown store driver %q (valid: sqlite, postgres, memory)", c.Store.Driver)
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON, LogFormatPretty:
	default:
		return fmt.Errorf("invalid config: unknown log format %q (valid: text, json, pretty)", c.Log.Format)
	}

	if c.Server.WriteRate < 0 || c.Server.WriteBurst < 0 {
		return errors.New("invalid config: server.write_rate and server.write_burst must not be negative")
	}
	return nil
}

// SQLitePath returns the SQLite database file for the project in basePath.
func (c *Config) SQLitePath(basePath string) string {
	path := c.Store.SQLite.Path
	if path == "" {
		return filepath.Join(basePath, DefaultConfigDir, DefaultSQLiteFile)
	}
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

// ConfigDir returns the path to the .addressbook config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
