package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the application configuration
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Redis    RedisConfig    `toml:"redis"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Remote   RemoteConfig   `toml:"remote"`
	Log      LogConfig      `toml:"log"`
}

// StorageConfig selects the key-value backend of the local variant
type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Key     string `toml:"key"`
}

// RedisConfig holds connection settings for the redis storage backend
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RemoteConfig points the remote variant at an API server
type RemoteConfig struct {
	BaseURL string            `toml:"base_url"`
	Headers map[string]string `toml:"headers,omitempty"`
}

// LogConfig controls diagnostics output
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

const appDir = "contacts-mvc"

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".config", appDir)
	return &Config{
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(base, "storage"),
			Key:     "contacts",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "contacts-mvc:",
		},
		Database: DatabaseConfig{
			Path: filepath.Join(base, "contacts.db"),
		},
		Server: ServerConfig{
			Addr: ":3000",
		},
		Remote: RemoteConfig{
			BaseURL: "http://localhost:3000",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(base, "contacts.log"),
		},
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDir, "config.toml"), nil
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No config file, return defaults
		return cfg, nil
	}

	// Read and parse config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand home directory in paths
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks the settings that have a fixed set of values
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q (want file, redis or memory)", c.Storage.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage key cannot be empty")
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
