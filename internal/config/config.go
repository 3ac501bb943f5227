// ABOUTME: Nutrition configuration management with backend selection.
// ABOUTME: Merges the JSON config file, an optional .env file and NUTRITION_* variables.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/harperreed/nutrition/internal/charm"
	"github.com/harperreed/nutrition/internal/storage"
)

const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
	BackendCharm    = "charm"

	DefaultListenAddr = "127.0.0.1:8080"
)

// Backends lists the accepted storage backend names.
var Backends = []string{BackendSQLite, BackendMarkdown, BackendCharm}

// Config stores nutrition tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown" or "charm".
	Backend string `json:"backend,omitempty" env:"NUTRITION_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts nutrition.db here. Markdown puts meals/ and weights/ folders here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/nutrition.
	DataDir string `json:"data_dir,omitempty" env:"NUTRITION_DATA_DIR"`

	// ListenAddr is the address the HTTP API binds to.
	ListenAddr string `json:"listen_addr,omitempty" env:"NUTRITION_LISTEN_ADDR"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListenAddr returns the HTTP listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// IsValidBackend checks if a string names a supported backend.
func IsValidBackend(s string) bool {
	for _, b := range Backends {
		if b == s {
			return true
		}
	}
	return false
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
// The charm backend ignores dataDir and uses the Charm defaults.
func OpenBackend(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "nutrition.db"))
	case BackendMarkdown:
		return storage.NewMarkdownStore(dataDir)
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutrition", "config.json")
}

// Load reads config from disk, then applies .env and environment overrides.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath(), ".env")
}

// LoadFrom reads the JSON config at path and applies overrides from the
// dotenv file (if present) and the process environment.
func LoadFrom(path, dotenv string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read config: %w", err)
	}

	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Backend != "" && !IsValidBackend(cfg.Backend) {
		return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
