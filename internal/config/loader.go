package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Loader handles configuration loading from file and environment.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a config loader.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  "GHPUB_",
	}
}

// Load reads configuration from file and environment.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFile(cfg); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	} else {
		for _, path := range l.defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				l.configPath = path
				if err := l.loadFile(cfg); err != nil {
					return nil, fmt.Errorf("load config file %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := l.loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg.GitHub.Folder = NormalizeFolder(cfg.GitHub.Folder)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Path returns the config file path in effect after Load.
func (l *Loader) Path() string {
	return l.configPath
}

// defaultPaths returns default config file locations.
func (l *Loader) defaultPaths() []string {
	paths := []string{
		"ghpublish.json",
		".ghpublish.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".config", "ghpublish", "config.json"),
			filepath.Join(homeDir, ".ghpublish", "config.json"),
		)
	}

	return paths
}

// loadFile reads config from a JSON file.
func (l *Loader) loadFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	return nil
}

// loadEnv overrides config from environment variables.
func (l *Loader) loadEnv(cfg *Config) error {
	if v := os.Getenv(l.envPrefix + "API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}

	if v := os.Getenv(l.envPrefix + "API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}

	if v := os.Getenv(l.envPrefix + "TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}

	if v := os.Getenv(l.envPrefix + "REPO_URL"); v != "" {
		cfg.GitHub.RepoURL = v
	}

	if v := os.Getenv(l.envPrefix + "BRANCH"); v != "" {
		cfg.GitHub.Branch = v
	}

	if v := os.Getenv(l.envPrefix + "FOLDER"); v != "" {
		cfg.GitHub.Folder = v
	}

	if v := os.Getenv(l.envPrefix + "VAULT_DIR"); v != "" {
		cfg.Sync.VaultDir = v
	}

	if v := os.Getenv(l.envPrefix + "PATHS"); v != "" {
		cfg.Sync.Paths = strings.Split(v, ",")
	}

	if v := os.Getenv(l.envPrefix + "INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse INTERVAL_MINUTES: %w", err)
		}
		cfg.Sync.IntervalMinutes = n
	}

	if v := os.Getenv(l.envPrefix + "STATE_DIR"); v != "" {
		cfg.Storage.StateDir = v
	}

	if v := os.Getenv(l.envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	if v := os.Getenv(l.envPrefix + "LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	if v := os.Getenv(l.envPrefix + "LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// GITHUB_TOKEN is honored for CI compatibility
	if v := os.Getenv("GITHUB_TOKEN"); v != "" && cfg.GitHub.Token == "" {
		cfg.GitHub.Token = v
	}

	return nil
}

// Save writes the config back to its file with restrictive permissions.
func (l *Loader) Save(cfg *Config) error {
	path := l.configPath
	if path == "" {
		path = "ghpublish.json"
		l.configPath = path
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// SaveExample writes an example config file.
func SaveExample(path string) error {
	cfg := DefaultConfig()
	cfg.GitHub.RepoURL = "https://github.com/you/notes"
	cfg.GitHub.Folder = "published"
	cfg.Sync.Paths = []string{"notes", "attachments"}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
