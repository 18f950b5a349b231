package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// API transport configuration
	API APIConfig `json:"api"`

	// Target repository and credentials
	GitHub GitHubConfig `json:"github"`

	// Sync behavior
	Sync SyncConfig `json:"sync"`

	// Local storage paths
	Storage StorageConfig `json:"storage"`

	// Logging
	Log LogConfig `json:"log"`
}

// APIConfig for GitHub API communication.
type APIConfig struct {
	BaseURL    string        `json:"base_url"`
	Timeout    time.Duration `json:"timeout"`
	MaxRetries int           `json:"max_retries"`
	UserAgent  string        `json:"user_agent"`
}

// GitHubConfig identifies the repository the vault publishes into.
type GitHubConfig struct {
	// Personal access token with repo scope
	Token string `json:"token"`

	// Repository URL, .../<owner>/<repo> with optional .git suffix
	RepoURL string `json:"repo_url"`

	// Branch whose head the publisher advances
	Branch string `json:"branch"`

	// Repo folder the vault is mirrored into; empty publishes at the root
	Folder string `json:"folder"`

	// Commit identity and message
	CommitMessage string `json:"commit_message"`
	AuthorName    string `json:"author_name"`
	AuthorEmail   string `json:"author_email"`
}

// SyncConfig for synchronization behavior.
type SyncConfig struct {
	// Vault root directory on disk
	VaultDir string `json:"vault_dir"`

	// Selected vault-relative files/folders to publish
	Paths []string `json:"paths"`

	// Periodic sync interval in minutes; 0 or negative disables the timer
	IntervalMinutes int `json:"interval_minutes"`

	// Concurrent vault file reads
	MaxConcurrent int `json:"max_concurrent"`

	// Quiet window after a watch event before a sync fires
	WatchDebounce time.Duration `json:"watch_debounce"`
}

// StorageConfig for local file paths.
type StorageConfig struct {
	StateDir string `json:"state_dir"` // sqlite sync state
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text, json
	File   string `json:"file"`   // log file path (empty = stderr)
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://api.github.com",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			UserAgent:  "obsidian-github-publisher",
		},
		GitHub: GitHubConfig{
			Branch:        "main",
			CommitMessage: "vault sync",
			AuthorName:    "Obsidian Publisher Bot",
			AuthorEmail:   "publisher-bot@users.noreply.github.com",
		},
		Sync: SyncConfig{
			VaultDir:        ".",
			IntervalMinutes: 0,
			MaxConcurrent:   5,
			WatchDebounce:   2 * time.Second,
		},
		Storage: StorageConfig{
			StateDir: ".ghpublish",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks configuration validity. Repository settings are
// checked separately by ValidateGitHub so that commands which never
// touch the network (status, init-config) still work unconfigured.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}

	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}

	if c.Sync.MaxConcurrent <= 0 {
		return errors.New("sync.max_concurrent must be positive")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Storage.StateDir}

	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
