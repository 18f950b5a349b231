package models

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrBranchNotFound = errors.New("branch not found")
	ErrNotConfigured  = errors.New("publisher not configured")
)

// ConfigError reports invalid or missing configuration. It is raised
// before any network call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// NewConfigError creates a ConfigError for a settings field.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// APIError represents a failure response from the GitHub API.
type APIError struct {
	StatusCode       int    `json:"status_code"`
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API error %d: %s", e.StatusCode, e.Message)
}

// SyncError wraps a failure with the pipeline phase it occurred in.
type SyncError struct {
	Phase string
	Path  string
	Err   error
}

func (e *SyncError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("sync %s: %s: %v", e.Phase, e.Path, e.Err)
	}
	return fmt.Sprintf("sync %s: %v", e.Phase, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
