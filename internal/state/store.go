// Package state persists sync run outcomes between invocations.
package state

import (
	"errors"
	"time"
)

// ErrNoRuns indicates no sync has been recorded yet.
var ErrNoRuns = errors.New("no sync runs recorded")

// RunRecord captures the outcome of one sync run.
type RunRecord struct {
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	FilesScanned  int       `json:"files_scanned"`
	BlobsUploaded int       `json:"blobs_uploaded"`
	Deletions     int       `json:"deletions"`
	CommitSHA     string    `json:"commit_sha,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// Succeeded reports whether the run completed without error.
func (r *RunRecord) Succeeded() bool {
	return r.Error == ""
}

// Store persists the last-sync timestamp and run history.
type Store interface {
	// LastSync returns the completion time of the most recent
	// successful run, or the zero time if none exists.
	LastSync() (time.Time, error)

	// RecordRun appends a run record. Successful runs also advance the
	// last-sync timestamp.
	RecordRun(rec *RunRecord) error

	// History returns the most recent runs, newest first.
	History(limit int) ([]RunRecord, error)

	// Close releases the backing store.
	Close() error
}
