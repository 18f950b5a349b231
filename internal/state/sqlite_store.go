package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
)

// SQLiteStore implements SQLite-backed run persistence.
type SQLiteStore struct {
	db     *sql.DB
	logger *events.Logger
}

// NewSQLiteStore opens (creating if needed) the run database.
func NewSQLiteStore(dbPath string, logger *events.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger.WithField("component", "sqlite_state_store"),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
    CREATE TABLE IF NOT EXISTS sync_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        started_at TIMESTAMP NOT NULL,
        finished_at TIMESTAMP NOT NULL,
        files_scanned INTEGER NOT NULL DEFAULT 0,
        blobs_uploaded INTEGER NOT NULL DEFAULT 0,
        deletions INTEGER NOT NULL DEFAULT 0,
        commit_sha TEXT,
        error TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_sync_runs_finished ON sync_runs(finished_at);

    CREATE TABLE IF NOT EXISTS sync_meta (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// LastSync returns the last successful completion time.
func (s *SQLiteStore) LastSync() (time.Time, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM sync_meta WHERE key = 'last_sync'`,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query last sync: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last sync timestamp: %w", err)
	}
	return ts, nil
}

// RecordRun appends a run and advances last_sync on success.
func (s *SQLiteStore) RecordRun(rec *RunRecord) error {
	s.logger.WithFields(map[string]interface{}{
		"files":   rec.FilesScanned,
		"uploads": rec.BlobsUploaded,
		"deletes": rec.Deletions,
		"ok":      rec.Succeeded(),
	}).Debug("Recording sync run")

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
        INSERT INTO sync_runs
            (started_at, finished_at, files_scanned, blobs_uploaded, deletions, commit_sha, error)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, rec.StartedAt.UTC(), rec.FinishedAt.UTC(), rec.FilesScanned,
		rec.BlobsUploaded, rec.Deletions, rec.CommitSHA, rec.Error)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if rec.Succeeded() {
		_, err = tx.Exec(`
            INSERT INTO sync_meta (key, value) VALUES ('last_sync', ?)
            ON CONFLICT(key) DO UPDATE SET value = excluded.value
        `, rec.FinishedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("update last sync: %w", err)
		}
	}

	return tx.Commit()
}

// History returns the most recent runs, newest first.
func (s *SQLiteStore) History(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
        SELECT started_at, finished_at, files_scanned, blobs_uploaded, deletions, commit_sha, error
        FROM sync_runs
        ORDER BY id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var commitSHA, runErr sql.NullString
		if err := rows.Scan(&rec.StartedAt, &rec.FinishedAt, &rec.FilesScanned,
			&rec.BlobsUploaded, &rec.Deletions, &commitSHA, &runErr); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		rec.CommitSHA = commitSHA.String
		rec.Error = runErr.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
