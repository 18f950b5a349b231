package sync

import (
	"context"
	"sync"
	"time"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/state"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/transport"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/vault"
)

// Service runs the one-way publish pipeline. Run is the single entry
// point; the periodic timer and manual triggers all funnel through it.
type Service struct {
	cfg    *config.Config
	walker *vault.Walker
	engine *Engine
	state  state.Store
	logger *events.Logger

	// In-flight guard. Two runs must never overlap: they would race to
	// advance the same branch ref from different base trees.
	mu      sync.Mutex
	running bool
}

// NewService creates a sync service.
func NewService(cfg *config.Config, client transport.Client, store vault.Store, stateStore state.Store, logger *events.Logger) *Service {
	return &Service{
		cfg:    cfg,
		walker: vault.NewWalker(store, cfg.Sync.MaxConcurrent, logger),
		engine: NewEngine(client, logger),
		state:  stateStore,
		logger: logger.WithField("service", "sync"),
	}
}

// Run executes one sync run. A call while another run is in flight is
// dropped with ErrSyncInProgress. On return the run either fully
// completed (ref advanced or clean no-op) or fully failed with the
// branch ref untouched; the outcome is recorded in the state store
// either way.
func (s *Service) Run(ctx context.Context) (*state.RunRecord, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, models.ErrSyncInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	rec := &state.RunRecord{StartedAt: time.Now().UTC()}
	err := s.run(ctx, rec)
	rec.FinishedAt = time.Now().UTC()

	if err != nil {
		rec.Error = err.Error()
		s.logger.WithError(err).Error("Sync run failed")
	}

	if recErr := s.state.RecordRun(rec); recErr != nil {
		s.logger.WithError(recErr).Warn("Failed to record sync run")
	}

	return rec, err
}

// run executes the pipeline against a settings snapshot taken up front.
func (s *Service) run(ctx context.Context, rec *state.RunRecord) error {
	gh := s.cfg.GitHub

	if err := gh.ValidateGitHub(); err != nil {
		return err
	}

	repo, err := config.ParseRepoURL(gh.RepoURL)
	if err != nil {
		return err
	}
	folder := config.NormalizeFolder(gh.Folder)

	s.engine.client.SetToken(gh.Token)

	s.logger.WithFields(map[string]interface{}{
		"repo":   repo.Owner + "/" + repo.Name,
		"branch": gh.Branch,
		"folder": folder,
	}).Info("Starting sync run")

	files, err := s.walker.Collect(ctx, s.cfg.Sync.Paths, folder)
	if err != nil {
		return err
	}
	rec.FilesScanned = len(files)

	remote, base, err := s.engine.FetchRemoteTree(ctx, repo, gh.Branch, folder)
	if err != nil {
		return err
	}

	ops, uploads, err := s.engine.BuildOperations(ctx, repo, files, remote)
	if err != nil {
		return err
	}
	rec.BlobsUploaded = uploads
	for _, op := range ops {
		if op.Kind == models.DeleteOp {
			rec.Deletions++
		}
	}

	if len(ops) == 0 {
		// Unchanged vault: a successful, idempotent sync. No tree,
		// commit or ref call is made but the timestamp still advances.
		s.logger.Info("Vault unchanged, nothing to publish")
		return nil
	}

	author := transport.Identity{Name: gh.AuthorName, Email: gh.AuthorEmail}
	commitSHA, err := s.engine.Publish(ctx, repo, gh.Branch, base, ops, author, gh.CommitMessage)
	if err != nil {
		return err
	}
	rec.CommitSHA = commitSHA

	return nil
}

// LastSync returns the completion time of the last successful run.
func (s *Service) LastSync() (time.Time, error) {
	return s.state.LastSync()
}

// History returns recent run records, newest first.
func (s *Service) History(limit int) ([]state.RunRecord, error) {
	return s.state.History(limit)
}
