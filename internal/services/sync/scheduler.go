package sync

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// Scheduler drives sync runs from the interval timer, vault file
// events and manual triggers. Every path funnels into Service.Run,
// whose guard drops overlapping triggers.
type Scheduler struct {
	service *Service
	cfg     *config.Config
	logger  *events.Logger
	trigger chan struct{}
}

// NewScheduler creates a scheduler for a service.
func NewScheduler(service *Service, cfg *config.Config, logger *events.Logger) *Scheduler {
	return &Scheduler{
		service: service,
		cfg:     cfg,
		logger:  logger.WithField("component", "scheduler"),
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a sync run. Non-blocking; a pending trigger absorbs
// further ones.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run blocks driving sync runs until the context is canceled. With
// watch enabled, vault change events are debounced into triggers
// alongside the interval ticker. An interval of zero or less disables
// the timer.
func (s *Scheduler) Run(ctx context.Context, watch bool) error {
	var tick <-chan time.Time
	if s.cfg.Sync.IntervalMinutes > 0 {
		ticker := time.NewTicker(time.Duration(s.cfg.Sync.IntervalMinutes) * time.Minute)
		defer ticker.Stop()
		tick = ticker.C

		s.logger.WithField("interval_minutes", s.cfg.Sync.IntervalMinutes).Info("Periodic sync enabled")
	}

	var watchEvents <-chan fsnotify.Event
	if watch {
		watcher, err := s.newWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		watchEvents = watcher.Events

		go func() {
			for err := range watcher.Errors {
				s.logger.WithError(err).Warn("Watcher error")
			}
		}()
	}

	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-tick:
			s.runOnce(ctx)

		case <-s.trigger:
			s.runOnce(ctx)

		case event := <-watchEvents:
			s.logger.WithFields(map[string]interface{}{
				"op":   event.Op.String(),
				"path": event.Name,
			}).Debug("Vault change")

			if debounce == nil {
				debounce = time.NewTimer(s.cfg.Sync.WatchDebounce)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(s.cfg.Sync.WatchDebounce)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a run, treating an in-flight overlap as a skip.
func (s *Scheduler) runOnce(ctx context.Context) {
	_, err := s.service.Run(ctx)
	if errors.Is(err, models.ErrSyncInProgress) {
		s.logger.Debug("Sync already running, trigger dropped")
	}
}

// newWatcher watches the selected vault roots recursively.
func (s *Scheduler) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, root := range s.cfg.Sync.Paths {
		full := filepath.Join(s.cfg.Sync.VaultDir, filepath.FromSlash(root))

		info, err := os.Stat(full)
		if err != nil {
			// Selected roots may not exist yet; the next run skips them.
			continue
		}

		if !info.IsDir() {
			if err := watcher.Add(filepath.Dir(full)); err != nil {
				s.logger.WithError(err).Warn("Failed to watch " + full)
			}
			continue
		}

		err = filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if addErr := watcher.Add(path); addErr != nil {
				s.logger.WithError(addErr).Warn("Failed to watch " + path)
			}
			return nil
		})
		if err != nil {
			s.logger.WithError(err).Warn("Walk failed for " + full)
		}
	}

	return watcher, nil
}
