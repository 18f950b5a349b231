package vault

import (
	"context"
	"sort"
	"sync"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// Walker collects the LocalFile set for a sync run. Every run re-reads
// everything; vaults are small enough that correctness wins over
// caching.
type Walker struct {
	store         Store
	maxConcurrent int
	logger        *events.Logger
}

// NewWalker creates a walker over a vault store.
func NewWalker(store Store, maxConcurrent int, logger *events.Logger) *Walker {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Walker{
		store:         store,
		maxConcurrent: maxConcurrent,
		logger:        logger.WithField("component", "vault_walker"),
	}
}

// Collect expands the selected roots into LocalFile records mapped into
// the target repo folder. Roots that no longer resolve are skipped; a
// selected path may have been deleted from the vault since it was
// configured. All reads complete before Collect returns.
func (w *Walker) Collect(ctx context.Context, roots []string, repoFolder string) ([]models.LocalFile, error) {
	paths, err := w.expand(roots)
	if err != nil {
		return nil, err
	}

	w.logger.WithFields(map[string]interface{}{
		"roots": len(roots),
		"files": len(paths),
	}).Debug("Collected vault paths")

	files := make([]models.LocalFile, len(paths))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, w.maxConcurrent)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, vaultPath string) {
			defer wg.Done()
			defer func() { <-sem }()

			file, err := w.readFile(vaultPath, repoFolder)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			files[idx] = file
		}(i, path)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// expand resolves roots to the deduplicated, sorted list of file paths.
func (w *Walker) expand(roots []string) ([]string, error) {
	seen := make(map[string]bool)

	var visit func(path string) error
	visit = func(path string) error {
		kind, err := w.store.Stat(path)
		if err != nil {
			return err
		}

		switch kind {
		case KindAbsent:
			w.logger.WithField("path", path).Debug("Selected path missing, skipping")
			return nil
		case KindFile:
			seen[path] = true
			return nil
		}

		entries, err := w.store.List(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			child := entry.Name
			if path != "" && path != "." {
				child = path + "/" + entry.Name
			}
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// readFile reads and classifies one vault file.
func (w *Walker) readFile(vaultPath, repoFolder string) (models.LocalFile, error) {
	data, err := w.store.Read(vaultPath)
	if err != nil {
		return models.LocalFile{}, &models.SyncError{Phase: "collect", Path: vaultPath, Err: err}
	}

	file := models.LocalFile{
		VaultPath: vaultPath,
		RepoPath:  models.RepoPathFor(repoFolder, vaultPath),
		IsText:    models.IsTextContent(data),
	}
	if file.IsText {
		file.Content = string(data)
	} else {
		file.Binary = data
	}
	return file, nil
}
