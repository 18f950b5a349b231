package sync

import (
	"context"
	"encoding/base64"
	"sort"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/gitblob"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/transport"
)

// Engine implements the diff-and-publish algorithm of a sync run.
type Engine struct {
	client transport.Client
	logger *events.Logger
}

// NewEngine creates a sync engine.
func NewEngine(client transport.Client, logger *events.Logger) *Engine {
	return &Engine{
		client: client,
		logger: logger.WithField("component", "sync_engine"),
	}
}

// BuildOperations diffs the local file set against the remote map by
// content hash and returns the minimal tree operation sequence.
// Changed or new files are uploaded as blobs here; hash-equal files
// cause no network write. Remote paths absent locally become delete
// operations. The second return value counts uploaded blobs.
func (e *Engine) BuildOperations(ctx context.Context, repo config.Repo, files []models.LocalFile, remote *models.RemoteTree) ([]models.TreeOperation, int, error) {
	localPaths := make(map[string]bool, len(files))
	var ops []models.TreeOperation
	uploads := 0

	for i := range files {
		file := &files[i]
		localPaths[file.RepoPath] = true

		localSHA := gitblob.Sum(file.Bytes())
		if remoteSHA, ok := remote.Get(file.RepoPath); ok && remoteSHA == localSHA {
			continue
		}

		payload, encoding := encodeBlob(file)
		sha, err := e.client.CreateBlob(ctx, repo, payload, encoding)
		if err != nil {
			return nil, uploads, &models.SyncError{Phase: "upload blob", Path: file.RepoPath, Err: err}
		}
		uploads++

		e.logger.WithFields(map[string]interface{}{
			"path": file.RepoPath,
			"sha":  sha,
		}).Debug("Uploaded blob")

		ops = append(ops, models.TreeOperation{
			Path: file.RepoPath,
			Mode: models.FileMode,
			Kind: models.BlobOp,
			SHA:  sha,
		})
	}

	// Remote-only paths are deletions. The add/update set and delete
	// set are disjoint by construction.
	var deletes []string
	for _, path := range remote.Paths() {
		if !localPaths[path] {
			deletes = append(deletes, path)
		}
	}
	sort.Strings(deletes)

	for _, path := range deletes {
		ops = append(ops, models.TreeOperation{
			Path: path,
			Mode: models.FileMode,
			Kind: models.DeleteOp,
		})
	}

	return ops, uploads, nil
}

// encodeBlob prepares file content for the blob-creation endpoint.
func encodeBlob(file *models.LocalFile) (payload, encoding string) {
	if file.IsText {
		return file.Content, transport.EncodingUTF8
	}
	return base64.StdEncoding.EncodeToString(file.Binary), transport.EncodingBase64
}

// Publish submits the operations as a tree layered on the base tree,
// wraps it in a single-parent commit and fast-forwards the branch ref.
// Any failure leaves the ref untouched.
func (e *Engine) Publish(ctx context.Context, repo config.Repo, branch string, base remoteBase, ops []models.TreeOperation, author transport.Identity, message string) (string, error) {
	treeSHA, err := e.client.CreateTree(ctx, repo, base.TreeSHA, ops)
	if err != nil {
		return "", &models.SyncError{Phase: "create tree", Err: err}
	}

	commitSHA, err := e.client.CreateCommit(ctx, repo, treeSHA, []string{base.CommitSHA}, message, author)
	if err != nil {
		return "", &models.SyncError{Phase: "create commit", Err: err}
	}

	if err := e.client.UpdateBranchRef(ctx, repo, branch, commitSHA); err != nil {
		return "", &models.SyncError{Phase: "update ref", Err: err}
	}

	e.logger.WithFields(map[string]interface{}{
		"branch": branch,
		"commit": commitSHA,
		"ops":    len(ops),
	}).Info("Published commit")

	return commitSHA, nil
}
