package sync

import (
	"context"
	"strings"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/gitblob"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// remoteBase anchors a run to the branch state it was diffed against.
type remoteBase struct {
	CommitSHA string
	TreeSHA   string
}

// FetchRemoteTree resolves branch → head commit → recursive tree and
// filters the listing to blobs under the target folder. An entry whose
// SHA is absent or malformed is mapped to the force-update sentinel so
// it is re-uploaded rather than compared against an empty string.
func (e *Engine) FetchRemoteTree(ctx context.Context, repo config.Repo, branch, folder string) (*models.RemoteTree, remoteBase, error) {
	head, err := e.client.GetBranchHead(ctx, repo, branch)
	if err != nil {
		return nil, remoteBase{}, &models.SyncError{Phase: "resolve ref", Err: err}
	}

	commit, err := e.client.GetCommit(ctx, repo, head)
	if err != nil {
		return nil, remoteBase{}, &models.SyncError{Phase: "fetch commit", Err: err}
	}

	entries, err := e.client.GetTreeRecursive(ctx, repo, commit.TreeSHA)
	if err != nil {
		return nil, remoteBase{}, &models.SyncError{Phase: "fetch tree", Err: err}
	}

	tree := models.NewRemoteTree()
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		if !underFolder(folder, entry.Path) {
			continue
		}

		sha := entry.SHA
		if !gitblob.IsValidSHA(sha) {
			e.logger.WithField("path", entry.Path).Warn("Remote entry has no usable SHA, forcing update")
			sha = models.ForceUpdateSHA
		}
		tree.Set(entry.Path, sha)
	}

	e.logger.WithFields(map[string]interface{}{
		"branch":  branch,
		"head":    head,
		"entries": tree.Len(),
	}).Debug("Mapped remote tree")

	return tree, remoteBase{CommitSHA: head, TreeSHA: commit.TreeSHA}, nil
}

// underFolder reports whether a repo path belongs to the target folder.
// An empty folder claims everything.
func underFolder(folder, path string) bool {
	if folder == "" {
		return true
	}
	return path == folder || strings.HasPrefix(path, folder+"/")
}
