package transport

import (
	"context"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// Commit is the subset of a git commit object the publisher needs.
type Commit struct {
	SHA     string
	TreeSHA string
	Parents []string
}

// TreeEntry is one row of a recursive tree listing.
type TreeEntry struct {
	Path string
	Mode string
	Type string
	SHA  string
}

// Identity names a commit author or committer.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Blob payload encodings accepted by the blob-creation endpoint.
const (
	EncodingUTF8   = "utf-8"
	EncodingBase64 = "base64"
)

// Client is the git data API surface the sync pipeline consumes.
type Client interface {
	GetBranchHead(ctx context.Context, repo config.Repo, branch string) (string, error)
	GetCommit(ctx context.Context, repo config.Repo, sha string) (*Commit, error)
	GetTreeRecursive(ctx context.Context, repo config.Repo, treeSHA string) ([]TreeEntry, error)
	CreateBlob(ctx context.Context, repo config.Repo, content, encoding string) (string, error)
	CreateTree(ctx context.Context, repo config.Repo, baseTreeSHA string, ops []models.TreeOperation) (string, error)
	CreateCommit(ctx context.Context, repo config.Repo, treeSHA string, parents []string, message string, author Identity) (string, error)
	UpdateBranchRef(ctx context.Context, repo config.Repo, branch, commitSHA string) error
	SetToken(token string)
}

// NewClient creates the default GitHub-backed client.
func NewClient(cfg *config.APIConfig, logger *events.Logger) Client {
	return NewGitHubClient(NewHTTPClient(cfg, logger))
}
