package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// GitHubClient implements Client against the git data REST endpoints.
type GitHubClient struct {
	http *HTTPClient
}

// NewGitHubClient wraps an HTTP client.
func NewGitHubClient(httpClient *HTTPClient) *GitHubClient {
	return &GitHubClient{http: httpClient}
}

// SetToken sets the bearer token.
func (c *GitHubClient) SetToken(token string) {
	c.http.SetToken(token)
}

type refResponse struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// GetBranchHead resolves a branch name to its head commit SHA.
func (c *GitHubClient) GetBranchHead(ctx context.Context, repo config.Repo, branch string) (string, error) {
	var resp refResponse
	path := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", repo.Owner, repo.Name, branch)
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		if apiErr, ok := err.(*models.APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", models.ErrBranchNotFound, branch)
		}
		return "", err
	}
	return resp.Object.SHA, nil
}

type commitResponse struct {
	SHA  string `json:"sha"`
	Tree struct {
		SHA string `json:"sha"`
	} `json:"tree"`
	Parents []struct {
		SHA string `json:"sha"`
	} `json:"parents"`
}

// GetCommit fetches a commit object.
func (c *GitHubClient) GetCommit(ctx context.Context, repo config.Repo, sha string) (*Commit, error) {
	var resp commitResponse
	path := fmt.Sprintf("/repos/%s/%s/git/commits/%s", repo.Owner, repo.Name, sha)
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	commit := &Commit{
		SHA:     resp.SHA,
		TreeSHA: resp.Tree.SHA,
	}
	for _, p := range resp.Parents {
		commit.Parents = append(commit.Parents, p.SHA)
	}
	return commit, nil
}

type treeResponse struct {
	SHA       string `json:"sha"`
	Truncated bool   `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Mode string `json:"mode"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
	} `json:"tree"`
}

// GetTreeRecursive fetches the full recursive listing of a tree.
func (c *GitHubClient) GetTreeRecursive(ctx context.Context, repo config.Repo, treeSHA string) ([]TreeEntry, error) {
	var resp treeResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", repo.Owner, repo.Name, treeSHA)
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	if resp.Truncated {
		return nil, fmt.Errorf("tree listing truncated for %s, repository too large", treeSHA)
	}

	entries := make([]TreeEntry, 0, len(resp.Tree))
	for _, e := range resp.Tree {
		entries = append(entries, TreeEntry{
			Path: e.Path,
			Mode: e.Mode,
			Type: e.Type,
			SHA:  e.SHA,
		})
	}
	return entries, nil
}

type blobRequest struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type shaResponse struct {
	SHA string `json:"sha"`
}

// CreateBlob uploads content and returns the new blob SHA.
func (c *GitHubClient) CreateBlob(ctx context.Context, repo config.Repo, content, encoding string) (string, error) {
	var resp shaResponse
	path := fmt.Sprintf("/repos/%s/%s/git/blobs", repo.Owner, repo.Name)
	req := blobRequest{Content: content, Encoding: encoding}
	if err := c.http.PostJSON(ctx, path, req, &resp); err != nil {
		return "", err
	}
	return resp.SHA, nil
}

type treeRequestEntry struct {
	Path string  `json:"path"`
	Mode string  `json:"mode"`
	Type string  `json:"type"`
	SHA  *string `json:"sha"`
}

type treeRequest struct {
	BaseTree string             `json:"base_tree,omitempty"`
	Tree     []treeRequestEntry `json:"tree"`
}

// CreateTree layers the operations on top of the base tree. Deletions
// are sent with a null SHA.
func (c *GitHubClient) CreateTree(ctx context.Context, repo config.Repo, baseTreeSHA string, ops []models.TreeOperation) (string, error) {
	req := treeRequest{BaseTree: baseTreeSHA}
	for _, op := range ops {
		entry := treeRequestEntry{
			Path: op.Path,
			Mode: op.Mode,
			Type: "blob",
		}
		if op.Kind == models.BlobOp {
			sha := op.SHA
			entry.SHA = &sha
		}
		req.Tree = append(req.Tree, entry)
	}

	var resp shaResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees", repo.Owner, repo.Name)
	if err := c.http.PostJSON(ctx, path, req, &resp); err != nil {
		return "", err
	}
	return resp.SHA, nil
}

type commitRequest struct {
	Message   string   `json:"message"`
	Tree      string   `json:"tree"`
	Parents   []string `json:"parents"`
	Author    Identity `json:"author"`
	Committer Identity `json:"committer"`
}

// CreateCommit wraps a tree in a commit object.
func (c *GitHubClient) CreateCommit(ctx context.Context, repo config.Repo, treeSHA string, parents []string, message string, author Identity) (string, error) {
	req := commitRequest{
		Message:   message,
		Tree:      treeSHA,
		Parents:   parents,
		Author:    author,
		Committer: author,
	}

	var resp shaResponse
	path := fmt.Sprintf("/repos/%s/%s/git/commits", repo.Owner, repo.Name)
	if err := c.http.PostJSON(ctx, path, req, &resp); err != nil {
		return "", err
	}
	return resp.SHA, nil
}

type refUpdateRequest struct {
	SHA   string `json:"sha"`
	Force bool   `json:"force"`
}

// UpdateBranchRef fast-forwards the branch ref to a new commit.
func (c *GitHubClient) UpdateBranchRef(ctx context.Context, repo config.Repo, branch, commitSHA string) error {
	path := fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", repo.Owner, repo.Name, branch)
	req := refUpdateRequest{SHA: commitSHA, Force: false}
	return c.http.PatchJSON(ctx, path, req, nil)
}
