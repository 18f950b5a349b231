package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/gitblob"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// MockClient provides an in-memory Client for testing. Configure the
// remote state through fields, then inspect the tracked requests.
type MockClient struct {
	mu sync.Mutex

	// Remote state
	Heads   map[string]string   // branch -> commit SHA
	Commits map[string]*Commit  // commit SHA -> commit
	Trees   map[string][]TreeEntry

	// Error injection
	RefError    error
	CommitError error
	TreeError   error
	BlobError   error
	CreateError error
	UpdateError error

	// Request tracking
	CreatedBlobs  []BlobRequest
	CreatedTrees  []TreeRequest
	CreatedCommit []CommitRequest
	UpdatedRefs   []RefUpdate

	token string
}

// BlobRequest tracks a blob creation.
type BlobRequest struct {
	Content  string
	Encoding string
	SHA      string
}

// TreeRequest tracks a tree creation.
type TreeRequest struct {
	BaseTree string
	Ops      []models.TreeOperation
	SHA      string
}

// CommitRequest tracks a commit creation.
type CommitRequest struct {
	TreeSHA string
	Parents []string
	Message string
	Author  Identity
	SHA     string
}

// RefUpdate tracks a branch ref update.
type RefUpdate struct {
	Branch string
	SHA    string
}

// NewMockClient creates a mock client with empty remote state.
func NewMockClient() *MockClient {
	return &MockClient{
		Heads:   make(map[string]string),
		Commits: make(map[string]*Commit),
		Trees:   make(map[string][]TreeEntry),
	}
}

// SeedBranch installs a branch head with the given tree entries.
func (m *MockClient) SeedBranch(branch, commitSHA, treeSHA string, entries []TreeEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Heads[branch] = commitSHA
	m.Commits[commitSHA] = &Commit{SHA: commitSHA, TreeSHA: treeSHA}
	m.Trees[treeSHA] = entries
}

func (m *MockClient) GetBranchHead(ctx context.Context, repo config.Repo, branch string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RefError != nil {
		return "", m.RefError
	}
	sha, ok := m.Heads[branch]
	if !ok {
		return "", fmt.Errorf("%w: %s", models.ErrBranchNotFound, branch)
	}
	return sha, nil
}

func (m *MockClient) GetCommit(ctx context.Context, repo config.Repo, sha string) (*Commit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CommitError != nil {
		return nil, m.CommitError
	}
	commit, ok := m.Commits[sha]
	if !ok {
		return nil, fmt.Errorf("no mock commit %s", sha)
	}
	return commit, nil
}

func (m *MockClient) GetTreeRecursive(ctx context.Context, repo config.Repo, treeSHA string) ([]TreeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.TreeError != nil {
		return nil, m.TreeError
	}
	entries, ok := m.Trees[treeSHA]
	if !ok {
		return nil, fmt.Errorf("no mock tree %s", treeSHA)
	}
	return entries, nil
}

func (m *MockClient) CreateBlob(ctx context.Context, repo config.Repo, content, encoding string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.BlobError != nil {
		return "", m.BlobError
	}

	// The mock hashes utf-8 payloads like the real API so engine tests
	// can assert hash round-trips. Base64 payloads get a synthetic SHA.
	sha := gitblob.SumString(content)
	if encoding == EncodingBase64 {
		sha = gitblob.Sum([]byte("base64:" + content))
	}

	m.CreatedBlobs = append(m.CreatedBlobs, BlobRequest{
		Content:  content,
		Encoding: encoding,
		SHA:      sha,
	})
	return sha, nil
}

func (m *MockClient) CreateTree(ctx context.Context, repo config.Repo, baseTreeSHA string, ops []models.TreeOperation) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return "", m.CreateError
	}

	sha := fmt.Sprintf("tree-%d", len(m.CreatedTrees)+1)
	m.CreatedTrees = append(m.CreatedTrees, TreeRequest{
		BaseTree: baseTreeSHA,
		Ops:      append([]models.TreeOperation(nil), ops...),
		SHA:      sha,
	})
	return sha, nil
}

func (m *MockClient) CreateCommit(ctx context.Context, repo config.Repo, treeSHA string, parents []string, message string, author Identity) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return "", m.CreateError
	}

	sha := fmt.Sprintf("commit-%d", len(m.CreatedCommit)+1)
	m.CreatedCommit = append(m.CreatedCommit, CommitRequest{
		TreeSHA: treeSHA,
		Parents: append([]string(nil), parents...),
		Message: message,
		Author:  author,
		SHA:     sha,
	})
	return sha, nil
}

func (m *MockClient) UpdateBranchRef(ctx context.Context, repo config.Repo, branch, commitSHA string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.UpdatedRefs = append(m.UpdatedRefs, RefUpdate{Branch: branch, SHA: commitSHA})
	m.Heads[branch] = commitSHA
	return nil
}

func (m *MockClient) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// Token returns the last token set.
func (m *MockClient) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
