package config

import (
	"strings"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

// Repo identifies a GitHub repository by owner and name.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepoURL extracts owner/repo from a repository URL. The last two
// path segments carry the identity; a trailing .git is optional. A URL
// that does not yield both segments is a configuration error.
func ParseRepoURL(rawURL string) (Repo, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return Repo{}, models.NewConfigError("github.repo_url", "repository URL is empty")
	}

	trimmed = strings.TrimSuffix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	// scp-style remotes use ':' before the path
	if i := strings.LastIndex(trimmed, ":"); i >= 0 && !strings.Contains(trimmed[i:], "/") {
		return Repo{}, models.NewConfigError("github.repo_url", "cannot parse owner/repo from "+rawURL)
	}
	trimmed = strings.ReplaceAll(trimmed, ":", "/")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return Repo{}, models.NewConfigError("github.repo_url", "cannot parse owner/repo from "+rawURL)
	}

	owner := parts[len(parts)-2]
	name := parts[len(parts)-1]
	if owner == "" || name == "" {
		return Repo{}, models.NewConfigError("github.repo_url", "cannot parse owner/repo from "+rawURL)
	}

	return Repo{Owner: owner, Name: name}, nil
}

// NormalizeFolder strips leading and trailing slashes from the target
// folder setting.
func NormalizeFolder(folder string) string {
	return strings.Trim(strings.TrimSpace(folder), "/")
}

// ValidateGitHub checks the repository settings needed before any
// network call.
func (g *GitHubConfig) ValidateGitHub() error {
	if g.Token == "" {
		return models.NewConfigError("github.token", "access token is required")
	}
	if g.RepoURL == "" {
		return models.NewConfigError("github.repo_url", "repository URL is required")
	}
	if g.Branch == "" {
		return models.NewConfigError("github.branch", "branch is required")
	}
	if _, err := ParseRepoURL(g.RepoURL); err != nil {
		return err
	}
	return nil
}
