package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		owner   string
		repo    string
		wantErr bool
	}{
		{"https", "https://github.com/alice/notes", "alice", "notes", false},
		{"https with .git", "https://github.com/alice/notes.git", "alice", "notes", false},
		{"trailing slash", "https://github.com/alice/notes/", "alice", "notes", false},
		{"scp style", "git@github.com:alice/notes.git", "alice", "notes", false},
		{"bare owner/repo", "alice/notes", "alice", "notes", false},
		{"empty", "", "", "", true},
		{"no repo", "notes", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, err := config.ParseRepoURL(tc.url)
			if tc.wantErr {
				require.Error(t, err)
				var cfgErr *models.ConfigError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.owner, repo.Owner)
			assert.Equal(t, tc.repo, repo.Name)
		})
	}
}

func TestNormalizeFolder(t *testing.T) {
	assert.Equal(t, "published", config.NormalizeFolder("/published/"))
	assert.Equal(t, "a/b", config.NormalizeFolder("a/b"))
	assert.Equal(t, "", config.NormalizeFolder("/"))
	assert.Equal(t, "", config.NormalizeFolder("  "))
}

func TestValidateGitHub(t *testing.T) {
	valid := config.GitHubConfig{
		Token:   "tok",
		RepoURL: "https://github.com/alice/notes",
		Branch:  "main",
	}

	t.Run("valid", func(t *testing.T) {
		gh := valid
		assert.NoError(t, gh.ValidateGitHub())
	})

	t.Run("missing token", func(t *testing.T) {
		gh := valid
		gh.Token = ""
		var cfgErr *models.ConfigError
		assert.ErrorAs(t, gh.ValidateGitHub(), &cfgErr)
	})

	t.Run("missing repo url", func(t *testing.T) {
		gh := valid
		gh.RepoURL = ""
		assert.Error(t, gh.ValidateGitHub())
	})

	t.Run("missing branch", func(t *testing.T) {
		gh := valid
		gh.Branch = ""
		assert.Error(t, gh.ValidateGitHub())
	})

	t.Run("malformed repo url", func(t *testing.T) {
		gh := valid
		gh.RepoURL = "nonsense"
		assert.Error(t, gh.ValidateGitHub())
	})
}
