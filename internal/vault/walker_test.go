package vault_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/vault"
)

func newTestWalker(store vault.Store) *vault.Walker {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.ErrorLevel, "text", &buf)
	return vault.NewWalker(store, 4, logger)
}

func TestWalkerCollect(t *testing.T) {
	store := vault.NewMockStore()
	store.AddFile("notes/a.md", []byte("# A"))
	store.AddFile("notes/sub/b.md", []byte("# B"))
	store.AddFile("attachments/img.png", []byte{0x89, 0x50, 0x4e, 0x47, 0, 0, 0, 0, 0, 0})
	store.AddFile("unselected/c.md", []byte("# C"))

	walker := newTestWalker(store)

	t.Run("recurses folders and maps repo paths", func(t *testing.T) {
		files, err := walker.Collect(context.Background(), []string{"notes", "attachments"}, "published")
		require.NoError(t, err)
		require.Len(t, files, 3)

		byPath := make(map[string]int)
		for i, f := range files {
			byPath[f.VaultPath] = i
		}

		a := files[byPath["notes/a.md"]]
		assert.Equal(t, "published/notes/a.md", a.RepoPath)
		assert.True(t, a.IsText)
		assert.Equal(t, "# A", a.Content)
		assert.Empty(t, a.Binary)

		b := files[byPath["notes/sub/b.md"]]
		assert.Equal(t, "published/notes/sub/b.md", b.RepoPath)

		img := files[byPath["attachments/img.png"]]
		assert.False(t, img.IsText)
		assert.Empty(t, img.Content)
		assert.NotEmpty(t, img.Binary)
	})

	t.Run("empty repo folder keeps vault paths", func(t *testing.T) {
		files, err := walker.Collect(context.Background(), []string{"notes/a.md"}, "")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "notes/a.md", files[0].RepoPath)
	})

	t.Run("missing root is skipped silently", func(t *testing.T) {
		files, err := walker.Collect(context.Background(), []string{"notes", "deleted-folder"}, "")
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("single file root", func(t *testing.T) {
		files, err := walker.Collect(context.Background(), []string{"unselected/c.md"}, "pub")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "pub/unselected/c.md", files[0].RepoPath)
	})

	t.Run("duplicate roots do not duplicate files", func(t *testing.T) {
		files, err := walker.Collect(context.Background(), []string{"notes", "notes/a.md"}, "")
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})
}

func TestWalkerReadError(t *testing.T) {
	store := vault.NewMockStore()
	store.AddFile("notes/a.md", []byte("# A"))
	store.ReadError = assert.AnError

	walker := newTestWalker(store)

	_, err := walker.Collect(context.Background(), []string{"notes"}, "")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWalkerManyFilesAllRead(t *testing.T) {
	store := vault.NewMockStore()
	for i := 0; i < 50; i++ {
		store.AddFile(pathForIndex(i), []byte("content"))
	}

	walker := newTestWalker(store)

	files, err := walker.Collect(context.Background(), []string{"bulk"}, "out")
	require.NoError(t, err)
	// Every read joins before Collect returns.
	assert.Len(t, files, 50)
	for _, f := range files {
		assert.NotEmpty(t, f.RepoPath)
		assert.Equal(t, "content", f.Content)
	}
}

func pathForIndex(i int) string {
	const letters = "abcdefghij"
	return "bulk/" + string(letters[i/10]) + string(letters[i%10]) + ".md"
}
