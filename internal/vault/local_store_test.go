package vault_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/vault"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes", "a.md"), []byte("# A"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes", "sub", "b.md"), []byte("# B"), 0644))

	store, err := vault.NewLocalStore(dir)
	require.NoError(t, err)

	t.Run("stat file", func(t *testing.T) {
		kind, err := store.Stat("notes/a.md")
		require.NoError(t, err)
		assert.Equal(t, vault.KindFile, kind)
	})

	t.Run("stat folder", func(t *testing.T) {
		kind, err := store.Stat("notes")
		require.NoError(t, err)
		assert.Equal(t, vault.KindFolder, kind)
	})

	t.Run("stat absent", func(t *testing.T) {
		kind, err := store.Stat("gone.md")
		require.NoError(t, err)
		assert.Equal(t, vault.KindAbsent, kind)
	})

	t.Run("list is sorted", func(t *testing.T) {
		entries, err := store.List("notes")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a.md", entries[0].Name)
		assert.Equal(t, vault.KindFile, entries[0].Kind)
		assert.Equal(t, "sub", entries[1].Name)
		assert.Equal(t, vault.KindFolder, entries[1].Kind)
	})

	t.Run("read", func(t *testing.T) {
		data, err := store.Read("notes/sub/b.md")
		require.NoError(t, err)
		assert.Equal(t, []byte("# B"), data)
	})

	t.Run("escape is rejected", func(t *testing.T) {
		_, err := store.Read("../outside.txt")
		assert.Error(t, err)
	})
}

func TestNewLocalStoreErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := vault.NewLocalStore(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "f")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
		_, err := vault.NewLocalStore(file)
		assert.Error(t, err)
	})
}
