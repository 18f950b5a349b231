package sync_test

import (
	"bytes"
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/gitblob"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/models"
	sync "github.com/jsrikrishna11/obsidian-github-publisher/internal/services/sync"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/state"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/transport"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/vault"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.GitHub.Token = "tok"
	cfg.GitHub.RepoURL = "https://github.com/alice/notes"
	cfg.GitHub.Branch = "main"
	cfg.GitHub.Folder = "published"
	cfg.Sync.Paths = []string{"notes"}
	return cfg
}

func newTestService(cfg *config.Config, client transport.Client, store vault.Store) (*sync.Service, *state.MockStore) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.ErrorLevel, "text", &buf)

	stateStore := state.NewMockStore()
	return sync.NewService(cfg, client, store, stateStore, logger), stateStore
}

func TestServicePublishesChanges(t *testing.T) {
	mock := transport.NewMockClient()
	mock.SeedBranch("main", "headsha", "treesha", []transport.TreeEntry{
		{Path: "published/notes/old.md", Type: "blob", SHA: gitblob.SumString("old")},
	})

	vaultStore := vault.NewMockStore()
	vaultStore.AddFile("notes/a.md", []byte("hello"))

	service, stateStore := newTestService(testConfig(), mock, vaultStore)

	rec, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rec.FilesScanned)
	assert.Equal(t, 1, rec.BlobsUploaded)
	assert.Equal(t, 1, rec.Deletions)
	assert.NotEmpty(t, rec.CommitSHA)

	// One tree layered on the base, one single-parent commit, one
	// fast-forward ref update.
	require.Len(t, mock.CreatedTrees, 1)
	assert.Equal(t, "treesha", mock.CreatedTrees[0].BaseTree)

	require.Len(t, mock.CreatedCommit, 1)
	assert.Equal(t, []string{"headsha"}, mock.CreatedCommit[0].Parents)
	assert.Equal(t, "vault sync", mock.CreatedCommit[0].Message)

	require.Len(t, mock.UpdatedRefs, 1)
	assert.Equal(t, "main", mock.UpdatedRefs[0].Branch)
	assert.Equal(t, rec.CommitSHA, mock.UpdatedRefs[0].SHA)

	// Outcome recorded.
	runs := stateStore.Runs()
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Succeeded())

	last, err := stateStore.LastSync()
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestServiceNoOpStillRecordsTimestamp(t *testing.T) {
	mock := transport.NewMockClient()
	mock.SeedBranch("main", "headsha", "treesha", []transport.TreeEntry{
		{Path: "published/notes/a.md", Type: "blob", SHA: gitblob.SumString("hello")},
	})

	vaultStore := vault.NewMockStore()
	vaultStore.AddFile("notes/a.md", []byte("hello"))

	service, stateStore := newTestService(testConfig(), mock, vaultStore)

	rec, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.CommitSHA)
	assert.Equal(t, 0, rec.BlobsUploaded)

	// No blob, tree, commit or ref call was made.
	assert.Empty(t, mock.CreatedBlobs)
	assert.Empty(t, mock.CreatedTrees)
	assert.Empty(t, mock.CreatedCommit)
	assert.Empty(t, mock.UpdatedRefs)

	// The timestamp still advances.
	last, err := stateStore.LastSync()
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestServiceConfigErrorBeforeNetwork(t *testing.T) {
	cfg := testConfig()
	cfg.GitHub.Token = ""

	mock := transport.NewMockClient()
	service, stateStore := newTestService(cfg, mock, vault.NewMockStore())

	_, err := service.Run(context.Background())
	require.Error(t, err)

	var cfgErr *models.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	// The failure is recorded, nothing was uploaded.
	assert.Empty(t, mock.CreatedBlobs)
	runs := stateStore.Runs()
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Succeeded())
}

func TestServiceRemoteFailureLeavesRefUntouched(t *testing.T) {
	mock := transport.NewMockClient()
	mock.SeedBranch("main", "headsha", "treesha", nil)
	mock.UpdateError = assert.AnError

	vaultStore := vault.NewMockStore()
	vaultStore.AddFile("notes/a.md", []byte("hello"))

	service, _ := newTestService(testConfig(), mock, vaultStore)

	_, err := service.Run(context.Background())
	require.Error(t, err)

	assert.Empty(t, mock.UpdatedRefs)
	assert.Equal(t, "headsha", mock.Heads["main"])
}

// blockingStore parks every read until the gate opens, keeping a run
// in flight for the overlap test.
type blockingStore struct {
	*vault.MockStore
	gate    chan struct{}
	started chan struct{}
	once    stdsync.Once
}

func (b *blockingStore) Read(path string) ([]byte, error) {
	b.once.Do(func() { close(b.started) })
	<-b.gate
	return b.MockStore.Read(path)
}

func TestServiceConcurrentRunDropped(t *testing.T) {
	mock := transport.NewMockClient()
	mock.SeedBranch("main", "headsha", "treesha", nil)

	inner := vault.NewMockStore()
	inner.AddFile("notes/a.md", []byte("hello"))
	store := &blockingStore{
		MockStore: inner,
		gate:      make(chan struct{}),
		started:   make(chan struct{}),
	}

	service, _ := newTestService(testConfig(), mock, store)

	done := make(chan error, 1)
	go func() {
		_, err := service.Run(context.Background())
		done <- err
	}()

	// Wait until the first run is inside the pipeline.
	select {
	case <-store.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first run never started reading")
	}

	// A second trigger while the first is in flight is dropped.
	_, err := service.Run(context.Background())
	assert.ErrorIs(t, err, models.ErrSyncInProgress)

	close(store.gate)
	require.NoError(t, <-done)

	// Only one ref update happened.
	assert.Len(t, mock.UpdatedRefs, 1)
}
