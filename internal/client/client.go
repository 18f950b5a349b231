// Package client wires configuration into a ready-to-use publisher.
package client

import (
	"path/filepath"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/services/sync"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/state"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/transport"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/vault"
)

// Client provides the high-level API for publisher operations.
type Client struct {
	Sync      *sync.Service
	Scheduler *sync.Scheduler

	config    *config.Config
	logger    *events.Logger
	transport transport.Client
	state     state.Store
}

// New creates a publisher client from config.
func New(cfg *config.Config, logger *events.Logger) (*Client, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	transportClient := transport.NewClient(&cfg.API, logger)
	transportClient.SetToken(cfg.GitHub.Token)

	vaultStore, err := vault.NewLocalStore(cfg.Sync.VaultDir)
	if err != nil {
		return nil, err
	}

	stateStore, err := state.NewSQLiteStore(filepath.Join(cfg.Storage.StateDir, "sync.db"), logger)
	if err != nil {
		return nil, err
	}

	syncService := sync.NewService(cfg, transportClient, vaultStore, stateStore, logger)
	scheduler := sync.NewScheduler(syncService, cfg, logger)

	return &Client{
		Sync:      syncService,
		Scheduler: scheduler,
		config:    cfg,
		logger:    logger,
		transport: transportClient,
		state:     stateStore,
	}, nil
}

// Close releases held resources.
func (c *Client) Close() error {
	return c.state.Close()
}
