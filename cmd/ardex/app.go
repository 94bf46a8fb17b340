package main

import (
	"fmt"
	"os"

	backendclient "github.com/bobmcallan/ardex/internal/clients/backend"
	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/dashboard"
	"github.com/bobmcallan/ardex/internal/flow"
	"github.com/bobmcallan/ardex/internal/storage"
	"github.com/bobmcallan/ardex/internal/vault"
	"github.com/bobmcallan/ardex/internal/view"
	"github.com/bobmcallan/ardex/internal/walletconnect"
)

// App wires the wallet core together for the terminal front end.
type App struct {
	Config    *common.Config
	Logger    *common.Logger
	Storage   *storage.Manager
	Vault     *vault.Store
	Renderer  *view.Renderer
	Flow      *flow.Controller
	Dashboard *dashboard.Controller
	Prompter  *terminalPrompter
}

// NewApp loads configuration and initializes every component.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	vaultStore := vault.NewStore(storageManager.KeyValueStorage(), logger)

	backend := backendclient.NewClient(config.Backend.BaseURL,
		backendclient.WithLogger(logger),
		backendclient.WithRateLimit(config.Backend.RateLimit),
		backendclient.WithTimeout(config.Backend.GetTimeout()),
	)

	connector := walletconnect.NewClient(config.WalletLink.RelayURL, config.WalletLink.ProjectID,
		walletconnect.WithLogger(logger),
		walletconnect.WithTimeout(config.WalletLink.GetTimeout()),
	)

	renderer := view.NewRenderer(os.Stdout, true)
	prompter := newTerminalPrompter()

	return &App{
		Config:    config,
		Logger:    logger,
		Storage:   storageManager,
		Vault:     vaultStore,
		Renderer:  renderer,
		Flow:      flow.NewController(vaultStore, backend, connector, renderer, logger, config.WalletLink.Chain),
		Dashboard: dashboard.NewController(vaultStore, backend, prompter, nil, logger),
		Prompter:  prompter,
	}, nil
}

// Close releases the storage manager.
func (a *App) Close() {
	if err := a.Storage.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to close storage")
	}
}
