// Package storage provides the top-level StorageManager for the local
// vault database.
package storage

import (
	"fmt"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
	"github.com/bobmcallan/ardex/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold
// area. One browser-storage-origin equivalent per data path.
type Manager struct {
	store  *badger.Store
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

// NewManager opens the local storage area at the configured path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:  store,
		kv:     badger.NewKVStorage(store, logger),
		logger: logger,
	}, nil
}

func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
