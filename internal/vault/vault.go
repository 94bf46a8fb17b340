// Package vault implements the persistent session store: the single
// local record holding accounts, the active account, and the auth
// token, plus the local transaction log kept under its own key.
package vault

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
	"github.com/bobmcallan/ardex/internal/models"
)

const (
	// VaultKey is the fixed storage key for the session state record.
	VaultKey = "ardex_vault_v2"
	// TxLogKey is the fixed storage key for locally synthesized transactions.
	TxLogKey = "ardex_local_txs"
)

// Store owns read/modify/write access to the vault record. Every save
// is a full-document rewrite; last writer wins.
type Store struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

// NewStore creates a vault store over a key-value storage area.
func NewStore(kv interfaces.KeyValueStorage, logger *common.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Load returns the current session state. A missing or unparseable
// stored value degrades to an empty state, never an error; the next
// Save self-heals the record.
func (s *Store) Load(ctx context.Context) *models.SessionState {
	raw, err := s.kv.Get(ctx, VaultKey)
	if err != nil {
		return &models.SessionState{}
	}

	var state models.SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Warn().Err(err).Msg("Vault record unparseable, starting empty")
		return &models.SessionState{}
	}
	return &state
}

// Save serializes and persists the full record, overwriting any prior
// value.
func (s *Store) Save(ctx context.Context, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize vault: %w", err)
	}
	if err := s.kv.Set(ctx, VaultKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist vault: %w", err)
	}
	return nil
}

// Ensure loads the session state and initializes it on first use: a
// fresh salt and an empty accounts map, persisted immediately. This is
// the canonical entry point; Load is for read-only peeks.
func (s *Store) Ensure(ctx context.Context) (*models.SessionState, error) {
	state := s.Load(ctx)
	if state.Salt != "" {
		return state, nil
	}

	salt, err := randomHex(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	state.Salt = salt
	state.Accounts = make(map[string]*models.Account)
	state.Created = time.Now()

	if err := s.Save(ctx, state); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("salt", salt).Msg("Vault initialized")
	return state, nil
}

// Logout strips the auth session and nothing else.
func (s *Store) Logout(ctx context.Context) error {
	state := s.Load(ctx)
	if state.Auth == nil {
		return nil
	}
	state.Auth = nil
	return s.Save(ctx, state)
}

// Transactions returns the local transaction log, newest first. A
// missing or corrupt log degrades to empty.
func (s *Store) Transactions(ctx context.Context) []models.Transaction {
	raw, err := s.kv.Get(ctx, TxLogKey)
	if err != nil {
		return nil
	}
	var txs []models.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		s.logger.Warn().Err(err).Msg("Local transaction log unparseable, starting empty")
		return nil
	}
	return txs
}

// AppendTransaction prepends a record to the local transaction log.
func (s *Store) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	txs := append([]models.Transaction{tx}, s.Transactions(ctx)...)
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("failed to serialize transaction log: %w", err)
	}
	if err := s.kv.Set(ctx, TxLogKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist transaction log: %w", err)
	}
	return nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
