// Package dashboard implements the signed-in wallet surface: balance
// refresh, transaction history, send/swap, account management, backup
// reveal and the unlock gate in front of sensitive actions.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	backendclient "github.com/bobmcallan/ardex/internal/clients/backend"
	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
	"github.com/bobmcallan/ardex/internal/models"
	"github.com/bobmcallan/ardex/internal/vault"
)

const (
	// usdtRate is the fixed HBAR→USDT conversion used when the backend
	// does not supply a USDT figure.
	usdtRate = 0.07
	// recentTransactions is how many records the dashboard card shows.
	recentTransactions = 4
	// seeMoreCap bounds the expanded transaction list.
	seeMoreCap = 50
)

// Controller drives the dashboard. All mutations go through the vault
// store; the backend is consulted for balances, history and password
// verification only.
type Controller struct {
	store      *vault.Store
	backend    interfaces.BackendClient
	prompter   interfaces.Prompter
	credential interfaces.CredentialChecker
	logger     *common.Logger
}

// NewController creates the dashboard controller. The credential
// checker may be nil on platforms without one.
func NewController(store *vault.Store, backend interfaces.BackendClient, prompter interfaces.Prompter, credential interfaces.CredentialChecker, logger *common.Logger) *Controller {
	return &Controller{
		store:      store,
		backend:    backend,
		prompter:   prompter,
		credential: credential,
		logger:     logger,
	}
}

// Snapshot is one rendered dashboard state.
type Snapshot struct {
	HasAccount   bool
	AccountID    string
	Hbar         float64
	Usdt         float64
	Transactions []models.Transaction
}

// Refresh builds the current dashboard snapshot. Without an active
// account it returns placeholders and makes no backend calls. A failed
// balance fetch falls back to the cached balance; a failed history
// fetch shows local records only.
func (c *Controller) Refresh(ctx context.Context) *Snapshot {
	state := c.store.Load(ctx)
	acct := state.ActiveAccount()
	if acct == nil {
		return &Snapshot{}
	}

	hbar := acct.Hbar
	usdt := hbar * usdtRate

	res := c.backend.Balance(ctx, acct.AccountID)
	if res.OK {
		if res.Balance.Hbar != nil {
			hbar = *res.Balance.Hbar
			usdt = hbar * usdtRate
			if acct.Hbar != hbar {
				acct.Hbar = hbar
				if err := c.store.Save(ctx, state); err != nil {
					c.logger.Warn().Err(err).Msg("Failed to cache refreshed balance")
				}
			}
		}
		if res.Balance.Usdt != nil {
			usdt = *res.Balance.Usdt
		}
	} else {
		c.logger.Warn().Err(res.Err).Str("account", acct.AccountID).Msg("Balance fetch failed, using cached")
	}

	txs := c.history(ctx, acct.AccountID)
	if len(txs) > recentTransactions {
		txs = txs[:recentTransactions]
	}

	return &Snapshot{
		HasAccount:   true,
		AccountID:    acct.AccountID,
		Hbar:         hbar,
		Usdt:         usdt,
		Transactions: txs,
	}
}

// SeeMore returns the full transaction history, newest first, capped.
func (c *Controller) SeeMore(ctx context.Context) []models.Transaction {
	state := c.store.Load(ctx)
	acct := state.ActiveAccount()
	if acct == nil {
		return nil
	}
	txs := c.history(ctx, acct.AccountID)
	if len(txs) > seeMoreCap {
		txs = txs[:seeMoreCap]
	}
	return txs
}

// history merges locally synthesized sends (newest first already) with
// the backend's records behind them.
func (c *Controller) history(ctx context.Context, accountID string) []models.Transaction {
	txs := c.store.Transactions(ctx)

	res := c.backend.Transactions(ctx, accountID)
	if !res.OK {
		c.logger.Warn().Err(res.Err).Msg("Transaction fetch failed, showing local records only")
		return txs
	}
	for _, bt := range res.Transactions {
		txs = append(txs, models.Transaction{
			TxID:   bt.DisplayID(),
			Amount: bt.Amount,
			Status: bt.DisplayStatus(),
		})
	}
	return txs
}

// Receive returns the active account identifier for sharing, or empty
// when no account is active.
func (c *Controller) Receive(ctx context.Context) string {
	state := c.store.Load(ctx)
	if acct := state.ActiveAccount(); acct != nil {
		return acct.AccountID
	}
	return ""
}

// Activity returns the global activity feed. A failed fetch degrades
// to an empty feed.
func (c *Controller) Activity(ctx context.Context) []models.ActivityItem {
	res := c.backend.Activity(ctx)
	if !res.OK {
		c.logger.Warn().Err(res.Err).Msg("Activity fetch failed")
		return nil
	}
	return res.Items
}

// Send transfers hbar to a recipient. The transfer is authorized by
// password re-entry against the backend when a token exists, or a local
// confirmation otherwise. Success decrements the cached balance and
// prepends a synthetic record to the local log.
func (c *Controller) Send(ctx context.Context, recipient string, amount float64) error {
	state := c.store.Load(ctx)
	acct := state.ActiveAccount()
	if acct == nil {
		return common.NewValidationError("No active account")
	}

	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return common.NewValidationError("Enter a recipient account")
	}
	// NaN compares false against everything, so it needs its own check.
	if math.IsNaN(amount) || amount <= 0 {
		return common.NewValidationError("Amount must be greater than zero")
	}
	if amount > acct.Hbar {
		return common.NewValidationError("Insufficient balance")
	}

	if state.Auth != nil && state.Auth.Token != "" {
		password, ok := c.prompter.Password("Re-enter your password to authorize")
		if !ok || password == "" {
			return common.ErrAuthorizationDeclined
		}
		verify := c.backend.VerifyPassword(ctx, state.Auth.Token, password)
		if !verify.OK {
			return fmt.Errorf("password verification failed: %w", verify.Err)
		}
		if !verify.Success {
			return common.NewValidationError("Password incorrect")
		}
	} else {
		if !c.prompter.Confirm(fmt.Sprintf("Send %.4f HBAR to %s?", amount, recipient)) {
			return common.ErrAuthorizationDeclined
		}
	}

	acct.Hbar -= amount
	if err := c.store.Save(ctx, state); err != nil {
		return err
	}

	tx := models.Transaction{
		TxID:      uuid.NewString(),
		From:      acct.AccountID,
		To:        recipient,
		Amount:    amount,
		Status:    "Success",
		CreatedAt: time.Now(),
	}
	// The send itself has happened once the balance is persisted; a
	// failed log write must not turn it into an error.
	if err := c.store.AppendTransaction(ctx, tx); err != nil {
		c.logger.Warn().Err(err).Str("tx_id", tx.TxID).Msg("Failed to record local transaction")
	}

	c.logger.Info().
		Str("tx_id", tx.TxID).
		Str("to", recipient).
		Float64("amount", amount).
		Msg("Send completed")
	return nil
}

// Swap exchanges hbar for the tokenized asset. There is no backend
// settlement; the cached balance drops by the integer-rounded amount,
// floored at zero.
func (c *Controller) Swap(ctx context.Context, amount float64) error {
	state := c.store.Load(ctx)
	acct := state.ActiveAccount()
	if acct == nil {
		return common.NewValidationError("No active account")
	}
	if math.IsNaN(amount) || amount <= 0 {
		return common.NewValidationError("Amount must be greater than zero")
	}

	acct.Hbar -= math.Round(amount)
	if acct.Hbar < 0 {
		acct.Hbar = 0
	}
	if err := c.store.Save(ctx, state); err != nil {
		return err
	}

	c.logger.Info().Float64("amount", amount).Float64("hbar", acct.Hbar).Msg("Swap completed")
	return nil
}

// Accounts returns all known accounts in stable order plus the active id.
func (c *Controller) Accounts(ctx context.Context) ([]*models.Account, string) {
	state := c.store.Load(ctx)
	ids := state.AccountIDs()
	accounts := make([]*models.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, state.Accounts[id])
	}
	return accounts, state.ActiveAccountID
}

// SwitchAccount makes the given account active.
func (c *Controller) SwitchAccount(ctx context.Context, accountID string) error {
	state := c.store.Load(ctx)
	if _, ok := state.Accounts[accountID]; !ok {
		return common.NewValidationError("Unknown account")
	}
	state.ActiveAccountID = accountID
	return c.store.Save(ctx, state)
}

// DeleteAccount removes an account after the unlock gate passes. If the
// active account was deleted, an arbitrary remaining account is
// promoted, or none when the vault is empty.
func (c *Controller) DeleteAccount(ctx context.Context, accountID string) error {
	state := c.store.Load(ctx)
	if _, ok := state.Accounts[accountID]; !ok {
		return common.NewValidationError("Unknown account")
	}

	if err := c.unlock(ctx, state); err != nil {
		return err
	}

	delete(state.Accounts, accountID)
	if state.ActiveAccountID == accountID {
		state.ActiveAccountID = ""
		if ids := state.AccountIDs(); len(ids) > 0 {
			state.ActiveAccountID = ids[0]
		}
	}
	if err := c.store.Save(ctx, state); err != nil {
		return err
	}

	c.logger.Info().Str("account", accountID).Msg("Account deleted")
	return nil
}

// BackupInfo is the secret material revealed after unlocking.
type BackupInfo struct {
	Passphrase string
	PrivateKey string
}

// Backup reveals the stored passphrase and private key for the active
// account. The unlock gate must pass first.
func (c *Controller) Backup(ctx context.Context) (*BackupInfo, error) {
	state := c.store.Load(ctx)
	if err := c.unlock(ctx, state); err != nil {
		return nil, err
	}

	info := &BackupInfo{
		Passphrase: state.Passphrase,
		PrivateKey: "(not stored)",
	}
	if acct := state.ActiveAccount(); acct != nil {
		if acct.Passphrase != "" {
			info.Passphrase = acct.Passphrase
		}
		if acct.PrivateKey != "" {
			info.PrivateKey = acct.PrivateKey
		}
	}
	if info.Passphrase == "" {
		info.Passphrase = "(not stored)"
	}
	return info, nil
}

// SessionExpired reports whether the stored auth token has lapsed, so
// the front end can prompt a re-login.
func (c *Controller) SessionExpired(ctx context.Context) bool {
	state := c.store.Load(ctx)
	if state.Auth == nil || state.Auth.Token == "" {
		return false
	}
	return backendclient.TokenExpired(state.Auth.Token)
}

// Logout strips the auth session from the vault and nothing else.
func (c *Controller) Logout(ctx context.Context) error {
	return c.store.Logout(ctx)
}

// unlock verifies the user before a sensitive action. The first
// available mechanism decides: enrolled platform credential, then
// backend password verification when a token exists, then the local
// bcrypt unlock hash. With nothing to verify against, the action is
// refused.
func (c *Controller) unlock(ctx context.Context, state *models.SessionState) error {
	if c.credential != nil && c.credential.Enrolled() {
		if err := c.credential.Verify(ctx); err != nil {
			return fmt.Errorf("credential check failed: %w", err)
		}
		return nil
	}

	if state.Auth != nil && state.Auth.Token != "" {
		password, ok := c.prompter.Password("Enter your password to continue")
		if !ok || password == "" {
			return common.ErrAuthorizationDeclined
		}
		verify := c.backend.VerifyPassword(ctx, state.Auth.Token, password)
		if !verify.OK {
			return fmt.Errorf("password verification failed: %w", verify.Err)
		}
		if !verify.Success {
			return common.NewValidationError("Password incorrect")
		}
		return nil
	}

	if state.UnlockHash != "" {
		password, ok := c.prompter.Password("Enter your password to continue")
		if !ok || password == "" {
			return common.ErrAuthorizationDeclined
		}
		passwordBytes := []byte(password)
		if len(passwordBytes) > 72 {
			passwordBytes = passwordBytes[:72]
		}
		if err := bcrypt.CompareHashAndPassword([]byte(state.UnlockHash), passwordBytes); err != nil {
			return common.NewValidationError("Password incorrect")
		}
		return nil
	}

	return common.NewValidationError("Nothing to verify against; sign in first")
}
