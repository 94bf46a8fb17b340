// Package models defines the data types shared across the Ardex wallet core.
package models

import (
	"sort"
	"time"
)

// SessionState is the single persisted vault record for a local
// installation. It is loaded whole, mutated in place by the controllers,
// and written back whole after every mutation (last-writer-wins).
type SessionState struct {
	Salt            string              `json:"salt"`
	Accounts        map[string]*Account `json:"accounts"`
	ActiveAccountID string              `json:"activeAccountId,omitempty"`
	Auth            *AuthSession        `json:"auth,omitempty"`
	// Passphrase is the last generated or recovered 18-word secret.
	// Stored plaintext; demo-grade, no encryption at rest.
	Passphrase string    `json:"passphrase,omitempty"`
	UnlockHash string    `json:"unlockHash,omitempty"`
	Created    time.Time `json:"created,omitempty"`
}

// AuthSession holds the backend auth token after register/login/recover.
type AuthSession struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
}

// Account is one wallet account known to the vault.
type Account struct {
	AccountID string  `json:"accountId"`
	Hbar      float64 `json:"hbar"`
	External  bool    `json:"external,omitempty"`
	// Passphrase and PrivateKey are only present for locally created
	// accounts. Stored plaintext; demo-grade, no encryption at rest.
	Passphrase string `json:"passphrase,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`
}

// ActiveAccount returns the currently selected account, or nil when no
// account is active or the reference is dangling.
func (s *SessionState) ActiveAccount() *Account {
	if s.ActiveAccountID == "" || s.Accounts == nil {
		return nil
	}
	return s.Accounts[s.ActiveAccountID]
}

// AccountIDs returns all account identifiers in the vault, sorted.
func (s *SessionState) AccountIDs() []string {
	ids := make([]string, 0, len(s.Accounts))
	for id := range s.Accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
