package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/ardex/internal/models"
)

// Result is the uniform outcome of a backend call. The gateway never
// returns a Go error to its caller: transport faults, timeouts and
// non-2xx statuses are all carried in Err with OK false, so every flow
// can render a failure inline instead of crashing.
type Result struct {
	OK   bool
	Data any // decoded JSON body, or raw text for non-JSON responses
	Err  error
}

// ErrorMessage returns a renderable message for a failed result.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return "unknown"
	}
	return r.Err.Error()
}

// AuthResult is the outcome of register/login/recover calls.
type AuthResult struct {
	OK    bool
	Token string
	Err   error
}

// VerifyResult is the outcome of a password verification call.
type VerifyResult struct {
	OK      bool // the call itself succeeded
	Success bool // the password matched
	Err     error
}

// BalanceResult is the outcome of a balance fetch.
type BalanceResult struct {
	OK      bool
	Balance models.Balance
	Err     error
}

// TransactionsResult is the outcome of a transaction list fetch.
type TransactionsResult struct {
	OK           bool
	Transactions []models.BackendTransaction
	Err          error
}

// ActivityResult is the outcome of an activity feed fetch.
type ActivityResult struct {
	OK    bool
	Items []models.ActivityItem
	Err   error
}

// RequestOptions configures a single gateway request.
type RequestOptions struct {
	Headers map[string]string
	Timeout time.Duration // zero means the client default
}

// BackendClient is the gateway to the remote Ardex backend.
type BackendClient interface {
	Request(ctx context.Context, method, path string, body any, opts RequestOptions) Result

	Register(ctx context.Context, username, password, passphrase string) AuthResult
	Login(ctx context.Context, username, password string) AuthResult
	Recover(ctx context.Context, passphrase string) AuthResult
	VerifyPassword(ctx context.Context, token, password string) VerifyResult
	Balance(ctx context.Context, accountID string) BalanceResult
	Transactions(ctx context.Context, accountID string) TransactionsResult
	Activity(ctx context.Context) ActivityResult
}

// ConnectRequest describes the capability set requested from an
// external wallet during pairing.
type ConnectRequest struct {
	Chains  []string
	Methods []string
	Events  []string
}

// WalletSession is an approved external wallet pairing. Account entries
// are CAIP-10 style ("hedera:testnet:0.0.1234").
type WalletSession struct {
	Topic    string
	Accounts []string
}

// WalletConnector opens a pairing handshake with an external wallet.
type WalletConnector interface {
	Connect(ctx context.Context, req ConnectRequest) (*WalletSession, error)
}
