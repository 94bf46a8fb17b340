package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bobmcallan/ardex/internal/interfaces"
	"github.com/bobmcallan/ardex/internal/models"
)

// Per-endpoint timeouts. Registration tolerates a slow cold-start
// backend; reads stay shorter.
const (
	registerTimeout = 15 * time.Second
	authTimeout     = 12 * time.Second
	readTimeout     = 10 * time.Second
)

// auth decodes a register/login/recover response into an AuthResult.
func (c *Client) auth(ctx context.Context, path string, body any, timeout time.Duration) interfaces.AuthResult {
	status, data, _, err := c.do(ctx, http.MethodPost, path, body, nil, timeout)
	if err != nil {
		return interfaces.AuthResult{Err: err}
	}
	if status < 200 || status > 299 {
		return interfaces.AuthResult{Err: &HTTPError{Status: status, Body: string(data)}}
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return interfaces.AuthResult{Err: fmt.Errorf("failed to decode auth response: %w", err)}
	}
	return interfaces.AuthResult{OK: true, Token: resp.Token}
}

// Register creates a new backend account for a locally generated
// passphrase.
func (c *Client) Register(ctx context.Context, username, password, passphrase string) interfaces.AuthResult {
	body := map[string]string{
		"username":   username,
		"password":   password,
		"passphrase": passphrase,
	}
	return c.auth(ctx, "/auth/register", body, registerTimeout)
}

// Login authenticates an existing user.
func (c *Client) Login(ctx context.Context, username, password string) interfaces.AuthResult {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	return c.auth(ctx, "/auth/login", body, authTimeout)
}

// Recover looks up an account by its 18-word passphrase.
func (c *Client) Recover(ctx context.Context, passphrase string) interfaces.AuthResult {
	body := map[string]string{"passphrase": passphrase}
	return c.auth(ctx, "/auth/recover", body, authTimeout)
}

// VerifyPassword checks a password re-entry against the backend using
// the bearer token.
func (c *Client) VerifyPassword(ctx context.Context, token, password string) interfaces.VerifyResult {
	headers := map[string]string{"Authorization": "Bearer " + token}
	body := map[string]string{"password": password}

	status, data, _, err := c.do(ctx, http.MethodPost, "/auth/verify-password", body, headers, readTimeout)
	if err != nil {
		return interfaces.VerifyResult{Err: err}
	}
	if status < 200 || status > 299 {
		return interfaces.VerifyResult{Err: &HTTPError{Status: status, Body: string(data)}}
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return interfaces.VerifyResult{Err: fmt.Errorf("failed to decode verify response: %w", err)}
	}
	return interfaces.VerifyResult{OK: true, Success: resp.Success}
}

// Balance fetches the backend balance for an account. Absent fields
// stay nil so the dashboard can fall back to the cached balance.
func (c *Client) Balance(ctx context.Context, accountID string) interfaces.BalanceResult {
	path := fmt.Sprintf("/api/balance/%s", url.PathEscape(accountID))
	status, data, _, err := c.do(ctx, http.MethodGet, path, nil, nil, readTimeout)
	if err != nil {
		return interfaces.BalanceResult{Err: err}
	}
	if status < 200 || status > 299 {
		return interfaces.BalanceResult{Err: &HTTPError{Status: status, Body: string(data)}}
	}

	var balance models.Balance
	if err := json.Unmarshal(data, &balance); err != nil {
		return interfaces.BalanceResult{Err: fmt.Errorf("failed to decode balance: %w", err)}
	}
	return interfaces.BalanceResult{OK: true, Balance: balance}
}

// Transactions fetches recent transactions for an account. The backend
// returns either a bare array or an object wrapping one.
func (c *Client) Transactions(ctx context.Context, accountID string) interfaces.TransactionsResult {
	path := fmt.Sprintf("/api/transactions/%s", url.PathEscape(accountID))
	status, data, _, err := c.do(ctx, http.MethodGet, path, nil, nil, readTimeout)
	if err != nil {
		return interfaces.TransactionsResult{Err: err}
	}
	if status < 200 || status > 299 {
		return interfaces.TransactionsResult{Err: &HTTPError{Status: status, Body: string(data)}}
	}

	var list []models.BackendTransaction
	if err := json.Unmarshal(data, &list); err == nil {
		return interfaces.TransactionsResult{OK: true, Transactions: list}
	}

	var wrapped struct {
		Transactions []models.BackendTransaction `json:"transactions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return interfaces.TransactionsResult{Err: fmt.Errorf("failed to decode transactions: %w", err)}
	}
	return interfaces.TransactionsResult{OK: true, Transactions: wrapped.Transactions}
}

// Activity fetches the global activity feed.
func (c *Client) Activity(ctx context.Context) interfaces.ActivityResult {
	status, data, _, err := c.do(ctx, http.MethodGet, "/api/activity", nil, nil, readTimeout)
	if err != nil {
		return interfaces.ActivityResult{Err: err}
	}
	if status < 200 || status > 299 {
		return interfaces.ActivityResult{Err: &HTTPError{Status: status, Body: string(data)}}
	}

	var items []models.ActivityItem
	if err := json.Unmarshal(data, &items); err != nil {
		return interfaces.ActivityResult{Err: fmt.Errorf("failed to decode activity: %w", err)}
	}
	return interfaces.ActivityResult{OK: true, Items: items}
}
