// Package walletconnect implements the external wallet pairing
// handshake over a websocket relay. The core requests a fixed Hedera
// capability set and waits for the wallet's approval; the approved
// session carries CAIP-10 account identifiers.
package walletconnect

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
)

const DefaultTimeout = 60 * time.Second

// Client implements the WalletConnector interface over a relay.
type Client struct {
	relayURL  string
	projectID string
	dialer    *websocket.Dialer
	logger    *common.Logger
	timeout   time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the approval timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a connector for the given relay and project id.
func NewClient(relayURL, projectID string, opts ...ClientOption) *Client {
	c := &Client{
		relayURL:  relayURL,
		projectID: projectID,
		dialer:    websocket.DefaultDialer,
		logger:    common.NewSilentLogger(),
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// relay message envelope
type relayMessage struct {
	Type       string                       `json:"type"`
	Topic      string                       `json:"topic,omitempty"`
	Namespaces map[string]namespaceProposal `json:"requiredNamespaces,omitempty"`
	Granted    map[string]namespaceGrant    `json:"namespaces,omitempty"`
	Reason     string                       `json:"reason,omitempty"`
}

type namespaceProposal struct {
	Chains  []string `json:"chains"`
	Methods []string `json:"methods"`
	Events  []string `json:"events"`
}

type namespaceGrant struct {
	Accounts []string `json:"accounts"`
}

// Connect opens the pairing handshake: dial the relay, propose a
// session with the requested capability set, and block until the wallet
// approves or rejects (or the timeout elapses).
func (c *Client) Connect(ctx context.Context, req interfaces.ConnectRequest) (*interfaces.WalletSession, error) {
	if c.projectID == "" {
		return nil, fmt.Errorf("walletconnect project id is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dialURL, err := relayDialURL(c.relayURL, c.projectID)
	if err != nil {
		return nil, err
	}

	conn, _, err := c.dialer.DialContext(ctx, dialURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reach relay: %w", err)
	}
	defer conn.Close()

	proposal := relayMessage{
		Type: "session_propose",
		Namespaces: map[string]namespaceProposal{
			"hedera": {
				Chains:  req.Chains,
				Methods: req.Methods,
				Events:  req.Events,
			},
		},
	}
	if err := conn.WriteJSON(proposal); err != nil {
		return nil, fmt.Errorf("failed to send session proposal: %w", err)
	}

	c.logger.Debug().Str("relay", c.relayURL).Msg("Session proposal sent")

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	for {
		var msg relayMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("relay connection lost: %w", err)
		}

		switch msg.Type {
		case "session_approve":
			grant, ok := msg.Granted["hedera"]
			if !ok || len(grant.Accounts) == 0 {
				return nil, fmt.Errorf("wallet approved the session but granted no hedera account")
			}
			c.logger.Info().Str("topic", msg.Topic).Msg("Wallet session approved")
			return &interfaces.WalletSession{Topic: msg.Topic, Accounts: grant.Accounts}, nil
		case "session_reject":
			reason := msg.Reason
			if reason == "" {
				reason = "rejected by wallet"
			}
			return nil, fmt.Errorf("wallet rejected the session: %s", reason)
		default:
			// Relay keepalives and unrelated events are skipped.
		}
	}
}

// relayDialURL appends the project id to the relay URL.
func relayDialURL(relayURL, projectID string) (string, error) {
	u, err := url.Parse(relayURL)
	if err != nil {
		return "", fmt.Errorf("invalid relay URL: %w", err)
	}
	q := u.Query()
	q.Set("projectId", projectID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseAccountID extracts the bare account identifier from a CAIP-10
// entry such as "hedera:testnet:0.0.1234".
func ParseAccountID(caip string) (string, bool) {
	parts := strings.Split(caip, ":")
	if len(parts) != 3 || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

// Ensure Client implements WalletConnector
var _ interfaces.WalletConnector = (*Client)(nil)
