package walletconnect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/ardex/internal/interfaces"
)

var upgrader = websocket.Upgrader{}

// newTestRelay starts a websocket relay that answers every proposal
// with the given handler.
func newTestRelay(t *testing.T, handle func(t *testing.T, conn *websocket.Conn, proposal relayMessage)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var proposal relayMessage
		if err := conn.ReadJSON(&proposal); err != nil {
			return
		}
		handle(t, conn, proposal)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func hederaRequest() interfaces.ConnectRequest {
	return interfaces.ConnectRequest{
		Chains:  []string{"hedera:testnet"},
		Methods: []string{"hedera_signMessage", "hedera_signTransaction"},
		Events:  []string{"accountsChanged"},
	}
}

func TestConnect_Approved(t *testing.T) {
	relay := newTestRelay(t, func(t *testing.T, conn *websocket.Conn, proposal relayMessage) {
		assert.Equal(t, "session_propose", proposal.Type)
		ns := proposal.Namespaces["hedera"]
		assert.Contains(t, ns.Chains, "hedera:testnet")

		// keepalive first; the client must skip it
		conn.WriteJSON(relayMessage{Type: "ping"})
		conn.WriteJSON(relayMessage{
			Type:    "session_approve",
			Topic:   "topic-1",
			Granted: map[string]namespaceGrant{"hedera": {Accounts: []string{"hedera:testnet:0.0.4242"}}},
		})
	})

	client := NewClient(relay, "proj-1", WithTimeout(3*time.Second))
	session, err := client.Connect(context.Background(), hederaRequest())
	require.NoError(t, err)
	assert.Equal(t, "topic-1", session.Topic)
	require.Len(t, session.Accounts, 1)

	id, ok := ParseAccountID(session.Accounts[0])
	require.True(t, ok)
	assert.Equal(t, "0.0.4242", id)
}

func TestConnect_Rejected(t *testing.T) {
	relay := newTestRelay(t, func(t *testing.T, conn *websocket.Conn, _ relayMessage) {
		conn.WriteJSON(relayMessage{Type: "session_reject", Reason: "user declined"})
	})

	client := NewClient(relay, "proj-1", WithTimeout(3*time.Second))
	_, err := client.Connect(context.Background(), hederaRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user declined")
}

func TestConnect_ApprovedWithoutAccounts(t *testing.T) {
	relay := newTestRelay(t, func(t *testing.T, conn *websocket.Conn, _ relayMessage) {
		conn.WriteJSON(relayMessage{Type: "session_approve", Topic: "t", Granted: map[string]namespaceGrant{}})
	})

	client := NewClient(relay, "proj-1", WithTimeout(3*time.Second))
	_, err := client.Connect(context.Background(), hederaRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hedera account")
}

func TestConnect_MissingProjectID(t *testing.T) {
	client := NewClient("wss://relay.example.com", "")
	_, err := client.Connect(context.Background(), hederaRequest())
	require.Error(t, err)
}

func TestParseAccountID(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"hedera:testnet:0.0.1234", "0.0.1234", true},
		{"hedera:testnet:", "", false},
		{"0.0.1234", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseAccountID(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseAccountID(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
