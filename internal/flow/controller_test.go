package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
	"github.com/bobmcallan/ardex/internal/vault"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) GetAll(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

// fakeBackend records calls and returns scripted results.
type fakeBackend struct {
	registerCalls int
	loginCalls    int
	recoverCalls  int

	auth interfaces.AuthResult
}

func (f *fakeBackend) Request(ctx context.Context, method, path string, body any, opts interfaces.RequestOptions) interfaces.Result {
	return interfaces.Result{OK: true}
}

func (f *fakeBackend) Register(ctx context.Context, username, password, passphrase string) interfaces.AuthResult {
	f.registerCalls++
	return f.auth
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) interfaces.AuthResult {
	f.loginCalls++
	return f.auth
}

func (f *fakeBackend) Recover(ctx context.Context, passphrase string) interfaces.AuthResult {
	f.recoverCalls++
	return f.auth
}

func (f *fakeBackend) VerifyPassword(ctx context.Context, token, password string) interfaces.VerifyResult {
	return interfaces.VerifyResult{OK: true, Success: true}
}

func (f *fakeBackend) Balance(ctx context.Context, accountID string) interfaces.BalanceResult {
	return interfaces.BalanceResult{OK: true}
}

func (f *fakeBackend) Transactions(ctx context.Context, accountID string) interfaces.TransactionsResult {
	return interfaces.TransactionsResult{OK: true}
}

func (f *fakeBackend) Activity(ctx context.Context) interfaces.ActivityResult {
	return interfaces.ActivityResult{OK: true}
}

type fakeConnector struct {
	session *interfaces.WalletSession
	err     error
	lastReq interfaces.ConnectRequest
}

func (f *fakeConnector) Connect(ctx context.Context, req interfaces.ConnectRequest) (*interfaces.WalletSession, error) {
	f.lastReq = req
	return f.session, f.err
}

func newTestController(t *testing.T, backend *fakeBackend, connector *fakeConnector) (*Controller, *vault.Store) {
	t.Helper()
	logger := common.NewSilentLogger()
	store := vault.NewStore(newMemKV(), logger)
	if backend == nil {
		backend = &fakeBackend{}
	}
	if connector == nil {
		connector = &fakeConnector{}
	}
	return NewController(store, backend, connector, nil, logger, "hedera:testnet"), store
}

func TestIntroFallsThroughToTerms(t *testing.T) {
	c, _ := newTestController(t, nil, nil)
	assert.Equal(t, ScreenIntro, c.Screen())

	c.RunIntro(nil)
	assert.Equal(t, ScreenTerms, c.Screen())
}

func TestAcceptTerms(t *testing.T) {
	c, _ := newTestController(t, nil, nil)
	c.RunIntro(nil)

	err := c.AcceptTerms(false)
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, ScreenTerms, c.Screen())

	require.NoError(t, c.AcceptTerms(true))
	assert.Equal(t, ScreenOptions, c.Screen())
}

func TestCreateFlowChallenge(t *testing.T) {
	c, _ := newTestController(t, nil, nil)

	phrase := c.ChooseCreate()
	assert.Equal(t, ScreenCreate, c.Screen())
	words := strings.Fields(phrase)
	require.Len(t, words, PassphraseWords)

	positions := c.StartChallenge()
	require.Len(t, positions, ChallengeWords)

	// Same challenge on retry.
	assert.Equal(t, positions, c.StartChallenge())

	wrong := []string{"x", "x", "x", "x"}
	assert.False(t, c.VerifyWords(wrong))

	answers := make([]string, len(positions))
	for i, pos := range positions {
		answers[i] = words[pos]
	}
	assert.True(t, c.VerifyWords(answers))
}

func TestRegister(t *testing.T) {
	backend := &fakeBackend{auth: interfaces.AuthResult{OK: true, Token: "abc"}}
	c, store := newTestController(t, backend, nil)
	phrase := c.ChooseCreate()

	// Validation failures never reach the backend.
	err := c.Register(context.Background(), "", "longpass1", "longpass1")
	require.Error(t, err)
	err = c.Register(context.Background(), "alice", "short", "short")
	require.Error(t, err)
	err = c.Register(context.Background(), "alice", "longpass1", "different")
	require.Error(t, err)
	assert.Equal(t, 0, backend.registerCalls)
	assert.Equal(t, ScreenCreate, c.Screen())

	require.NoError(t, c.Register(context.Background(), "alice", "longpass1", "longpass1"))
	assert.Equal(t, 1, backend.registerCalls)
	assert.Equal(t, ScreenDashboard, c.Screen())

	state := store.Load(context.Background())
	require.NotNil(t, state.Auth)
	assert.Equal(t, "abc", state.Auth.Token)
	assert.Equal(t, "alice", state.Auth.Username)
	assert.Equal(t, phrase, state.Passphrase)
	require.NotEmpty(t, state.UnlockHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(state.UnlockHash), []byte("longpass1")))
}

func TestRegisterBackendFailure(t *testing.T) {
	backend := &fakeBackend{auth: interfaces.AuthResult{OK: false, Err: errors.New("boom")}}
	c, store := newTestController(t, backend, nil)
	c.ChooseCreate()

	err := c.Register(context.Background(), "alice", "longpass1", "longpass1")
	require.Error(t, err)
	assert.Equal(t, ScreenCreate, c.Screen())
	assert.Nil(t, store.Load(context.Background()).Auth)
}

func TestLogin(t *testing.T) {
	backend := &fakeBackend{auth: interfaces.AuthResult{OK: true, Token: "tok"}}
	c, store := newTestController(t, backend, nil)
	c.ChooseLogin()

	err := c.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, 0, backend.loginCalls)

	require.NoError(t, c.Login(context.Background(), "bob", "hunter22"))
	assert.Equal(t, ScreenDashboard, c.Screen())

	state := store.Load(context.Background())
	require.NotNil(t, state.Auth)
	assert.Equal(t, "tok", state.Auth.Token)
	assert.Equal(t, "bob", state.Auth.Username)
}

func TestRecoverPassphrase(t *testing.T) {
	backend := &fakeBackend{auth: interfaces.AuthResult{OK: true, Token: "tok"}}
	c, store := newTestController(t, backend, nil)
	c.ChooseRecover()

	phrase := strings.TrimSpace(strings.Repeat("token ", PassphraseWords))
	require.NoError(t, c.Recover(context.Background(), phrase))
	assert.Equal(t, 1, backend.recoverCalls)
	assert.Equal(t, ScreenDashboard, c.Screen())
	assert.Equal(t, phrase, store.Load(context.Background()).Passphrase)
}

func TestRecoverPrivateKeyRoutesToRegistration(t *testing.T) {
	backend := &fakeBackend{}
	c, _ := newTestController(t, backend, nil)
	c.ChooseRecover()

	// 17 words is not a passphrase; treated as opaque key material.
	input := strings.TrimSpace(strings.Repeat("token ", PassphraseWords-1))
	require.NoError(t, c.Recover(context.Background(), input))
	assert.Equal(t, 0, backend.recoverCalls)
	assert.Equal(t, ScreenCreate, c.Screen())
	assert.Equal(t, PlaceholderPassphrase, c.Passphrase())
}

func TestRecoverEmptyInput(t *testing.T) {
	c, _ := newTestController(t, nil, nil)
	c.ChooseRecover()

	err := c.Recover(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, ScreenRecover, c.Screen())
}

func TestConnectWallet(t *testing.T) {
	connector := &fakeConnector{session: &interfaces.WalletSession{
		Topic:    "topic-1",
		Accounts: []string{"hedera:testnet:0.0.4321"},
	}}
	c, store := newTestController(t, nil, connector)
	c.ChooseConnect()

	require.NoError(t, c.ConnectWallet(context.Background()))
	assert.Equal(t, ScreenDashboard, c.Screen())
	assert.Equal(t, []string{"hedera:testnet"}, connector.lastReq.Chains)
	assert.Contains(t, connector.lastReq.Methods, "hedera_signTransaction")

	state := store.Load(context.Background())
	assert.Equal(t, "0.0.4321", state.ActiveAccountID)
	acct := state.Accounts["0.0.4321"]
	require.NotNil(t, acct)
	assert.True(t, acct.External)
	assert.Equal(t, 0.0, acct.Hbar)
}

func TestConnectWalletRejected(t *testing.T) {
	connector := &fakeConnector{err: errors.New("user declined")}
	c, store := newTestController(t, nil, connector)
	c.ChooseConnect()

	err := c.ConnectWallet(context.Background())
	require.Error(t, err)
	assert.Equal(t, ScreenConnect, c.Screen())
	assert.Empty(t, store.Load(context.Background()).Accounts)
}

func TestQuizCompletionEntersCreate(t *testing.T) {
	c, _ := newTestController(t, nil, nil)
	quiz := c.ChooseQuiz()
	require.NotNil(t, quiz)
	assert.Equal(t, ScreenQuiz, c.Screen())

	done := false
	for i := 0; !done; i++ {
		require.Less(t, i, 3, "quiz should finish in three answers")
		q, ok := quiz.Question()
		require.True(t, ok)

		// Every safety question's second option is the safe one.
		var correct bool
		correct, done = c.AnswerQuiz(1)
		require.True(t, correct, "option 1 should answer %q", q.Prompt)
	}

	assert.Equal(t, ScreenCreate, c.Screen())
	assert.NotEmpty(t, c.Passphrase())
}

func TestWrongQuizAnswerRetries(t *testing.T) {
	c, _ := newTestController(t, nil, nil)
	quiz := c.ChooseQuiz()
	first, ok := quiz.Question()
	require.True(t, ok)

	correct, done := c.AnswerQuiz(0)
	assert.False(t, correct)
	assert.False(t, done)
	again, ok := quiz.Question()
	require.True(t, ok)
	assert.Equal(t, first.Prompt, again.Prompt)
	assert.Equal(t, ScreenQuiz, c.Screen())
}
