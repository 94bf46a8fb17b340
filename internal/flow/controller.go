package flow

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/interfaces"
	"github.com/bobmcallan/ardex/internal/models"
	"github.com/bobmcallan/ardex/internal/vault"
	"github.com/bobmcallan/ardex/internal/view"
	"github.com/bobmcallan/ardex/internal/walletconnect"
)

// walletCapabilities is the fixed capability set requested from an
// external wallet during pairing.
var walletCapabilities = struct {
	methods []string
	events  []string
}{
	methods: []string{"hedera_signMessage", "hedera_signTransaction"},
	events:  []string{"accountsChanged"},
}

// Controller sequences the onboarding screens and owns the pending
// passphrase state between creation and registration.
type Controller struct {
	store     *vault.Store
	backend   interfaces.BackendClient
	connector interfaces.WalletConnector
	renderer  *view.Renderer
	logger    *common.Logger
	rng       *rand.Rand
	chain     string

	current    Screen
	passphrase string
	challenge  []int
	quiz       *Quiz
}

// NewController creates the onboarding flow controller starting at the
// intro screen.
func NewController(store *vault.Store, backend interfaces.BackendClient, connector interfaces.WalletConnector, renderer *view.Renderer, logger *common.Logger, chain string) *Controller {
	return &Controller{
		store:     store,
		backend:   backend,
		connector: connector,
		renderer:  renderer,
		logger:    logger,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		chain:     chain,
		current:   ScreenIntro,
	}
}

// Screen returns the single current screen.
func (c *Controller) Screen() Screen {
	return c.current
}

// transition replaces the current screen. Screens are mutually
// exclusive; there is no stack.
func (c *Controller) transition(to Screen) {
	c.logger.Debug().Str("from", c.current.String()).Str("to", to.String()).Msg("Screen transition")
	c.current = to
}

// Passphrase returns the pending passphrase, if any.
func (c *Controller) Passphrase() string {
	return c.passphrase
}

// AcceptTerms advances from the terms screen once the user has ticked
// the acceptance box.
func (c *Controller) AcceptTerms(accepted bool) error {
	if !accepted {
		return common.NewValidationError("Please accept the terms to continue")
	}
	c.transition(ScreenOptions)
	return nil
}

// ChooseCreate generates a fresh 18-word passphrase and enters the
// create flow. The passphrase is returned for display and copy.
func (c *Controller) ChooseCreate() string {
	c.passphrase = GeneratePassphrase(c.rng)
	c.challenge = nil
	c.transition(ScreenCreate)
	return c.passphrase
}

// ChooseQuiz enters the safety quiz.
func (c *Controller) ChooseQuiz() *Quiz {
	c.quiz = &Quiz{}
	c.transition(ScreenQuiz)
	return c.quiz
}

// AnswerQuiz submits a quiz choice. Completing the last question
// generates a passphrase and enters the create flow.
func (c *Controller) AnswerQuiz(choice int) (correct, done bool) {
	if c.quiz == nil {
		return false, false
	}
	correct, done = c.quiz.Answer(choice)
	if done {
		c.passphrase = GeneratePassphrase(c.rng)
		c.challenge = nil
		c.transition(ScreenCreate)
	}
	return correct, done
}

// ChooseRecover enters the recovery screen.
func (c *Controller) ChooseRecover() {
	c.transition(ScreenRecover)
}

// ChooseLogin enters the login screen.
func (c *Controller) ChooseLogin() {
	c.transition(ScreenLogin)
}

// ChooseConnect enters the external wallet pairing screen.
func (c *Controller) ChooseConnect() {
	c.transition(ScreenConnect)
}

// StartChallenge picks the 4 word positions the user must re-enter.
// Retrying a failed verification keeps the same challenge.
func (c *Controller) StartChallenge() []int {
	if c.challenge == nil {
		c.challenge = NewChallenge(c.rng)
	}
	return c.challenge
}

// VerifyWords checks the challenge answers against the pending
// passphrase. A mismatch leaves the challenge in place for retry.
func (c *Controller) VerifyWords(answers []string) bool {
	if c.passphrase == "" || c.challenge == nil {
		return false
	}
	return VerifyChallenge(c.passphrase, c.challenge, answers)
}

// Register creates the backend account for the pending passphrase. On
// success the token lands in the vault auth session, the password's
// bcrypt hash becomes the local unlock hash, and the flow enters the
// dashboard.
func (c *Controller) Register(ctx context.Context, username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return common.NewValidationError("Choose a username and password (min 8 chars)")
	}
	if password != confirm {
		return common.NewValidationError("Passwords do not match")
	}

	res := c.backend.Register(ctx, username, password, c.passphrase)
	if !res.OK {
		return fmt.Errorf("register failed: %w", res.Err)
	}

	state, err := c.store.Ensure(ctx)
	if err != nil {
		return err
	}
	if res.Token != "" {
		state.Auth = &models.AuthSession{Token: res.Token, Username: username}
	}
	state.Passphrase = c.passphrase
	if hash := unlockHash(password, c.logger); hash != "" {
		state.UnlockHash = hash
	}
	if err := c.store.Save(ctx, state); err != nil {
		return err
	}

	c.logger.Info().Str("username", username).Msg("Registered")
	c.transition(ScreenDashboard)
	return nil
}

// Login authenticates an existing user and enters the dashboard.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return common.NewValidationError("Enter username & password")
	}

	res := c.backend.Login(ctx, username, password)
	if !res.OK {
		return fmt.Errorf("login failed: %w", res.Err)
	}
	if res.Token == "" {
		return fmt.Errorf("login succeeded but no token returned")
	}

	state, err := c.store.Ensure(ctx)
	if err != nil {
		return err
	}
	state.Auth = &models.AuthSession{Token: res.Token, Username: username}
	if hash := unlockHash(password, c.logger); hash != "" {
		state.UnlockHash = hash
	}
	if err := c.store.Save(ctx, state); err != nil {
		return err
	}

	c.logger.Info().Str("username", username).Msg("Logged in")
	c.transition(ScreenDashboard)
	return nil
}

// Recover handles pasted recovery input. Exactly 18 whitespace-separated
// words are treated as a passphrase and sent to the recovery endpoint.
// Anything else is treated as an opaque private key: no cryptographic
// import is performed; the user is routed into registration with a
// placeholder passphrase and the key material is discarded.
func (c *Controller) Recover(ctx context.Context, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.NewValidationError("Enter passphrase or private key")
	}

	if len(strings.Fields(input)) == PassphraseWords {
		res := c.backend.Recover(ctx, input)
		if !res.OK {
			return fmt.Errorf("recover failed: %w", res.Err)
		}
		if res.Token == "" {
			return fmt.Errorf("recovery succeeded but no token returned")
		}

		state, err := c.store.Ensure(ctx)
		if err != nil {
			return err
		}
		state.Auth = &models.AuthSession{Token: res.Token}
		state.Passphrase = input
		if err := c.store.Save(ctx, state); err != nil {
			return err
		}

		c.logger.Info().Msg("Recovered by passphrase")
		c.transition(ScreenDashboard)
		return nil
	}

	// Private-key path: route into registration.
	c.passphrase = PlaceholderPassphrase
	c.challenge = nil
	c.transition(ScreenCreate)
	return nil
}

// ConnectWallet runs the external pairing handshake and registers the
// granted account as an external account with zero balance.
func (c *Controller) ConnectWallet(ctx context.Context) error {
	session, err := c.connector.Connect(ctx, interfaces.ConnectRequest{
		Chains:  []string{c.chain},
		Methods: walletCapabilities.methods,
		Events:  walletCapabilities.events,
	})
	if err != nil {
		return fmt.Errorf("wallet connection failed: %w", err)
	}
	if len(session.Accounts) == 0 {
		return fmt.Errorf("connected but no account was granted")
	}

	accountID, ok := walletconnect.ParseAccountID(session.Accounts[0])
	if !ok {
		return fmt.Errorf("connected but the granted account %q is malformed", session.Accounts[0])
	}

	state, err := c.store.Ensure(ctx)
	if err != nil {
		return err
	}
	if state.Accounts == nil {
		state.Accounts = make(map[string]*models.Account)
	}
	if _, exists := state.Accounts[accountID]; !exists {
		state.Accounts[accountID] = &models.Account{AccountID: accountID, Hbar: 0, External: true}
	}
	state.ActiveAccountID = accountID
	if err := c.store.Save(ctx, state); err != nil {
		return err
	}

	c.logger.Info().Str("account", accountID).Msg("External wallet connected")
	c.transition(ScreenDashboard)
	return nil
}

// unlockHash hashes the wallet password for the local unlock gate.
// Matches the backend's bcrypt parameters (cost 10, 72-byte truncation).
func unlockHash(password string, logger *common.Logger) string {
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, 10)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to hash unlock password")
		return ""
	}
	return string(hash)
}
