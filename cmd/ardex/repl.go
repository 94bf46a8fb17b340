package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bobmcallan/ardex/internal/common"
	"github.com/bobmcallan/ardex/internal/dashboard"
	"github.com/bobmcallan/ardex/internal/flow"
	"github.com/bobmcallan/ardex/internal/view"
)

// errQuit signals a clean exit from the loop.
var errQuit = errors.New("quit")

// run drives the screen state machine until the user quits or stdin
// closes.
func run(ctx context.Context, a *App) error {
	a.Flow.RunIntro(flow.IntroPhrases)

	for {
		var err error
		switch a.Flow.Screen() {
		case flow.ScreenTerms:
			err = runTerms(a)
		case flow.ScreenOptions:
			err = runOptions(a)
		case flow.ScreenQuiz:
			err = runQuiz(a)
		case flow.ScreenCreate:
			err = runCreate(ctx, a)
		case flow.ScreenRecover:
			err = runRecover(ctx, a)
		case flow.ScreenLogin:
			err = runLogin(ctx, a)
		case flow.ScreenConnect:
			err = runConnect(ctx, a)
		case flow.ScreenDashboard:
			err = runDashboard(ctx, a)
		default:
			return fmt.Errorf("unexpected screen %s", a.Flow.Screen())
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// fail renders an inline failure without leaving the current screen.
func fail(a *App, err error) {
	a.Renderer.Status(view.Negative(err.Error()))
}

func runTerms(a *App) error {
	a.Renderer.Card(view.Card{
		Title: "Terms of Service",
		Lines: []string{
			"Ardex is a self-custody wallet. You alone hold",
			"your passphrase; nobody can restore it for you.",
		},
	})
	answer, ok := a.Prompter.Line("Accept the terms? (y/n)")
	if !ok {
		return errQuit
	}
	accepted := answer == "y" || answer == "yes"
	if err := a.Flow.AcceptTerms(accepted); err != nil {
		fail(a, err)
	}
	return nil
}

func runOptions(a *App) error {
	a.Renderer.Card(view.Card{
		Title: "Get Started",
		Lines: []string{
			"1) Create a new wallet",
			"2) Recover with passphrase or key",
			"3) Sign in to an existing wallet",
			"4) Connect an external wallet",
			"q) Quit",
		},
	})
	choice, ok := a.Prompter.Line("Choose")
	if !ok {
		return errQuit
	}
	switch choice {
	case "1":
		a.Flow.ChooseQuiz()
	case "2":
		a.Flow.ChooseRecover()
	case "3":
		a.Flow.ChooseLogin()
	case "4":
		a.Flow.ChooseConnect()
	case "q":
		return errQuit
	default:
		fail(a, fmt.Errorf("unknown option %q", choice))
	}
	return nil
}

func runQuiz(a *App) error {
	quiz := a.Flow.ChooseQuiz()
	for {
		question, ok := quiz.Question()
		if !ok {
			return nil
		}
		lines := make([]string, 0, len(question.Options))
		for i, opt := range question.Options {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, opt))
		}
		a.Renderer.Card(view.Card{Title: question.Prompt, Lines: lines})

		answer, ok := a.Prompter.Line("Answer")
		if !ok {
			return errQuit
		}
		choice, err := strconv.Atoi(answer)
		if err != nil {
			fail(a, fmt.Errorf("enter the option number"))
			continue
		}
		correct, done := a.Flow.AnswerQuiz(choice - 1)
		if !correct {
			a.Renderer.Status(view.Negative("Not quite. Try again."))
			continue
		}
		if done {
			return nil
		}
	}
}

func runCreate(ctx context.Context, a *App) error {
	phrase := a.Flow.Passphrase()
	if phrase == "" {
		phrase = a.Flow.ChooseCreate()
	}

	// A private-key recovery carries the placeholder phrase; there is
	// nothing to write down or verify, only the registration step.
	if words := strings.Fields(phrase); len(words) == flow.PassphraseWords {
		a.Renderer.Card(view.Card{
			Title: "Your Recovery Passphrase",
			Lines: []string{
				"Write these 18 words down in order.",
				"",
				strings.Join(words[:6], " "),
				strings.Join(words[6:12], " "),
				strings.Join(words[12:], " "),
			},
		})
		if _, ok := a.Prompter.Line("Press enter when saved"); !ok {
			return errQuit
		}
		if err := runChallenge(a); err != nil {
			return err
		}
	}

	for {
		username, ok := a.Prompter.Line("Username")
		if !ok {
			return errQuit
		}
		password, ok := a.Prompter.Password("Password (min 8 chars)")
		if !ok {
			return errQuit
		}
		confirm, ok := a.Prompter.Password("Confirm password")
		if !ok {
			return errQuit
		}

		err := a.Flow.Register(ctx, username, password, confirm)
		if err == nil {
			a.Renderer.Status(view.Affirmative("Registered. Entering dashboard."))
			return nil
		}
		fail(a, err)
		if !common.IsValidation(err) {
			return nil
		}
	}
}

func runChallenge(a *App) error {
	for {
		positions := a.Flow.StartChallenge()
		answers := make([]string, len(positions))
		for i, pos := range positions {
			answer, ok := a.Prompter.Line(fmt.Sprintf("Word #%d", pos+1))
			if !ok {
				return errQuit
			}
			answers[i] = answer
		}
		if a.Flow.VerifyWords(answers) {
			a.Renderer.Status(view.Affirmative("Passphrase verified."))
			return nil
		}
		a.Renderer.Status(view.Negative("Those words don't match. Try again."))
	}
}

func runRecover(ctx context.Context, a *App) error {
	a.Renderer.Card(view.Card{
		Title: "Recover Wallet",
		Lines: []string{"Paste your 18-word passphrase, or a private key."},
	})
	input, ok := a.Prompter.Line("Recovery input")
	if !ok {
		return errQuit
	}
	if err := a.Flow.Recover(ctx, input); err != nil {
		fail(a, err)
	}
	return nil
}

func runLogin(ctx context.Context, a *App) error {
	username, ok := a.Prompter.Line("Username")
	if !ok {
		return errQuit
	}
	password, ok := a.Prompter.Password("Password")
	if !ok {
		return errQuit
	}
	if err := a.Flow.Login(ctx, username, password); err != nil {
		fail(a, err)
		return nil
	}
	a.Renderer.Status(view.Affirmative("Signed in."))
	return nil
}

func runConnect(ctx context.Context, a *App) error {
	a.Renderer.Status(view.Neutral("Waiting for wallet approval..."))
	if err := a.Flow.ConnectWallet(ctx); err != nil {
		fail(a, err)
		if !a.Prompter.Confirm("Retry connection") {
			return errQuit
		}
		return nil
	}
	a.Renderer.Status(view.Affirmative("Wallet connected."))
	return nil
}

func runDashboard(ctx context.Context, a *App) error {
	if a.Dashboard.SessionExpired(ctx) {
		a.Renderer.Status(view.Negative("Your session has expired. Sign in again."))
	}

	snap := a.Dashboard.Refresh(ctx)
	a.Renderer.Card(dashboard.Card(snap))

	cmd, ok := a.Prompter.Line("ardex> send | receive | swap | tokens | history | activity | accounts | backup | logout | quit")
	if !ok {
		return errQuit
	}

	switch cmd {
	case "send":
		doSend(ctx, a)
	case "receive":
		a.Renderer.Modal(view.Modal{Card: dashboard.ReceiveCard(a.Dashboard.Receive(ctx))})
	case "swap":
		doSwap(ctx, a)
	case "tokens":
		a.Renderer.Card(dashboard.TokensCard(dashboard.TokenAssets()))
	case "history":
		a.Renderer.Card(dashboard.HistoryCard(a.Dashboard.SeeMore(ctx)))
	case "activity":
		doActivity(ctx, a)
	case "accounts":
		doAccounts(ctx, a)
	case "backup":
		doBackup(ctx, a)
	case "logout":
		if err := a.Dashboard.Logout(ctx); err != nil {
			fail(a, err)
			return nil
		}
		a.Renderer.Status(view.Neutral("Signed out."))
	case "quit", "q":
		return errQuit
	case "":
	default:
		fail(a, fmt.Errorf("unknown command %q", cmd))
	}
	return nil
}

func doSend(ctx context.Context, a *App) {
	recipient, ok := a.Prompter.Line("Recipient account")
	if !ok {
		return
	}
	raw, ok := a.Prompter.Line("Amount (HBAR)")
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fail(a, fmt.Errorf("enter a numeric amount"))
		return
	}

	err = a.Dashboard.Send(ctx, recipient, amount)
	switch {
	case err == nil:
		a.Renderer.Status(view.Affirmative("Transfer sent."))
	case errors.Is(err, common.ErrAuthorizationDeclined):
		a.Renderer.Status(view.Neutral("Transfer cancelled."))
	default:
		fail(a, err)
	}
}

func doSwap(ctx context.Context, a *App) {
	raw, ok := a.Prompter.Line("Amount to swap (HBAR)")
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fail(a, fmt.Errorf("enter a numeric amount"))
		return
	}
	if err := a.Dashboard.Swap(ctx, amount); err != nil {
		fail(a, err)
		return
	}
	a.Renderer.Status(view.Affirmative("Swap completed."))
}

func doActivity(ctx context.Context, a *App) {
	items := a.Dashboard.Activity(ctx)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%-10s %.4f %s", item.Type, item.Amount, item.Token))
	}
	if len(lines) == 0 {
		lines = []string{"No recent activity"}
	}
	a.Renderer.Card(view.Card{Title: "Network Activity", Lines: lines})
}

func doAccounts(ctx context.Context, a *App) {
	accounts, active := a.Dashboard.Accounts(ctx)
	lines := make([]string, 0, len(accounts))
	for _, acct := range accounts {
		marker := " "
		if acct.AccountID == active {
			marker = "*"
		}
		kind := "local"
		if acct.External {
			kind = "external"
		}
		lines = append(lines, fmt.Sprintf("%s %s  %.4f HBAR  (%s)", marker, acct.AccountID, acct.Hbar, kind))
	}
	if len(lines) == 0 {
		lines = []string{"No accounts yet"}
	}
	a.Renderer.Card(view.Card{Title: "Accounts", Lines: lines, Actions: []string{"[switch <id>]", "[delete <id>]"}})

	cmd, ok := a.Prompter.Line("accounts>")
	if !ok || cmd == "" {
		return
	}
	fields := strings.Fields(cmd)
	if len(fields) != 2 {
		fail(a, fmt.Errorf("use: switch <id> or delete <id>"))
		return
	}

	var err error
	switch fields[0] {
	case "switch":
		err = a.Dashboard.SwitchAccount(ctx, fields[1])
	case "delete":
		err = a.Dashboard.DeleteAccount(ctx, fields[1])
	default:
		err = fmt.Errorf("unknown account command %q", fields[0])
	}
	switch {
	case err == nil:
	case errors.Is(err, common.ErrAuthorizationDeclined):
		a.Renderer.Status(view.Neutral("Cancelled."))
	default:
		fail(a, err)
	}
}

func doBackup(ctx context.Context, a *App) {
	info, err := a.Dashboard.Backup(ctx)
	switch {
	case errors.Is(err, common.ErrAuthorizationDeclined):
		a.Renderer.Status(view.Neutral("Cancelled."))
		return
	case err != nil:
		fail(a, err)
		return
	}

	a.Renderer.Modal(view.Modal{Card: view.Card{
		Title: "Backup",
		Fields: []view.Field{
			{Label: "Passphrase", Value: info.Passphrase},
			{Label: "Private key", Value: info.PrivateKey},
		},
		Lines: []string{"Keep this somewhere safe. Never share it."},
	}})
}
