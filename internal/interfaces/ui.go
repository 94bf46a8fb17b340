package interfaces

import "context"

// Prompter collects sensitive input from the user. The second return is
// false when the user declines, which callers treat as a soft abort.
type Prompter interface {
	Password(prompt string) (string, bool)
	Confirm(prompt string) bool
}

// CredentialChecker is the platform biometric/credential collaborator
// used as the first step of the unlock gate.
type CredentialChecker interface {
	Enrolled() bool
	Verify(ctx context.Context) error
}
