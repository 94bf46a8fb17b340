package common

import "errors"

// ValidationError is bad user input caught before any network call. It
// is rendered inline and never reaches the backend.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrAuthorizationDeclined is returned when the user cancels a
// password or credential prompt. Callers treat it as a soft abort, not
// a failure.
var ErrAuthorizationDeclined = errors.New("authorization declined")
