package identity

import (
	"errors"
	"fmt"
)

// ErrorCode classifies identity provider failures.
type ErrorCode string

const (
	CodeInvalidCredentials ErrorCode = "invalid-credentials"
	CodeNetwork            ErrorCode = "network-error"
	CodeEmailInUse         ErrorCode = "email-in-use"
	CodeWeakPassword       ErrorCode = "weak-password"
	CodeInvalidEmail       ErrorCode = "invalid-email"
	CodeUserNotFound       ErrorCode = "user-not-found"
	CodeDemoDisabled       ErrorCode = "demo-disabled"
	CodeNotSignedIn        ErrorCode = "not-signed-in"
)

// ErrNotAttached is returned by Subscribe when the provider has no backing
// auth service (e.g. it was never configured).
var ErrNotAttached = errors.New("identity: provider not attached")

// AuthError is the typed error returned by every Provider operation.
type AuthError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(code ErrorCode, msg string, err error) error {
	return &AuthError{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of an AuthError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
