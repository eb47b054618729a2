package identity

import (
	"net/mail"
	"strings"
)

// MinPasswordLength is the shortest password the auth provider accepts.
const MinPasswordLength = 6

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return newAuthError(CodeInvalidEmail, "email is required", nil)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return newAuthError(CodeInvalidEmail, "email address is badly formatted", err)
	}
	if addr.Address != email {
		return newAuthError(CodeInvalidEmail, "email address is badly formatted", nil)
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		return newAuthError(CodeInvalidEmail, "email address is badly formatted", nil)
	}
	return nil
}

func validateSignUp(req SignUpRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < MinPasswordLength {
		return newAuthError(CodeWeakPassword, "password should be at least 6 characters", nil)
	}
	return nil
}
