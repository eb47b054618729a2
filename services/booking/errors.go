package booking

import (
	"errors"
	"fmt"
)

// ErrSignInRequired is returned when a booking is confirmed without an identity.
var ErrSignInRequired = errors.New("sign in required to book")

// ValidationError reports a booking request field that cannot be quoted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
