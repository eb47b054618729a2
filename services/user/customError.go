package user

import (
	"errors"
	"fmt"
)

// ErrNotSignedIn is returned by profile calls made without an identity.
var ErrNotSignedIn = errors.New("not signed in")

// ValidationError reports a form field the user must fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
