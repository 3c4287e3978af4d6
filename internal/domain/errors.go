package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateContact = errors.New("mobile number already exists")
	ErrProviderFailure  = errors.New("provider failure")
)

// ValidationError reports a single rejected form field. Validation stops at
// the first failing field, so at most one is ever returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
