package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation wraps every input schema violation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidPhoneNumber covers both unparsable numbers and numbers without a timezone.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	// ErrDuplicateEntity indicates the email address is already registered.
	ErrDuplicateEntity = errors.New("user already exists")
	// ErrInvalidConfirmation is returned for any token/code mismatch. It never
	// tells which of the two was wrong.
	ErrInvalidConfirmation = errors.New("invalid confirmation token or code")
	// ErrAlreadyConfirmed rejects repeated confirmation of the same account.
	ErrAlreadyConfirmed = errors.New("account already confirmed")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return ErrValidation.Error()
	}
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return ErrValidation.Error() + ": " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
