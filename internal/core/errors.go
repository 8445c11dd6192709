package core

import (
	"errors"
	"fmt"
)

// ValidationKind identifies which PIN rule rejected a submission.
type ValidationKind string

const (
	KindEmptyOrWrongType     ValidationKind = "empty_or_wrong_type"
	KindDisallowedCharacters ValidationKind = "disallowed_characters"
	KindTooLong              ValidationKind = "too_long"
)

// ValidationError is a client input fault. Message is safe to return to the caller.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches validation errors by kind so callers can use errors.Is with the
// sentinel values below.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrPINRequired     = &ValidationError{Kind: KindEmptyOrWrongType, Message: "Valid PIN is required"}
	ErrPINInvalidChars = &ValidationError{Kind: KindDisallowedCharacters, Message: "PIN contains invalid characters"}
	ErrPINTooLong      = &ValidationError{Kind: KindTooLong, Message: "PIN too long"}
)

// PersistenceError reports a failure of the record store's backing medium.
// Op names the store operation ("append", "load", ...).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrDataTooLarge is wrapped in a PersistenceError when an append would push
// the encoded store past its size guard.
var ErrDataTooLarge = errors.New("data size too large")

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistenceError reports whether err is (or wraps) a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
