package core

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxPINLength is the longest accepted PIN, counted in characters after trimming.
const MaxPINLength = 50

// pinPattern is the allow-list: letters, digits and a fixed set of symbols.
var pinPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]+$`)

// ValidatePIN checks a candidate PIN and returns it trimmed.
//
// A nil candidate means the field was absent or was not a string in the
// request body. Rules are applied in order and the first failure is returned:
// required, allowed characters, then length.
func ValidatePIN(candidate *string) (string, error) {
	if candidate == nil || *candidate == "" {
		return "", ErrPINRequired
	}

	if !pinPattern.MatchString(*candidate) {
		return "", ErrPINInvalidChars
	}

	pin := strings.TrimSpace(*candidate)
	if utf8.RuneCountInString(pin) > MaxPINLength {
		return "", ErrPINTooLong
	}

	return pin, nil
}
