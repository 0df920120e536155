// Package domain holds the validated subscriber types. A value of any type
// in this package can only be obtained through its Parse function, so code
// that receives one never has to re-check the input.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrInvalidSubscriberName is wrapped by every name rejection.
var ErrInvalidSubscriberName = errors.New("invalid subscriber name")

// MaxNameGraphemes is the longest accepted name, counted in user-perceived
// characters (extended grapheme clusters), not bytes or runes.
const MaxNameGraphemes = 256

// forbiddenNameCharacters may not appear anywhere in a name.
const forbiddenNameCharacters = `/()"<>\&{}[]=`

// SubscriberName is a name that passed ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName accepts s iff it is not blank, has at most
// MaxNameGraphemes grapheme clusters and contains no forbidden character.
// The accepted value is stored as-is, without trimming or normalisation.
func ParseSubscriberName(s string) (SubscriberName, error) {
	isEmptyOrWhitespace := strings.TrimSpace(s) == ""
	isTooLong := uniseg.GraphemeClusterCount(s) > MaxNameGraphemes
	hasForbiddenCharacters := strings.ContainsAny(s, forbiddenNameCharacters)

	if isEmptyOrWhitespace || isTooLong || hasForbiddenCharacters {
		return SubscriberName{}, fmt.Errorf("%w: %s", ErrInvalidSubscriberName, s)
	}

	return SubscriberName{value: s}, nil
}

// String returns the name exactly as it was submitted.
func (n SubscriberName) String() string {
	return n.value
}

// IsZero reports whether n was declared rather than parsed.
func (n SubscriberName) IsZero() bool {
	return n.value == ""
}
