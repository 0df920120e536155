package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSubscriberEmail is wrapped by every email rejection.
var ErrInvalidSubscriberEmail = errors.New("invalid subscriber email")

// validate is safe for concurrent use and caches parsed rules, so one
// instance serves the whole process.
var validate = validator.New()

// SubscriberEmail is an address that passed ParseSubscriberEmail.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail accepts s iff it has the syntactic shape of a mailbox
// (local@domain). Deliverability is never checked.
func ParseSubscriberEmail(s string) (SubscriberEmail, error) {
	if err := validate.Var(s, "required,email"); err != nil {
		return SubscriberEmail{}, fmt.Errorf("%w: %s", ErrInvalidSubscriberEmail, s)
	}
	return SubscriberEmail{value: s}, nil
}

func (e SubscriberEmail) String() string {
	return e.value
}

func (e SubscriberEmail) IsZero() bool {
	return e.value == ""
}
