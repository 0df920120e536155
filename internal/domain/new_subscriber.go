package domain

import "errors"

// ErrIncompleteSubscriber is returned for a NewSubscriber that was not built
// by NewSubscriberFrom.
var ErrIncompleteSubscriber = errors.New("subscriber was not validated")

// NewSubscriber is a fully validated subscription request.
type NewSubscriber struct {
	Email SubscriberEmail
	Name  SubscriberName
}

// NewSubscriberFrom validates email first and name second, and returns the
// first failure. Callers rely on that order for the error they report.
func NewSubscriberFrom(email, name string) (NewSubscriber, error) {
	parsedEmail, err := ParseSubscriberEmail(email)
	if err != nil {
		return NewSubscriber{}, err
	}

	parsedName, err := ParseSubscriberName(name)
	if err != nil {
		return NewSubscriber{}, err
	}

	return NewSubscriber{Email: parsedEmail, Name: parsedName}, nil
}

// Validate rejects the zero value, the only NewSubscriber that can exist
// without going through NewSubscriberFrom.
func (s NewSubscriber) Validate() error {
	if s.Email.IsZero() || s.Name.IsZero() {
		return ErrIncompleteSubscriber
	}
	return nil
}
