package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscriberFrom(t *testing.T) {
	t.Run("valid pair", func(t *testing.T) {
		s, err := NewSubscriberFrom("ursula_le_guin@gmail.com", "le guin")
		require.NoError(t, err)
		assert.Equal(t, "ursula_le_guin@gmail.com", s.Email.String())
		assert.Equal(t, "le guin", s.Name.String())
		assert.NoError(t, s.Validate())
	})

	t.Run("email is checked before name", func(t *testing.T) {
		_, err := NewSubscriberFrom("invalid_email", "")
		assert.ErrorIs(t, err, ErrInvalidSubscriberEmail)
		assert.NotErrorIs(t, err, ErrInvalidSubscriberName)
	})

	t.Run("name failure after valid email", func(t *testing.T) {
		_, err := NewSubscriberFrom("ursula_le_guin@gmail.com", "")
		assert.ErrorIs(t, err, ErrInvalidSubscriberName)
	})

	t.Run("zero value does not validate", func(t *testing.T) {
		assert.ErrorIs(t, NewSubscriber{}.Validate(), ErrIncompleteSubscriber)
	})
}
