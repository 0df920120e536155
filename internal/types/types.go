// Package types holds the records shared between the HTTP layer and the
// storage backends. Keeping them here prevents import cycles: handlers and
// stores both import types without depending on each other.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is one row of the subscriptions table.
//
// ID and SubscribedAt are stamped by the writer at insertion time, never
// while parsing the request, so a rejected request consumes no identifier.
type Subscription struct {
	ID           uuid.UUID
	Email        string
	Name         string
	SubscribedAt time.Time
}
