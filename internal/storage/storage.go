// Package storage defines the contract every subscription backend satisfies.
//
// Handlers depend only on this interface, so the postgres store used in
// production and the sqlite store used for local runs and unit tests are
// interchangeable.
package storage

import (
	"context"

	"github.com/Veikkosuhonen/cloudcafe/internal/types"
)

// Storage is the database contract. Implementations share one connection
// pool across all callers and are safe for concurrent use.
type Storage interface {
	// InsertSubscription writes sub in a single round trip. It performs no
	// duplicate detection: two calls with the same email create two rows.
	InsertSubscription(ctx context.Context, sub types.Subscription) error

	// Close releases the underlying pool.
	Close() error
}
