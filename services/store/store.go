package store

import (
	"context"

	"sjsage522/propertymonitor/internal/listing"
)

// Store is the durable record of every listing ever accepted, keyed by fingerprint
type Store interface {
	// InsertIfAbsent stores l with IsNew set and returns true when its
	// fingerprint was unseen; it returns false without mutating otherwise.
	// Implementations make the check and the insert a single atomic step.
	InsertIfAbsent(ctx context.Context, l listing.Listing) (bool, error)

	// Count returns the number of stored listings
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying connection
	Close() error
}
