package ports

import (
	"context"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The backing store must serialize all writes to a single order row: status
// changes and bookings are not version-gated, so without row-level locking a
// concurrent status change and edit could produce a lost update.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// line set, without touching the edit version.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithVersion persists the aggregate with a compare-and-swap on the
	// edit version: the write only applies when the stored edit_version still
	// equals expectedVersion. A stale version yields an error unwrapping to
	// errs.ErrVersionIsInvalid and leaves the row untouched.
	UpdateWithVersion(ctx context.Context, aggregate *order.Order, expectedVersion int) error

	// Get retrieves an order aggregate with its lines by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate holding a row-level lock for
	// the remainder of the transaction, serializing concurrent writers.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
